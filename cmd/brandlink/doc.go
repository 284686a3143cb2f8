// Command brandlink resolves raw company names from extraction CSVs
// against a canonical brand registry, queues ambiguous matches for human
// review, and applies reviewer decisions back to the registry.
package main

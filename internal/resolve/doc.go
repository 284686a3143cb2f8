// Package resolve orchestrates a resolution run: it matches contact and
// subsidiary rows against the registry snapshot, applies auto-accept side
// effects, and accumulates the review queue, the unmatched list, and run
// statistics.
//
// The run is fully sequential. Registry writes happen strictly in record
// order; a single write failure is logged and counted but does not stop the
// run, and the failed record is neither retried nor queued.
package resolve

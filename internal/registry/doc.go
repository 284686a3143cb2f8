// Package registry provides access to the canonical entity registry that
// free-text company names are resolved against.
//
// Store is the contract the resolution pipeline and the review session
// depend on: a full snapshot read plus two write shapes, a read-merge-write
// of a single mapping field and an unconditional field overwrite. Backends
// include the production Firestore brands collection and a local SQLite
// registry for offline runs, seeding, and tests. DryRun wraps any backend
// and turns writes into logged no-ops.
//
// Writes carry no optimistic concurrency control. Concurrent sessions
// against the same registry can lose updates; callers are expected to hold
// the run lock so only one writer is active at a time.
package registry

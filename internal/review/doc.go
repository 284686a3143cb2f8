// Package review owns the durable manual-review queue and the unmatched
// list, plus the adjudication session that drains the queue.
//
// Queue items are a closed set of tagged variants (contact, subsidiary,
// subsidiary_parent) persisted as a pretty-printed JSON array and rewritten
// wholesale on every save, so an interrupted session can resume exactly
// where it left off: items that were accepted or rejected are gone, skipped
// and unvisited items remain in their original relative order.
package review

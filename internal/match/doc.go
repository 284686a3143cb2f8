// Package match turns similarity scores into dispositions and selects the
// best registry candidates for a query.
//
// Classification is a pure two-threshold partition: at or above the
// auto-accept threshold a match links automatically, between the two
// thresholds it is queued for a human, below the review threshold it is
// rejected. Selection scans candidates in their given order and keeps the
// first one reaching the maximum score, so candidate ordering is part of
// the contract.
package match

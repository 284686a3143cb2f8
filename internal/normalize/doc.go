// Package normalize canonicalizes free-text company names into a comparable
// form before similarity scoring.
//
// Normalization lowercases, folds diacritics, rewrites common symbols to
// words, strips punctuation, removes legal-entity suffix tokens and
// standalone numbers, and collapses whitespace. The result is deterministic
// and idempotent, so queries and registry candidates can be normalized
// independently and still meet on equal footing.
package normalize

// Package ingest loads contact and subsidiary rows from extraction CSV
// files.
//
// Rows are header-keyed maps so extra columns pass through untouched.
// Subsidiary files additionally go through a cleanup pass that drops
// narrative extraction errors (sentences captured as names, header echoes)
// and rows whose declared subsidiary count has no name attached.
package ingest

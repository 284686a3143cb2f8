package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Legal-entity suffix tokens removed wherever they appear as whole words.
// Dotted forms (s.a., l.p.) arrive as separated single letters after
// punctuation stripping and are left untouched; only the undotted token
// forms are matched.
var suffixPattern = regexp.MustCompile(`\b(?:` + strings.Join([]string{
	"inc", "incorporated", "corp", "corporation",
	"llc", "limited", "ltd", "co", "company",
	"plc", "sa", "ag", "gmbh", "llp", "lp",
	"holdings?", "group", "enterprises?", "industries?",
	"systems?", "technologies?", "tech", "intl", "international", "global",
}, "|") + `)\b`)

var (
	punctPattern      = regexp.MustCompile(`[^a-z0-9\s]`)
	bareNumberPattern = regexp.MustCompile(`\b\d+\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	symbolReplacer = strings.NewReplacer(
		"&", " and ",
		"@", " at ",
		"+", " plus ",
		"/", " ",
		"-", " ",
		"_", " ",
	)

	// NFD then strip combining marks, so "Café" compares as "cafe".
	diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Name canonicalizes a raw company name for matching. It is total and
// idempotent: any input (including empty) yields a stable normalized form,
// and normalizing twice changes nothing.
//
// The steps run in a fixed order. Suffix removal must follow symbol
// substitution (so "AT&T Corp" sees "corp" as its own token) and precede
// whitespace collapsing (so removed tokens do not leave double spaces).
func Name(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	name := raw
	if folded, _, err := transform.String(diacriticFolder, name); err == nil {
		name = folded
	}

	name = strings.TrimSpace(strings.ToLower(name))
	name = symbolReplacer.Replace(name)
	name = punctPattern.ReplaceAllString(name, " ")
	name = suffixPattern.ReplaceAllString(name, " ")
	name = bareNumberPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, " ")

	return strings.TrimSpace(name)
}

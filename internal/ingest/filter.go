package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Narrative fragments that extraction sometimes captures in place of a
// subsidiary name.
var narrativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)the following is a list`),
	regexp.MustCompile(`(?i)omitting subsidiaries`),
	regexp.MustCompile(`(?i)considered in the aggregate`),
	regexp.MustCompile(`(?i)company name`),
	regexp.MustCompile(`(?i)^name$`),
	regexp.MustCompile(`(?i)subsidiaries? of`),
	regexp.MustCompile(`(?i)as of \w+ \d+`),
}

var headerEchoNames = map[string]struct{}{
	"name":         {},
	"company":      {},
	"subsidiary":   {},
	"company name": {},
}

// IsExtractionError reports whether a subsidiary row carries narrative text
// or a header echo instead of an actual name.
func IsExtractionError(row Row) bool {
	raw := row.Get(ColumnSubsidiaryRaw)
	clean := row.Get(ColumnSubsidiaryClean)

	for _, pattern := range narrativePatterns {
		if pattern.MatchString(raw) || pattern.MatchString(clean) {
			return true
		}
	}

	_, echoed := headerEchoNames[strings.ToLower(clean)]
	return echoed
}

// IsIncompleteSubsidiary reports whether a row declares subsidiaries but
// names none. A non-numeric count is treated as zero.
func IsIncompleteSubsidiary(row Row) bool {
	count, err := strconv.Atoi(row.Get(ColumnSubsidiaryCount))
	if err != nil {
		count = 0
	}
	return count > 0 && row.Get(ColumnSubsidiaryRaw) == ""
}

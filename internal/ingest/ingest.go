package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Well-known extraction CSV columns.
const (
	ColumnCompanyClean    = "company_clean"
	ColumnParentName      = "company_name"
	ColumnSubsidiaryRaw   = "subsidiary_name_raw"
	ColumnSubsidiaryClean = "subsidiary_name_clean"
	ColumnSubsidiaryCount = "subsidiary_count"
)

// Row is one CSV record keyed by header name. Unknown columns are carried
// through so disposition side effects can forward them unchanged.
type Row map[string]string

// Get returns the trimmed value of a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// LoadContacts reads a contacts CSV file into rows.
func LoadContacts(path string) ([]Row, error) {
	return readRows(path)
}

// SubsidiaryFilterStats reports how many subsidiary rows the cleanup pass
// removed and why.
type SubsidiaryFilterStats struct {
	ExtractionErrors int
	Incomplete       int
}

// LoadSubsidiaries reads a subsidiary CSV file and applies the cleanup
// pass.
func LoadSubsidiaries(path string) ([]Row, SubsidiaryFilterStats, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, SubsidiaryFilterStats{}, err
	}

	var stats SubsidiaryFilterStats
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		switch {
		case IsExtractionError(row):
			stats.ExtractionErrors++
		case IsIncompleteSubsidiary(row):
			stats.Incomplete++
		default:
			kept = append(kept, row)
		}
	}
	return kept, stats, nil
}

func readRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoQueue reports that no review queue file exists yet.
var ErrNoQueue = errors.New("review: no queue file")

// LoadQueue reads the persisted review queue. A missing file is ErrNoQueue;
// any other failure is fatal for the phase, since processing against a
// half-read queue could lose decisions.
func LoadQueue(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoQueue, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read review queue: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode review queue: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for i, message := range raw {
		item, err := decodeItem(message)
		if err != nil {
			return nil, fmt.Errorf("review queue item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveQueue atomically rewrites the whole review queue. The file is
// pretty-printed so humans can diff successive saves.
func SaveQueue(path string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return writeJSON(path, items)
}

// LoadUnmatched reads the persisted unmatched list. A missing file yields
// an empty list.
func LoadUnmatched(path string) ([]UnmatchedRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read unmatched list: %w", err)
	}

	var records []UnmatchedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode unmatched list: %w", err)
	}
	return records, nil
}

// SaveUnmatched atomically rewrites the whole unmatched list.
func SaveUnmatched(path string, records []UnmatchedRecord) error {
	if records == nil {
		records = []UnmatchedRecord{}
	}
	return writeJSON(path, records)
}

func decodeItem(message json.RawMessage) (Item, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(message, &head); err != nil {
		return nil, fmt.Errorf("read discriminator: %w", err)
	}

	switch head.Type {
	case KindContact:
		var item ContactReview
		if err := json.Unmarshal(message, &item); err != nil {
			return nil, err
		}
		return item, nil
	case KindSubsidiary:
		var item SubsidiaryReview
		if err := json.Unmarshal(message, &item); err != nil {
			return nil, err
		}
		return item, nil
	case KindSubsidiaryParent:
		var item SubsidiaryGroupReview
		if err := json.Unmarshal(message, &item); err != nil {
			return nil, err
		}
		return item, nil
	default:
		return nil, fmt.Errorf("unknown review item type %q", head.Type)
	}
}

// writeJSON writes to a temp file in the target directory and renames it
// into place, so a crash mid-save never truncates the only copy.
func writeJSON(path string, value any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

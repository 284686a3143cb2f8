package registry

import (
	"context"
	"errors"
)

// Well-known registry field names.
const (
	FieldSocial        = "social"
	FieldSubsidiaries  = "subsidiaries"
	FieldParentCompany = "parent_company"
	FieldParentID      = "parent_id"
)

// ErrNotFound reports that a registry entity does not exist.
var ErrNotFound = errors.New("registry: entity not found")

// Entity is a canonical registry record. Fields carries every stored field
// verbatim; Name is the display name extracted from whichever field the
// backend uses for it.
type Entity struct {
	ID     string
	Name   string
	Fields map[string]any
}

// Store is the registry contract the resolution pipeline depends on.
//
// MergeField reads the named mapping field (treating a missing field as an
// empty mapping), overlays updates on top with new values winning on key
// collision, and writes the merged mapping back. SetFields overwrites the
// given fields unconditionally. Both are plain read-modify-write with no
// conditional-write guard.
type Store interface {
	// ListAll returns a snapshot of every entity in a stable order.
	ListAll(ctx context.Context) ([]Entity, error)
	MergeField(ctx context.Context, id, field string, updates map[string]any) error
	SetFields(ctx context.Context, id string, updates map[string]any) error
	Close() error
}

// Adder is implemented by backends that can create new entities. The
// resolution pipeline never adds entities; only the registry maintenance
// commands do.
type Adder interface {
	Add(ctx context.Context, name string, fields map[string]any) (Entity, error)
}

// nameFields are probed in order to find the display-name field on loosely
// schemaed backends.
var nameFields = []string{"name", "company_name", "brand_name", "title"}

// NameField inspects entity fields and reports which well-known field holds
// the display name. Falls back to "name" when no entity settles it.
func NameField(entities []Entity) string {
	for _, entity := range entities {
		for _, field := range nameFields {
			if value, ok := entity.Fields[field].(string); ok && value != "" {
				return field
			}
		}
	}
	return "name"
}

// DisplayName extracts the display name from raw entity fields using the
// resolved name field.
func DisplayName(fields map[string]any, nameField string) string {
	if value, ok := fields[nameField].(string); ok {
		return value
	}
	return ""
}

package review

import (
	"brandlink/internal/ingest"
	"brandlink/internal/match"
	"brandlink/internal/registry"
)

// Kind discriminates the review item variants on disk.
type Kind string

const (
	KindContact          Kind = "contact"
	KindSubsidiary       Kind = "subsidiary"
	KindSubsidiaryParent Kind = "subsidiary_parent"
)

// Item is one pending adjudication. The set of implementations is closed:
// ContactReview, SubsidiaryReview, and SubsidiaryGroupReview.
type Item interface {
	Kind() Kind
}

// EntityRef is the persisted slice of a registry entity: enough to apply a
// decision and to show the reviewer what matched.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Alternative is a scored candidate kept for reviewer context.
type Alternative struct {
	Entity EntityRef `json:"entity"`
	Score  float64   `json:"score"`
}

// ChildMatch is a subsidiary that auto-accepted while its parent was held
// for review. The registry writes for these are pending on the group
// decision.
type ChildMatch struct {
	Name   string    `json:"name"`
	Entity EntityRef `json:"entity"`
	Score  float64   `json:"score"`
}

// ContactReview queues a contact row whose company matched in the review
// band.
type ContactReview struct {
	Type          Kind              `json:"type"`
	CompanyName   string            `json:"company_name"`
	Normalized    string            `json:"normalized"`
	Match         EntityRef         `json:"matched_entity"`
	Score         float64           `json:"score"`
	ContactFields map[string]string `json:"contact_fields"`
	Alternatives  []Alternative     `json:"alternatives"`
}

func (ContactReview) Kind() Kind { return KindContact }

// SubsidiaryReview queues one parent/child link whose child matched in the
// review band.
type SubsidiaryReview struct {
	Type           Kind          `json:"type"`
	ParentName     string        `json:"parent_name"`
	Parent         EntityRef     `json:"parent_entity"`
	SubsidiaryName string        `json:"subsidiary_name"`
	Normalized     string        `json:"normalized"`
	Subsidiary     EntityRef     `json:"subsidiary_entity"`
	Score          float64       `json:"score"`
	Alternatives   []Alternative `json:"alternatives"`
}

func (SubsidiaryReview) Kind() Kind { return KindSubsidiary }

// SubsidiaryGroupReview queues a whole parent group whose parent matched in
// the review band, so a human can approve the parent linkage as a unit.
// Children that already auto-accepted ride along in MatchedChildren with
// their registry writes deferred to the group decision; every raw child row
// is kept for display regardless of its own disposition.
type SubsidiaryGroupReview struct {
	Type            Kind          `json:"type"`
	ParentName      string        `json:"parent_name"`
	Normalized      string        `json:"normalized"`
	Parent          EntityRef     `json:"parent_entity"`
	Score           float64       `json:"score"`
	SubsidiaryRows  []ingest.Row  `json:"subsidiary_rows"`
	MatchedChildren []ChildMatch  `json:"matched_children"`
	Alternatives    []Alternative `json:"alternatives"`
}

func (SubsidiaryGroupReview) Kind() Kind { return KindSubsidiaryParent }

// UnmatchedRecord is one terminal reject, appended to the unmatched list
// for later triage. Parent is set only for subsidiary rejects.
type UnmatchedRecord struct {
	Type       Kind    `json:"type"`
	Name       string  `json:"name"`
	Normalized string  `json:"normalized"`
	Score      float64 `json:"score"`
	Parent     string  `json:"parent,omitempty"`
}

// Ref converts a registry entity to its persisted reference.
func Ref(entity *registry.Entity) EntityRef {
	if entity == nil {
		return EntityRef{}
	}
	return EntityRef{ID: entity.ID, Name: entity.Name}
}

// Alternatives converts scored candidates to their persisted form.
func Alternatives(scored []match.Scored) []Alternative {
	out := make([]Alternative, 0, len(scored))
	for _, s := range scored {
		out = append(out, Alternative{
			Entity: EntityRef{ID: s.Entity.ID, Name: s.Entity.Name},
			Score:  s.Score,
		})
	}
	return out
}

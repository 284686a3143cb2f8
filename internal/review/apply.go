package review

import (
	"context"
	"fmt"

	"brandlink/internal/registry"
)

// Apply performs the registry writes an accepted item calls for. fieldMap
// maps contact CSV columns onto registry social keys; only non-empty
// values are pushed.
func Apply(ctx context.Context, store registry.Store, item Item, fieldMap map[string]string) error {
	switch it := item.(type) {
	case ContactReview:
		return applyContact(ctx, store, it, fieldMap)
	case SubsidiaryReview:
		return applySubsidiary(ctx, store, it)
	case SubsidiaryGroupReview:
		return applyGroup(ctx, store, it)
	default:
		return fmt.Errorf("apply: unknown review item type %q", item.Kind())
	}
}

// SocialUpdates translates contact fields through fieldMap, dropping empty
// values.
func SocialUpdates(fields map[string]string, fieldMap map[string]string) map[string]any {
	updates := make(map[string]any)
	for column, key := range fieldMap {
		if value := fields[column]; value != "" {
			updates[key] = value
		}
	}
	return updates
}

func applyContact(ctx context.Context, store registry.Store, item ContactReview, fieldMap map[string]string) error {
	updates := SocialUpdates(item.ContactFields, fieldMap)
	if len(updates) == 0 {
		return nil
	}
	if err := store.MergeField(ctx, item.Match.ID, registry.FieldSocial, updates); err != nil {
		return fmt.Errorf("merge social for %s: %w", item.Match.ID, err)
	}
	return nil
}

func applySubsidiary(ctx context.Context, store registry.Store, item SubsidiaryReview) error {
	if err := store.MergeField(ctx, item.Parent.ID, registry.FieldSubsidiaries, map[string]any{item.Subsidiary.ID: true}); err != nil {
		return fmt.Errorf("merge subsidiaries for %s: %w", item.Parent.ID, err)
	}
	if err := store.SetFields(ctx, item.Subsidiary.ID, map[string]any{
		registry.FieldParentCompany: item.ParentName,
		registry.FieldParentID:      item.Parent.ID,
	}); err != nil {
		return fmt.Errorf("set parent refs on %s: %w", item.Subsidiary.ID, err)
	}
	return nil
}

// applyGroup links every deferred child match under the approved parent.
// Children that needed their own review were queued separately and are not
// touched here.
func applyGroup(ctx context.Context, store registry.Store, item SubsidiaryGroupReview) error {
	if len(item.MatchedChildren) == 0 {
		return nil
	}

	childIDs := make(map[string]any, len(item.MatchedChildren))
	for _, child := range item.MatchedChildren {
		childIDs[child.Entity.ID] = true
	}
	if err := store.MergeField(ctx, item.Parent.ID, registry.FieldSubsidiaries, childIDs); err != nil {
		return fmt.Errorf("merge subsidiaries for %s: %w", item.Parent.ID, err)
	}

	for _, child := range item.MatchedChildren {
		if err := store.SetFields(ctx, child.Entity.ID, map[string]any{
			registry.FieldParentCompany: item.ParentName,
			registry.FieldParentID:      item.Parent.ID,
		}); err != nil {
			return fmt.Errorf("set parent refs on %s: %w", child.Entity.ID, err)
		}
	}
	return nil
}

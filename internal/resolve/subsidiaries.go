package resolve

import (
	"context"

	"brandlink/internal/ingest"
	"brandlink/internal/logging"
	"brandlink/internal/match"
	"brandlink/internal/normalize"
	"brandlink/internal/registry"
	"brandlink/internal/review"
)

// ProcessSubsidiaries groups rows by raw parent name and resolves each
// group: the parent first, then every child independently.
//
// A rejected parent fails the whole group onto the unmatched list. An
// auto-accepted parent links its auto-accepted children immediately. A
// review-band parent defers those links and queues the entire group as one
// item, on top of the per-child review items already queued — the human
// approves or rejects the parent linkage as a unit while child-level
// dispositions stay recorded individually.
func (p *Pipeline) ProcessSubsidiaries(ctx context.Context, rows []ingest.Row) {
	parents, groups := groupByParent(rows)

	for _, parentName := range parents {
		if p.skipForSingleCompany(parentName) {
			continue
		}

		p.stats.SubsidiaryGroupsProcessed++
		p.resolveGroup(ctx, parentName, groups[parentName])
	}
}

// groupByParent builds the explicit parent-name grouping. Keys are the raw
// case-sensitive parent names; group order is first appearance so runs are
// deterministic. Rows missing either name are dropped silently.
func groupByParent(rows []ingest.Row) ([]string, map[string][]ingest.Row) {
	var order []string
	groups := make(map[string][]ingest.Row)
	for _, row := range rows {
		parentName := row.Get(ingest.ColumnParentName)
		subsidiaryName := row.Get(ingest.ColumnSubsidiaryRaw)
		if parentName == "" || subsidiaryName == "" {
			continue
		}
		if _, seen := groups[parentName]; !seen {
			order = append(order, parentName)
		}
		groups[parentName] = append(groups[parentName], row)
	}
	return order, groups
}

func (p *Pipeline) resolveGroup(ctx context.Context, parentName string, rows []ingest.Row) {
	normalizedParent := normalize.Name(parentName)
	parentBest := match.FindBest(normalizedParent, p.candidates, p.thresholds)

	if parentBest.Disposition == match.Reject || parentBest.Entity == nil {
		p.stats.SubsidiaryGroupsRejected++
		p.unmatched = append(p.unmatched, review.UnmatchedRecord{
			Type:       review.KindSubsidiaryParent,
			Name:       parentName,
			Normalized: normalizedParent,
			Score:      parentBest.Score,
		})
		p.logger.Info("parent rejected",
			logging.String("parent", parentName),
			logging.Float64("score", parentBest.Score),
		)
		return
	}

	var matched []review.ChildMatch
	for _, row := range rows {
		if child, ok := p.resolveChild(parentName, parentBest, row); ok {
			matched = append(matched, child)
		}
	}

	switch parentBest.Disposition {
	case match.AutoAccept:
		if len(matched) == 0 {
			return
		}
		p.stats.SubsidiaryGroupsAutoAccepted++
		p.stats.SubsidiariesMatched += len(matched)
		p.linkSubsidiaries(ctx, parentBest.Entity, parentName, matched)
	case match.ManualReview:
		p.stats.SubsidiaryGroupsManualReview++
		p.queue = append(p.queue, review.SubsidiaryGroupReview{
			Type:            review.KindSubsidiaryParent,
			ParentName:      parentName,
			Normalized:      normalizedParent,
			Parent:          review.Ref(parentBest.Entity),
			Score:           parentBest.Score,
			SubsidiaryRows:  rows,
			MatchedChildren: matched,
			Alternatives:    review.Alternatives(match.TopK(normalizedParent, p.candidates, p.topMatches)),
		})
		p.logger.Info("parent group queued for review",
			logging.String("parent", parentName),
			logging.String("match", parentBest.Entity.Name),
			logging.Float64("score", parentBest.Score),
			logging.Int("children", len(rows)),
		)
	}
}

// resolveChild classifies one child row. Auto-accepts are returned for the
// group decision; review-band children queue their own item immediately,
// independent of the parent's disposition; rejects land on the unmatched
// list with the parent name for context.
func (p *Pipeline) resolveChild(parentName string, parentBest match.Best, row ingest.Row) (review.ChildMatch, bool) {
	subsidiaryName := row.Get(ingest.ColumnSubsidiaryRaw)
	normalized := normalize.Name(subsidiaryName)
	best := match.FindBest(normalized, p.candidates, p.thresholds)

	if best.Disposition == match.Reject || best.Entity == nil {
		p.unmatched = append(p.unmatched, review.UnmatchedRecord{
			Type:       review.KindSubsidiary,
			Name:       subsidiaryName,
			Normalized: normalized,
			Score:      best.Score,
			Parent:     parentName,
		})
		return review.ChildMatch{}, false
	}

	switch best.Disposition {
	case match.AutoAccept:
		return review.ChildMatch{
			Name:   subsidiaryName,
			Entity: review.Ref(best.Entity),
			Score:  best.Score,
		}, true
	case match.ManualReview:
		p.queue = append(p.queue, review.SubsidiaryReview{
			Type:           review.KindSubsidiary,
			ParentName:     parentName,
			Parent:         review.Ref(parentBest.Entity),
			SubsidiaryName: subsidiaryName,
			Normalized:     normalized,
			Subsidiary:     review.Ref(best.Entity),
			Score:          best.Score,
			Alternatives:   review.Alternatives(match.TopK(normalized, p.candidates, p.topMatches)),
		})
	}
	return review.ChildMatch{}, false
}

// linkSubsidiaries performs the two write shapes for an auto-accepted
// group: merge the child ids into the parent's subsidiary set, then set
// each child's parent-reference fields. Failures are counted per write and
// the run continues.
func (p *Pipeline) linkSubsidiaries(ctx context.Context, parent *registry.Entity, parentName string, matched []review.ChildMatch) {
	childIDs := make(map[string]any, len(matched))
	for _, child := range matched {
		childIDs[child.Entity.ID] = true
	}
	if err := p.store.MergeField(ctx, parent.ID, registry.FieldSubsidiaries, childIDs); err != nil {
		p.stats.Errors++
		p.logger.Error("merge subsidiary set",
			logging.String("parent", parentName),
			logging.Error(err),
		)
		return
	}

	for _, child := range matched {
		err := p.store.SetFields(ctx, child.Entity.ID, map[string]any{
			registry.FieldParentCompany: parentName,
			registry.FieldParentID:      parent.ID,
		})
		if err != nil {
			p.stats.Errors++
			p.logger.Error("set parent refs",
				logging.String("subsidiary", child.Name),
				logging.Error(err),
			)
		}
	}

	p.logger.Info("subsidiaries linked",
		logging.String("parent", parentName),
		logging.Int("count", len(matched)),
	)
}

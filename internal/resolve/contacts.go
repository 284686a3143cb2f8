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

// ProcessContacts resolves each contact row and dispatches on disposition:
// auto-accepts push their contact fields to the registry immediately,
// review-band matches join the queue with alternatives, rejects land on
// the unmatched list. Rows without a company name are skipped silently.
func (p *Pipeline) ProcessContacts(ctx context.Context, rows []ingest.Row) {
	for _, row := range rows {
		companyName := row.Get(ingest.ColumnCompanyClean)
		if companyName == "" {
			continue
		}
		if p.skipForSingleCompany(companyName) {
			continue
		}

		p.stats.ContactsProcessed++

		normalized := normalize.Name(companyName)
		best := match.FindBest(normalized, p.candidates, p.thresholds)

		if best.Disposition == match.Reject || best.Entity == nil {
			p.stats.ContactsRejected++
			p.unmatched = append(p.unmatched, review.UnmatchedRecord{
				Type:       review.KindContact,
				Name:       companyName,
				Normalized: normalized,
				Score:      best.Score,
			})
			p.logger.Info("contact rejected",
				logging.String("company", companyName),
				logging.Float64("score", best.Score),
			)
			continue
		}

		switch best.Disposition {
		case match.AutoAccept:
			p.stats.ContactsAutoAccepted++
			p.stats.ContactsMatched++
			p.pushContactFields(ctx, best.Entity, row, companyName, best.Score)
		case match.ManualReview:
			p.stats.ContactsManualReview++
			p.queue = append(p.queue, review.ContactReview{
				Type:          review.KindContact,
				CompanyName:   companyName,
				Normalized:    normalized,
				Match:         review.Ref(best.Entity),
				Score:         best.Score,
				ContactFields: contactFields(row),
				Alternatives:  review.Alternatives(match.TopK(normalized, p.candidates, p.topMatches)),
			})
			p.logger.Info("contact queued for review",
				logging.String("company", companyName),
				logging.String("match", best.Entity.Name),
				logging.Float64("score", best.Score),
			)
		}
	}
}

// pushContactFields merges the row's mapped, non-empty contact fields into
// the matched entity's social mapping. A write failure is counted and the
// record moves on without queuing or retrying.
func (p *Pipeline) pushContactFields(ctx context.Context, entity *registry.Entity, row ingest.Row, companyName string, score float64) {
	updates := review.SocialUpdates(contactFields(row), p.fieldMap)
	if len(updates) == 0 {
		return
	}

	if err := p.store.MergeField(ctx, entity.ID, registry.FieldSocial, updates); err != nil {
		p.stats.Errors++
		p.logger.Error("push contact fields",
			logging.String("company", companyName),
			logging.String("entity", entity.ID),
			logging.Error(err),
		)
		return
	}
	p.logger.Info("contact linked",
		logging.String("company", companyName),
		logging.String("entity", entity.ID),
		logging.Float64("score", score),
	)
}

// contactFields snapshots the row's trimmed non-empty cells for queue
// persistence and field mapping.
func contactFields(row ingest.Row) map[string]string {
	fields := make(map[string]string, len(row))
	for column := range row {
		if value := row.Get(column); value != "" {
			fields[column] = value
		}
	}
	return fields
}

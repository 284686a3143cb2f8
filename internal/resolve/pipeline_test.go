package resolve_test

import (
	"context"
	"testing"

	"brandlink/internal/config"
	"brandlink/internal/ingest"
	"brandlink/internal/resolve"
	"brandlink/internal/review"
	"brandlink/internal/testsupport"
)

func newPipeline(t *testing.T, cfg *config.Config, fake *testsupport.FakeRegistry) *resolve.Pipeline {
	t.Helper()
	pipeline := resolve.New(cfg, fake, nil)
	if err := pipeline.LoadSnapshot(context.Background()); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	return pipeline
}

func TestContactAutoAcceptPushesFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRegistry("Acme Corporation")
	pipeline := newPipeline(t, cfg, fake)

	rows := []ingest.Row{{
		"company_clean": "Acme Inc.",
		"twitter_url":   "https://x.com/acme",
		"domain":        "acme.example",
		"facebook_url":  "",
	}}
	pipeline.ProcessContacts(context.Background(), rows)

	stats := pipeline.Stats()
	if stats.ContactsProcessed != 1 || stats.ContactsAutoAccepted != 1 || stats.ContactsMatched != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(pipeline.Queue()) != 0 || len(pipeline.Unmatched()) != 0 {
		t.Fatalf("auto-accept should not queue: queue=%d unmatched=%d", len(pipeline.Queue()), len(pipeline.Unmatched()))
	}

	if fake.WriteCount() != 1 {
		t.Fatalf("write count = %d, want 1", fake.WriteCount())
	}
	write := fake.Writes[0]
	if write.Op != "merge" || write.ID != "brand-0" || write.Field != "social" {
		t.Fatalf("unexpected write: %+v", write)
	}
	if write.Updates["twitter"] != "https://x.com/acme" || write.Updates["website"] != "acme.example" {
		t.Fatalf("unexpected updates: %v", write.Updates)
	}
	if _, ok := write.Updates["facebook"]; ok {
		t.Fatal("empty contact field was pushed")
	}
}

func TestContactRejectGoesUnmatched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRegistry("Zeta Robotics")
	pipeline := newPipeline(t, cfg, fake)

	pipeline.ProcessContacts(context.Background(), []ingest.Row{{"company_clean": "Beta Systems & Co"}})

	stats := pipeline.Stats()
	if stats.ContactsRejected != 1 {
		t.Fatalf("rejected = %d, want 1", stats.ContactsRejected)
	}
	unmatched := pipeline.Unmatched()
	if len(unmatched) != 1 {
		t.Fatalf("unmatched length = %d, want 1", len(unmatched))
	}
	record := unmatched[0]
	if record.Type != review.KindContact || record.Name != "Beta Systems & Co" {
		t.Fatalf("unexpected unmatched record: %+v", record)
	}
	if record.Score >= 80 {
		t.Fatalf("reject score %v unexpectedly high", record.Score)
	}
	if fake.WriteCount() != 0 {
		t.Fatal("reject should not write")
	}
}

func TestContactReviewBandQueuesWithAlternatives(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Matching.AutoAcceptThreshold = 95
	cfg.Matching.ReviewThreshold = 60
	fake := testsupport.NewFakeRegistry("Acme Widgets", "Zeta Robotics")
	pipeline := newPipeline(t, cfg, fake)

	pipeline.ProcessContacts(context.Background(), []ingest.Row{{
		"company_clean": "Acmee Widgetz",
		"ir_email":      "ir@acmee.example",
	}})

	stats := pipeline.Stats()
	if stats.ContactsManualReview != 1 {
		t.Fatalf("manual review = %d, want 1, stats %+v", stats.ContactsManualReview, stats)
	}
	if fake.WriteCount() != 0 {
		t.Fatal("review band should not write")
	}

	queue := pipeline.Queue()
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	item, ok := queue[0].(review.ContactReview)
	if !ok {
		t.Fatalf("queued item is %T, want ContactReview", queue[0])
	}
	if item.Match.ID != "brand-0" {
		t.Fatalf("matched entity = %+v, want brand-0", item.Match)
	}
	if item.Score < 60 || item.Score >= 95 {
		t.Fatalf("score %v outside review band", item.Score)
	}
	if item.ContactFields["ir_email"] != "ir@acmee.example" {
		t.Fatalf("contact fields not captured: %v", item.ContactFields)
	}
	if len(item.Alternatives) == 0 || item.Alternatives[0].Entity.ID != "brand-0" {
		t.Fatalf("alternatives missing or misordered: %v", item.Alternatives)
	}
}

func TestContactWriteFailureCountedNotQueued(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRegistry("Acme Corporation")
	fake.FailWrites = true
	pipeline := newPipeline(t, cfg, fake)

	pipeline.ProcessContacts(context.Background(), []ingest.Row{{
		"company_clean": "Acme Inc.",
		"twitter_url":   "https://x.com/acme",
	}})

	stats := pipeline.Stats()
	if stats.Errors != 1 {
		t.Fatalf("errors = %d, want 1", stats.Errors)
	}
	if stats.ContactsAutoAccepted != 1 {
		t.Fatalf("auto accepted = %d, want 1", stats.ContactsAutoAccepted)
	}
	if len(pipeline.Queue()) != 0 || len(pipeline.Unmatched()) != 0 {
		t.Fatal("failed write must not queue the record anywhere")
	}
}

func TestContactSkipsEmptyNameAndSingleCompanyFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Run.SingleCompany = "acme inc."
	fake := testsupport.NewFakeRegistry("Acme Corporation")
	pipeline := newPipeline(t, cfg, fake)

	pipeline.ProcessContacts(context.Background(), []ingest.Row{
		{"company_clean": ""},
		{"company_clean": "Other Company"},
		{"company_clean": "Acme Inc."},
	})

	stats := pipeline.Stats()
	if stats.ContactsProcessed != 1 {
		t.Fatalf("processed = %d, want 1 (filter is case-insensitive)", stats.ContactsProcessed)
	}
}

func TestSubsidiaryParentRejectFailsWholeGroup(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRegistry("Globex")
	pipeline := newPipeline(t, cfg, fake)

	rows := []ingest.Row{
		{"company_name": "Unrelated Conglomerate", "subsidiary_name_raw": "Globex Corporation"},
		{"company_name": "Unrelated Conglomerate", "subsidiary_name_raw": "Globex Europe"},
	}
	pipeline.ProcessSubsidiaries(context.Background(), rows)

	stats := pipeline.Stats()
	if stats.SubsidiaryGroupsProcessed != 1 || stats.SubsidiaryGroupsRejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	unmatched := pipeline.Unmatched()
	if len(unmatched) != 1 {
		t.Fatalf("unmatched = %d, want 1 (children must not be resolved)", len(unmatched))
	}
	if unmatched[0].Type != review.KindSubsidiaryParent || unmatched[0].Name != "Unrelated Conglomerate" {
		t.Fatalf("unexpected unmatched record: %+v", unmatched[0])
	}
	if fake.WriteCount() != 0 {
		t.Fatal("rejected group must not write")
	}
}

func TestSubsidiaryAutoAcceptLinksChildren(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := testsupport.NewFakeRegistry("Acme Corporation", "Globex", "Initech")
	pipeline := newPipeline(t, cfg, fake)

	rows := []ingest.Row{
		{"company_name": "Acme Inc.", "subsidiary_name_raw": "Globex Corporation"},
		{"company_name": "Acme Inc.", "subsidiary_name_raw": "Initech Ltd"},
	}
	pipeline.ProcessSubsidiaries(context.Background(), rows)

	stats := pipeline.Stats()
	if stats.SubsidiaryGroupsAutoAccepted != 1 || stats.SubsidiariesMatched != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if fake.WriteCount() != 3 {
		t.Fatalf("write count = %d, want 3 (one merge + two sets)", fake.WriteCount())
	}
	merge := fake.Writes[0]
	if merge.Op != "merge" || merge.ID != "brand-0" || merge.Field != "subsidiaries" {
		t.Fatalf("first write is not the parent merge: %+v", merge)
	}
	if merge.Updates["brand-1"] != true || merge.Updates["brand-2"] != true {
		t.Fatalf("merge updates missing children: %v", merge.Updates)
	}
	for _, write := range fake.Writes[1:] {
		if write.Op != "set" {
			t.Fatalf("expected set write, got %+v", write)
		}
		if write.Updates["parent_company"] != "Acme Inc." || write.Updates["parent_id"] != "brand-0" {
			t.Fatalf("parent refs wrong: %v", write.Updates)
		}
	}
}

func TestSubsidiaryChildRejectAndReview(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Matching.AutoAcceptThreshold = 95
	cfg.Matching.ReviewThreshold = 60
	fake := testsupport.NewFakeRegistry("Acme Widgets", "Globex")
	pipeline := newPipeline(t, cfg, fake)

	rows := []ingest.Row{
		// Parent resolves exactly; one child in the review band, one
		// hopeless.
		{"company_name": "Acme Widgets", "subsidiary_name_raw": "Globyx Corp"},
		{"company_name": "Acme Widgets", "subsidiary_name_raw": "Quux Chemical Concern"},
	}
	pipeline.ProcessSubsidiaries(context.Background(), rows)

	queue := pipeline.Queue()
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	child, ok := queue[0].(review.SubsidiaryReview)
	if !ok {
		t.Fatalf("queued item is %T, want SubsidiaryReview", queue[0])
	}
	if child.SubsidiaryName != "Globyx Corp" || child.Subsidiary.ID != "brand-1" {
		t.Fatalf("unexpected child review: %+v", child)
	}
	if child.ParentName != "Acme Widgets" || child.Parent.ID != "brand-0" {
		t.Fatalf("child review lost parent context: %+v", child)
	}

	unmatched := pipeline.Unmatched()
	if len(unmatched) != 1 {
		t.Fatalf("unmatched = %d, want 1", len(unmatched))
	}
	if unmatched[0].Type != review.KindSubsidiary || unmatched[0].Parent != "Acme Widgets" {
		t.Fatalf("unexpected unmatched child: %+v", unmatched[0])
	}

	// Parent auto-accepted but no child auto-accepted, so nothing links.
	if fake.WriteCount() != 0 {
		t.Fatalf("write count = %d, want 0", fake.WriteCount())
	}
}

func TestSubsidiaryParentReviewDefersChildWrites(t *testing.T) {
	// A review-band parent with an auto-accept child: the child match is
	// recorded on the queued group, no registry write happens this run.
	cfg := testsupport.NewConfig(t)
	cfg.Matching.AutoAcceptThreshold = 95
	cfg.Matching.ReviewThreshold = 60
	fake := testsupport.NewFakeRegistry("Acme Widgets", "Globex")
	pipeline := newPipeline(t, cfg, fake)

	rows := []ingest.Row{
		{"company_name": "Acmee Widgetz", "subsidiary_name_raw": "Globex Corporation"},
	}
	pipeline.ProcessSubsidiaries(context.Background(), rows)

	stats := pipeline.Stats()
	if stats.SubsidiaryGroupsManualReview != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if fake.WriteCount() != 0 {
		t.Fatalf("write count = %d, want 0 for deferred group", fake.WriteCount())
	}

	queue := pipeline.Queue()
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	group, ok := queue[0].(review.SubsidiaryGroupReview)
	if !ok {
		t.Fatalf("queued item is %T, want SubsidiaryGroupReview", queue[0])
	}
	if group.Parent.ID != "brand-0" {
		t.Fatalf("group parent = %+v, want brand-0", group.Parent)
	}
	if len(group.SubsidiaryRows) != 1 {
		t.Fatalf("group rows = %d, want 1", len(group.SubsidiaryRows))
	}
	if len(group.MatchedChildren) != 1 || group.MatchedChildren[0].Entity.ID != "brand-1" {
		t.Fatalf("deferred child match missing: %+v", group.MatchedChildren)
	}
}

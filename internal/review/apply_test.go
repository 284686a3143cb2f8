package review_test

import (
	"context"
	"testing"

	"brandlink/internal/config"
	"brandlink/internal/review"
	"brandlink/internal/testsupport"
)

func TestApplySubsidiaryWritesBothSides(t *testing.T) {
	fake := testsupport.NewFakeRegistry("Acme Widgets", "Globex")
	item := review.SubsidiaryReview{
		Type:           review.KindSubsidiary,
		ParentName:     "Acme Widgets",
		Parent:         review.EntityRef{ID: "brand-0", Name: "Acme Widgets"},
		SubsidiaryName: "Globyx Corp",
		Subsidiary:     review.EntityRef{ID: "brand-1", Name: "Globex"},
	}

	if err := review.Apply(context.Background(), fake, item, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fake.WriteCount() != 2 {
		t.Fatalf("write count = %d, want 2", fake.WriteCount())
	}

	merge := fake.Writes[0]
	if merge.Op != "merge" || merge.ID != "brand-0" || merge.Field != "subsidiaries" {
		t.Fatalf("first write: %+v", merge)
	}
	if merge.Updates["brand-1"] != true {
		t.Fatalf("merge updates: %v", merge.Updates)
	}

	set := fake.Writes[1]
	if set.Op != "set" || set.ID != "brand-1" {
		t.Fatalf("second write: %+v", set)
	}
	if set.Updates["parent_company"] != "Acme Widgets" || set.Updates["parent_id"] != "brand-0" {
		t.Fatalf("parent refs: %v", set.Updates)
	}
}

func TestApplyGroupLinksDeferredChildren(t *testing.T) {
	fake := testsupport.NewFakeRegistry("Acme Widgets", "Globex", "Initech")
	item := review.SubsidiaryGroupReview{
		Type:       review.KindSubsidiaryParent,
		ParentName: "Acmee Widgetz",
		Parent:     review.EntityRef{ID: "brand-0", Name: "Acme Widgets"},
		MatchedChildren: []review.ChildMatch{
			{Name: "Globex Corporation", Entity: review.EntityRef{ID: "brand-1", Name: "Globex"}, Score: 100},
			{Name: "Initech Ltd", Entity: review.EntityRef{ID: "brand-2", Name: "Initech"}, Score: 100},
		},
	}

	if err := review.Apply(context.Background(), fake, item, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fake.WriteCount() != 3 {
		t.Fatalf("write count = %d, want 3", fake.WriteCount())
	}
	merge := fake.Writes[0]
	if merge.Field != "subsidiaries" || merge.Updates["brand-1"] != true || merge.Updates["brand-2"] != true {
		t.Fatalf("merge write: %+v", merge)
	}
	for _, write := range fake.Writes[1:] {
		if write.Op != "set" || write.Updates["parent_company"] != "Acmee Widgetz" || write.Updates["parent_id"] != "brand-0" {
			t.Fatalf("set write: %+v", write)
		}
	}
}

func TestApplyGroupWithoutChildrenIsNoOp(t *testing.T) {
	fake := testsupport.NewFakeRegistry("Acme Widgets")
	item := review.SubsidiaryGroupReview{
		Type:       review.KindSubsidiaryParent,
		ParentName: "Acmee Widgetz",
		Parent:     review.EntityRef{ID: "brand-0", Name: "Acme Widgets"},
	}
	if err := review.Apply(context.Background(), fake, item, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fake.WriteCount() != 0 {
		t.Fatalf("write count = %d, want 0", fake.WriteCount())
	}
}

func TestSocialUpdatesDropsEmptyAndUnmapped(t *testing.T) {
	fields := map[string]string{
		"twitter_url": "https://x.com/acme",
		"domain":      "acme.example",
		"ir_email":    "",
		"company_id":  "12345",
	}
	updates := review.SocialUpdates(fields, config.DefaultContactFieldMap())

	if len(updates) != 2 {
		t.Fatalf("updates = %v, want exactly twitter and website", updates)
	}
	if updates["twitter"] != "https://x.com/acme" || updates["website"] != "acme.example" {
		t.Fatalf("unexpected updates: %v", updates)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"brandlink/internal/review"
)

func TestResolveRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, env, "resolve"); err == nil {
		t.Fatal("expected error when no CSV is given")
	}
}

func TestResolveContactsEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "registry", "add", "Acme Corporation"); err != nil {
		t.Fatalf("registry add: %v", err)
	}

	contacts := filepath.Join(env.baseDir, "contacts.csv")
	writeFile(t, contacts, "company_clean,twitter_url\nAcme Inc.,https://x.com/acme\nTotally Unknown Concern,\n")

	out, err := runCLI(t, env, "resolve", "--contacts", contacts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "Contacts processed")
	requireContains(t, out, "Review queue:")

	// The confident match was written, the hopeless one was recorded.
	queuePath := filepath.Join(env.outputDir, "manual_review.json")
	if _, err := os.Stat(queuePath); err != nil {
		t.Fatalf("expected review queue file: %v", err)
	}
	unmatched, err := review.LoadUnmatched(filepath.Join(env.outputDir, "unmatched_companies.json"))
	if err != nil {
		t.Fatalf("LoadUnmatched: %v", err)
	}
	if len(unmatched) != 1 || unmatched[0].Name != "Totally Unknown Concern" {
		t.Fatalf("unexpected unmatched list: %+v", unmatched)
	}

	out, err = runCLI(t, env, "unmatched")
	if err != nil {
		t.Fatalf("unmatched: %v", err)
	}
	requireContains(t, out, "Totally Unknown Concern")
}

func TestResolveDryRunReportsItself(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, env, "registry", "add", "Acme Corporation"); err != nil {
		t.Fatalf("registry add: %v", err)
	}
	contacts := filepath.Join(env.baseDir, "contacts.csv")
	writeFile(t, contacts, "company_clean,twitter_url\nAcme Inc.,https://x.com/acme\n")

	out, err := runCLI(t, env, "--dry-run", "resolve", "--contacts", contacts)
	if err != nil {
		t.Fatalf("resolve --dry-run: %v", err)
	}
	requireContains(t, out, "Dry run: no registry writes were performed")
}

func TestQueueCommandWithoutQueue(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := runCLI(t, env, "queue")
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	requireContains(t, out, "run resolve first")
}

package main

import (
	"path/filepath"
	"testing"
)

func TestRegistryAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "registry", "list")
	if err != nil {
		t.Fatalf("registry list: %v", err)
	}
	requireContains(t, out, "Registry is empty")

	out, err = runCLI(t, env, "registry", "add", "Acme Corporation")
	if err != nil {
		t.Fatalf("registry add: %v", err)
	}
	requireContains(t, out, "Added Acme Corporation")

	out, err = runCLI(t, env, "registry", "list")
	if err != nil {
		t.Fatalf("registry list: %v", err)
	}
	requireContains(t, out, "Acme Corporation")
}

func TestRegistryAddRejectsEmptyName(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, err := runCLI(t, env, "registry", "add", "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestRegistryImport(t *testing.T) {
	env := setupCLITestEnv(t)

	csvPath := filepath.Join(env.baseDir, "brands.csv")
	writeFile(t, csvPath, "name,country\nAcme Corporation,US\nGlobex,DE\n,FR\n")

	out, err := runCLI(t, env, "registry", "import", csvPath)
	if err != nil {
		t.Fatalf("registry import: %v", err)
	}
	requireContains(t, out, "Imported 2 entities (1 rows skipped)")

	out, err = runCLI(t, env, "registry", "list")
	if err != nil {
		t.Fatalf("registry list: %v", err)
	}
	requireContains(t, out, "Globex")
}

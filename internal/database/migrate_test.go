package database

import (
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// 埋め込まれたマイグレーションがiofsソースとして読み込めることを検証する。
// 欠けたup/downペアや不正なファイル名はここで検出される。
func TestMigrationsFS_LoadsAsSource(t *testing.T) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("failed to create migration source: %v", err)
	}
	defer source.Close()

	first, err := source.First()
	if err != nil {
		t.Fatalf("no migrations found: %v", err)
	}
	if first != 1 {
		t.Errorf("first migration version = %d, want 1", first)
	}
}

func TestMigrationsFS_UpDownPairs(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file: %s", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("migration %s has no down file", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("migration %s has no up file", base)
		}
	}
}

func TestMigrationsFS_InitialSchema(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/000001_create_authors_and_posts.up.sql")
	if err != nil {
		t.Fatalf("failed to read initial migration: %v", err)
	}

	sql := string(data)
	for _, want := range []string{"CREATE TABLE", "authors", "posts", "view_count", "UNIQUE"} {
		if !strings.Contains(sql, want) {
			t.Errorf("initial migration should contain %q", want)
		}
	}
}

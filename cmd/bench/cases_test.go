package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSplitSQL(t *testing.T) {
	sql := `-- header comment
CREATE TABLE IF NOT EXISTS local_tips (
    locale_key TEXT PRIMARY KEY
);

INSERT INTO local_tips (locale_key) VALUES ('goa');
`
	got := splitSQL(sql)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
}

func TestSplitSQL_QuotedSemicolons(t *testing.T) {
	sql := "INSERT INTO local_tips (locale_key, tip) VALUES\n" +
		"    ('goa', 'Rent a scooter; carry cash'),\n" +
		"    ('agra', 'It''s closed on Fridays; go early');\n" +
		"SELECT 1;"
	got := splitSQL(sql)
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if !strings.Contains(got[0], "'Rent a scooter; carry cash'") || !strings.HasSuffix(got[0], "go early')") {
		t.Fatalf("literal split apart: %q", got[0])
	}
	if got[1] != "SELECT 1" {
		t.Fatalf("unexpected second statement %q", got[1])
	}
}

func TestSplitSQL_SeedMigration(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_local_tips.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	got := splitSQL(string(b))
	if len(got) != 2 {
		t.Fatalf("expected CREATE + INSERT, got %d statements: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "CREATE TABLE") || !strings.HasPrefix(got[1], "INSERT INTO") {
		t.Fatalf("unexpected statements %q", got)
	}
	if !strings.HasSuffix(got[1], "position = EXCLUDED.position") {
		t.Fatalf("insert truncated: %q", got[1])
	}
}

func TestExtractTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.sql")
	if err := os.WriteFile(path, []byte("create table if not exists local_tips (x int);\nCREATE TABLE IF NOT EXISTS other (y int);"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := extractTables(path)
	if err != nil {
		t.Fatalf("extractTables: %v", err)
	}
	if want := []string{"local_tips", "other"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

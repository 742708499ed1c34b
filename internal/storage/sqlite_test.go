package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	b, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer b.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteSaveAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	b, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}

	want := Table{
		"Snake":    {200, 100, 50},
		"Breakout": {500},
		"Pong":     {},
	}
	if err := b.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	b.Close()

	b, err = OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	snake := got["Snake"]
	if len(snake) != 3 || snake[0] != 200 || snake[1] != 100 || snake[2] != 50 {
		t.Errorf("Snake scores = %v, expected [200 100 50]", snake)
	}
	if len(got["Breakout"]) != 1 || got["Breakout"][0] != 500 {
		t.Errorf("Breakout scores = %v, expected [500]", got["Breakout"])
	}
	if len(got["Pong"]) != 0 {
		t.Errorf("Pong scores = %v, expected none", got["Pong"])
	}
}

func TestSQLiteSaveKeepsTimestamps(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer b.Close()

	if err := b.Save(Table{"Snake": {30}}); err != nil {
		t.Fatal(err)
	}
	before, err := b.Entries("Snake")
	if err != nil || len(before) != 1 {
		t.Fatalf("Entries() = %v, %v", before, err)
	}

	if err := b.Save(Table{"Snake": {40, 30}}); err != nil {
		t.Fatal(err)
	}
	after, err := b.Entries("Snake")
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(after))
	}
	if !after[1].CreatedAt.Equal(before[0].CreatedAt) {
		t.Errorf("existing score timestamp changed: %v -> %v", before[0].CreatedAt, after[1].CreatedAt)
	}
}

func TestLeaderboardOverSQLite(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}

	lb := NewLeaderboard(b, []string{"Snake"}, nil)
	defer lb.Close()

	lb.AddScore("Snake", 10)
	lb.AddScore("Snake", 40)

	entries := lb.Entries("Snake")
	if len(entries) != 2 || entries[0].Score != 40 {
		t.Errorf("Entries() = %+v, expected 40 first", entries)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("sqlite entries should carry timestamps")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadItems(t *testing.T) {
	path := writeCSV(t, `category,first_name,last_name,base_price
offense,John,Smith,100000
defense,Kim,Jones,150000
allrounder,Alex,Lee,200000
`)

	items, err := readItems(path, true)
	if err != nil {
		t.Fatalf("readItems failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].Name != "John Smith" {
		t.Errorf("name = %q, want %q", items[0].Name, "John Smith")
	}
	if items[0].BasePrice != 100_000 {
		t.Errorf("base price = %d, want 100000", items[0].BasePrice)
	}
	if items[1].Category != "defense" {
		t.Errorf("category = %q, want %q", items[1].Category, "defense")
	}
	for i, item := range items {
		if item.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Errorf("item %d has no generated ID", i)
		}
	}
}

func TestReadItemsRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"unknown category", "goalie,John,Smith,100000\n"},
		{"negative price", "offense,John,Smith,-5\n"},
		{"non-numeric price", "offense,John,Smith,abc\n"},
		{"empty name", "offense, , ,100000\n"},
		{"wrong field count", "offense,John,Smith\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.csv)
			if _, err := readItems(path, false); err == nil {
				t.Error("bad row accepted")
			}
		})
	}
}

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auction_data.json")
	s := New(path, nil)

	itemID := uuid.New()
	teamID := uuid.New()
	want := model.State{
		Pending: []model.Item{
			{ID: itemID, Name: "J. Smith", Category: model.CategoryOffense, BasePrice: 100_000},
		},
		Unsold: []model.Item{
			{ID: uuid.New(), Name: "K. Jones", Category: model.CategoryDefense, BasePrice: 150_000},
		},
		Teams: []model.Team{
			{ID: teamID, Name: "Falcons", OwnerID: "owner-1", Capacity: 18, Purse: 20_000_000, Roster: []uuid.UUID{uuid.New()}},
		},
		Participants: []model.Participant{
			{ID: "owner-1", Purse: 19_000_000},
		},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(got.Pending) != 1 || got.Pending[0].ID != itemID {
		t.Errorf("Pending = %+v, want one item %s", got.Pending, itemID)
	}
	if len(got.Unsold) != 1 {
		t.Errorf("Unsold len = %d, want 1", len(got.Unsold))
	}
	if len(got.Teams) != 1 || got.Teams[0].Purse != 20_000_000 {
		t.Errorf("Teams = %+v", got.Teams)
	}
	if len(got.Participants) != 1 || got.Participants[0].Purse != 19_000_000 {
		t.Errorf("Participants = %+v", got.Participants)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	s := New(path, nil)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load of missing file returned error: %v", err)
	}
	if len(got.Pending) != 0 || len(got.Teams) != 0 {
		t.Errorf("missing file state = %+v, want empty", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s := New(path, nil)
	got, err := s.Load()
	if err == nil {
		t.Fatal("Load of corrupt file returned no error")
	}
	if len(got.Pending) != 0 || len(got.Teams) != 0 {
		t.Errorf("corrupt file state = %+v, want empty", got)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auction_data.json")
	s := New(path, nil)

	if err := s.Save(model.State{Participants: []model.Participant{{ID: "a", Purse: 1}}}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := s.Save(model.State{Participants: []model.Participant{{ID: "b", Purse: 2}}}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Participants) != 1 || got.Participants[0].ID != "b" {
		t.Errorf("Participants = %+v, want only %q", got.Participants, "b")
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

// Store persists auction state as a single JSON file: the authoritative
// recovery format on restart.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a store writing to path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the full state. The file is replaced atomically (temp file +
// rename) so a crash mid-write never leaves a torn snapshot behind.
func (s *Store) Save(st model.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Load reads the persisted state. A missing file yields empty state and no
// error; a corrupt file yields empty state and the parse error so the caller
// can log it and carry on (never fatal).
func (s *Store) Load() (model.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no state file, starting empty", "path", s.path)
			return model.State{}, nil
		}
		return model.State{}, fmt.Errorf("read state file: %w", err)
	}

	var st model.State
	if err := json.Unmarshal(data, &st); err != nil {
		return model.State{}, fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	return st, nil
}

package store

import (
	"context"
	"os"
	"path/filepath"

	"driftboard/internal/model"
)

const (
	boardFileName = "board.json"
	stateFileName = "index.sqlite"
)

// Board is the persisted state: a nested array of task records.
type Board struct {
	Version int          `json:"version"`
	Tasks   []model.Task `json:"tasks"`
}

// Store reads and writes one board directory (a .driftboard dir).
//
// SQLite (index.sqlite) is the source of truth; a legacy board.json is
// imported into it once, on first load. The nested JSON shape remains the
// wire format for import/export and the HTTP API.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .driftboard directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".driftboard")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the board dir: an explicitly discovered .driftboard
// above the working directory, else .driftboard in the working directory.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".driftboard"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) boardPath() string {
	return filepath.Join(s.Dir, boardFileName)
}

// StatePath returns the path of the SQLite state file, for watchers.
func (s Store) StatePath() string {
	return filepath.Join(s.Dir, stateFileName)
}

// Load loads the board. See LoadSQLite for the import-once behavior.
func (s Store) Load() (*Board, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

// Save persists the board.
func (s Store) Save(b *Board) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), b)
}

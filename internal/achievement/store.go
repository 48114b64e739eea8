package achievement

import (
	"errors"
	"log/slog"

	"github.com/zappabad/marketsim/internal/storage"
)

// Store persists achievements as a JSON array.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the achievements. A missing or empty store is populated with
// the catalog and written back.
func (s *Store) Load() []Achievement {
	var items []Achievement
	err := storage.ReadJSON(s.path, &items)
	switch {
	case err != nil && !errors.Is(err, storage.ErrNotExist):
		slog.Warn("failed to load achievements, using catalog", "path", s.path, "err", err)
		return Catalog()
	case len(items) == 0:
		items = Catalog()
		if err := s.Save(items); err != nil {
			slog.Warn("failed to write achievement catalog", "path", s.path, "err", err)
		}
	}
	return items
}

// Save writes the achievements.
func (s *Store) Save(items []Achievement) error {
	return storage.WriteJSON(s.path, items)
}

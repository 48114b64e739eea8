package stock

import (
	"errors"
	"log/slog"

	"github.com/zappabad/marketsim/internal/storage"
)

// Store persists the stock catalog as a JSON array.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the catalog. A missing file is bootstrapped with the defaults;
// unreadable or empty files fall back to the defaults in memory.
func (s *Store) Load() []Config {
	var cfgs []Config
	err := storage.ReadJSON(s.path, &cfgs)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		slog.Info("stocks file missing, writing defaults", "path", s.path)
		cfgs = Defaults()
		if err := s.Save(cfgs); err != nil {
			slog.Warn("failed to write default stocks", "path", s.path, "err", err)
		}
		return cfgs
	case err != nil:
		slog.Warn("failed to load stocks, using defaults", "path", s.path, "err", err)
		return Defaults()
	case len(cfgs) == 0:
		slog.Warn("stocks file is empty, using defaults", "path", s.path)
		return Defaults()
	}
	return cfgs
}

// Save writes the catalog.
func (s *Store) Save(cfgs []Config) error {
	return storage.WriteJSON(s.path, cfgs)
}

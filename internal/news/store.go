package news

import (
	"errors"
	"log/slog"

	"github.com/zappabad/marketsim/internal/storage"
)

// Store persists news templates as {"market_news": [...], "stock_news": [...]}.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the templates. A missing file is bootstrapped with the
// defaults; unreadable files fall back to the defaults in memory.
func (s *Store) Load() Templates {
	var t Templates
	err := storage.ReadJSON(s.path, &t)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		slog.Info("news file missing, writing defaults", "path", s.path)
		t = DefaultTemplates()
		if err := s.Save(t); err != nil {
			slog.Warn("failed to write default news", "path", s.path, "err", err)
		}
		return t
	case err != nil:
		slog.Warn("failed to load news, using defaults", "path", s.path, "err", err)
		return DefaultTemplates()
	case len(t.MarketNews) == 0 && len(t.StockNews) == 0:
		slog.Warn("news file is empty, using defaults", "path", s.path)
		return DefaultTemplates()
	}
	return t
}

// Save writes the templates.
func (s *Store) Save(t Templates) error {
	return storage.WriteJSON(s.path, t)
}

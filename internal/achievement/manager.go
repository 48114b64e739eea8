// Package achievement tracks one-way unlockable badges and evaluates the
// daily predicates that unlock them.
package achievement

import (
	"log/slog"
	"time"
)

// Manager owns the achievement set in catalog order.
type Manager struct {
	store *Store
	items []Achievement
	index map[string]int
	now   func() time.Time
}

// NewManager loads achievements from store. A nil store keeps everything in
// memory only.
func NewManager(store *Store) *Manager {
	items := Catalog()
	if store != nil {
		items = merge(items, store.Load())
	}
	m := &Manager{
		store: store,
		items: items,
		index: make(map[string]int, len(items)),
		now:   time.Now,
	}
	for i, a := range items {
		m.index[a.ID] = i
	}
	return m
}

// merge applies stored unlock state onto the catalog. Stored entries the
// catalog doesn't know are kept after the catalog.
func merge(base, stored []Achievement) []Achievement {
	byID := make(map[string]int, len(base))
	for i, a := range base {
		byID[a.ID] = i
	}
	for _, s := range stored {
		i, ok := byID[s.ID]
		if !ok {
			base = append(base, s)
			byID[s.ID] = len(base) - 1
			continue
		}
		if s.Unlocked {
			base[i].Unlocked = true
			base[i].UnlockDate = s.UnlockDate
		}
	}
	return base
}

// Unlock marks id unlocked. The bool is true only on the first unlock of a
// known id; that call also persists the store.
func (m *Manager) Unlock(id string) (Achievement, bool) {
	i, ok := m.index[id]
	if !ok || m.items[i].Unlocked {
		return Achievement{}, false
	}
	now := m.now()
	m.items[i].Unlocked = true
	m.items[i].UnlockDate = &now
	slog.Info("achievement unlocked", "id", id, "name", m.items[i].Name)

	if m.store != nil {
		if err := m.store.Save(m.items); err != nil {
			slog.Warn("failed to save achievements", "path", m.store.path, "err", err)
		}
	}
	return m.items[i], true
}

// CheckAchievements evaluates every predicate and returns the achievements
// newly unlocked by this call, in catalog order.
func (m *Manager) CheckAchievements(market MarketState, p PortfolioState) []Achievement {
	var unlocked []Achievement
	for _, a := range m.items {
		pred, ok := predicates[a.ID]
		if !ok || a.Unlocked || !pred(market, p) {
			continue
		}
		if got, ok := m.Unlock(a.ID); ok {
			unlocked = append(unlocked, got)
		}
	}
	return unlocked
}

// All returns a copy of every achievement, catalog order.
func (m *Manager) All() []Achievement {
	out := make([]Achievement, len(m.items))
	copy(out, m.items)
	return out
}

// Get returns the achievement with id.
func (m *Manager) Get(id string) (Achievement, bool) {
	i, ok := m.index[id]
	if !ok {
		return Achievement{}, false
	}
	return m.items[i], true
}

// UnlockedCount returns how many achievements are unlocked.
func (m *Manager) UnlockedCount() int {
	n := 0
	for _, a := range m.items {
		if a.Unlocked {
			n++
		}
	}
	return n
}

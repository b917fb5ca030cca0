package prefs

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// FavoritesKey is the preference key holding the favorite game ids.
const FavoritesKey = "gameFavorites"

// DefaultFavorites is the favorite set used when nothing usable is stored.
var DefaultFavorites = []string{"tictactoe", "snake"}

// Favorites is the ordered set of favorite game ids, written through to a
// Store on every change.
type Favorites struct {
	mu    sync.RWMutex
	store Store
	ids   []string
}

// LoadFavorites reads the favorite set from store. A missing or unreadable
// value falls back to DefaultFavorites; the failure is logged, not returned.
func LoadFavorites(store Store, log logrus.FieldLogger) *Favorites {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f := &Favorites{store: store, ids: append([]string(nil), DefaultFavorites...)}

	raw, ok, err := store.Get(FavoritesKey)
	switch {
	case err != nil:
		log.WithError(err).Warn("unable to read favorites, using defaults")
	case !ok:
	default:
		ids, err := decodeFavorites(raw)
		if err != nil {
			log.WithError(err).Warn("unable to decode favorites, using defaults")
			break
		}
		f.ids = ids
	}
	return f
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return indexOf(f.ids, id) >= 0
}

// List returns the favorites in the order they were added.
func (f *Favorites) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.ids...)
}

// Toggle adds id when absent or removes it when present, persists the new
// set and returns whether id is now a favorite. On a write failure the
// in-memory set is left unchanged.
func (f *Favorites) Toggle(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]string, 0, len(f.ids)+1)
	added := true
	for _, v := range f.ids {
		if v == id {
			added = false
			continue
		}
		next = append(next, v)
	}
	if added {
		next = append(next, id)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return !added, fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.store.Set(FavoritesKey, string(raw)); err != nil {
		return !added, fmt.Errorf("store favorites: %w", err)
	}

	f.ids = next
	return added, nil
}

func decodeFavorites(raw string) ([]string, error) {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && indexOf(out, id) < 0 {
			out = append(out, id)
		}
	}
	return out, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

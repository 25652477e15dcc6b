package navigation

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Persisted storage keys
const (
	SelectedKeysKey = "selectedKeys"
	OpenKeysKey     = "openKeys"
)

// Crumb is one breadcrumb entry
type Crumb struct {
	Title string `json:"title"`
}

// Store is the navigation state of one shell
type Store struct {
	menu     Menu
	storage  Storage
	logger   *zap.Logger
	selected []string
	open     []string
	trail    []Crumb
}

// NewStore mounts a store: selection and expansion are restored from storage
// when well formed, and the breadcrumb starts empty.
func NewStore(menu Menu, storage Storage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{menu: menu, storage: storage, logger: logger}
	s.selected = s.restore(SelectedKeysKey)
	if len(s.selected) > 1 {
		s.selected = s.selected[:1]
	}
	s.open = s.restore(OpenKeysKey)
	return s
}

func (s *Store) restore(key string) []string {
	raw, ok := s.storage.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		s.logger.Debug("ignoring malformed navigation state",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil
	}
	return keys
}

func (s *Store) persist(key string, keys []string) {
	if keys == nil {
		keys = []string{}
	}
	b, _ := json.Marshal(keys)
	s.storage.Set(key, string(b))
}

// Select selects key and rebuilds the breadcrumb from keyPath, which is
// ordered leaf first. There is one crumb per keyPath entry; keys missing
// from the menu get an empty title.
func (s *Store) Select(key string, keyPath []string) {
	s.selected = []string{key}
	s.persist(SelectedKeysKey, s.selected)

	trail := make([]Crumb, len(keyPath))
	for i := range keyPath {
		trail[i] = Crumb{Title: s.menu.title(keyPath[len(keyPath)-1-i])}
	}
	s.trail = trail
}

// SetExpanded replaces the set of expanded submenus
func (s *Store) SetExpanded(keys []string) {
	s.open = append([]string(nil), keys...)
	s.persist(OpenKeysKey, s.open)
}

// Reset clears selection, expansion and breadcrumb, in memory and in storage
func (s *Store) Reset() {
	s.selected = nil
	s.open = nil
	s.trail = nil
	s.storage.Remove(SelectedKeysKey)
	s.storage.Remove(OpenKeysKey)
}

// RestoreTrail carries a breadcrumb computed earlier in the same shell
func (s *Store) RestoreTrail(trail []Crumb) {
	s.trail = append([]Crumb(nil), trail...)
}

func (s *Store) SelectedKeys() []string {
	return append([]string(nil), s.selected...)
}

func (s *Store) OpenKeys() []string {
	return append([]string(nil), s.open...)
}

// Breadcrumb returns the stored trail, without the root crumb
func (s *Store) Breadcrumb() []Crumb {
	return append([]Crumb(nil), s.trail...)
}

// Trail returns the breadcrumb as rendered, starting at the root crumb
func (s *Store) Trail() []Crumb {
	return append([]Crumb{{Title: RootCrumb}}, s.trail...)
}

// IsSelected reports whether key is the selected menu item
func (s *Store) IsSelected(key string) bool {
	return len(s.selected) == 1 && s.selected[0] == key
}

// IsOpen reports whether submenu key is expanded
func (s *Store) IsOpen(key string) bool {
	for _, k := range s.open {
		if k == key {
			return true
		}
	}
	return false
}

// Menu returns the menu tree behind the store
func (s *Store) Menu() Menu {
	return s.menu
}

// Package preferences holds user interface preferences that outlive a
// session.
package preferences

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prudhvinik1/estatesync/internal/repositories"
)

// DarkModeKey is the preference key of the dark mode flag.
const DarkModeKey = "darkMode"

// toolkitBoolPrefix marks booleans stored by the UI toolkit, e.g. "__q_bool|1".
const toolkitBoolPrefix = "__q_bool"

// ThemeStore keeps the dark mode flag and persists every change. Subscribers
// are told about changes so a UI toolkit flag can follow the store; a
// toolkit change is fed back through SetDark.
type ThemeStore struct {
	repo repositories.PreferenceRepository
	log  zerolog.Logger

	mu     sync.RWMutex
	dark   bool
	nextID int
	subs   map[int]func(bool)
}

// NewThemeStore reads the saved flag. A missing, unreadable or malformed
// value leaves dark mode off.
func NewThemeStore(ctx context.Context, repo repositories.PreferenceRepository, log zerolog.Logger) *ThemeStore {
	s := &ThemeStore{
		repo: repo,
		log:  log.With().Str("preference", DarkModeKey).Logger(),
		subs: make(map[int]func(bool)),
	}

	raw, ok, err := repo.Get(ctx, DarkModeKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read dark mode setting")
		return s
	}
	if ok {
		dark, err := parseDarkMode(raw)
		if err != nil {
			s.log.Warn().Err(err).Str("value", raw).Msg("failed to parse dark mode setting")
		}
		s.dark = dark
	}
	return s
}

func parseDarkMode(raw string) (bool, error) {
	if strings.HasPrefix(raw, toolkitBoolPrefix) {
		return strings.Contains(raw, "|1"), nil
	}
	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		return false, err
	}
	return dark, nil
}

func (s *ThemeStore) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// SetDark changes the flag. Setting the current value does nothing.
func (s *ThemeStore) SetDark(ctx context.Context, dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.persist(ctx, dark)
	for _, fn := range subs {
		fn(dark)
	}
}

// Toggle flips the flag and returns the new value.
func (s *ThemeStore) Toggle(ctx context.Context) bool {
	s.mu.RLock()
	next := !s.dark
	s.mu.RUnlock()

	s.SetDark(ctx, next)
	return next
}

// Subscribe registers fn for changes and returns a function removing it.
func (s *ThemeStore) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *ThemeStore) persist(ctx context.Context, dark bool) {
	raw, _ := json.Marshal(dark)
	if err := s.repo.Set(ctx, DarkModeKey, string(raw)); err != nil {
		s.log.Warn().Err(err).Msg("failed to save dark mode setting")
	}
}

// Package theme persists the light/dark preference and provides the
// lipgloss styles the terminal UI renders with.
package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/nibzard/tasks/internal/kv"
)

// StorageKey is the key the preference is stored under, as a JSON boolean.
const StorageKey = "dark-mode"

// Mode names a theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode parses "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid theme %q, must be light or dark", s)
}

// Theme holds the current preference.
type Theme struct {
	mu    sync.RWMutex
	store kv.Store
	dark  bool
}

// New returns a Theme with the given initial preference. Nothing is
// written until Set or Toggle.
func New(store kv.Store, dark bool) *Theme {
	return &Theme{store: store, dark: dark}
}

// Load reads the preference from store. A missing or empty value is light.
func Load(ctx context.Context, store kv.Store) (*Theme, error) {
	raw, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	t := New(store, false)
	if !ok || raw == "" {
		return t, nil
	}
	if err := json.Unmarshal([]byte(raw), &t.dark); err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", StorageKey, raw, err)
	}
	return t, nil
}

// Dark reports whether dark mode is on.
func (t *Theme) Dark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Mode returns Dark or Light.
func (t *Theme) Mode() Mode {
	if t.Dark() {
		return Dark
	}
	return Light
}

// Set changes and persists the preference. The new value is kept even
// when the write fails.
func (t *Theme) Set(ctx context.Context, dark bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setLocked(ctx, dark)
}

// Toggle flips the preference and returns the new value. The flip and the
// write happen under one lock.
func (t *Theme) Toggle(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	dark := !t.dark
	return dark, t.setLocked(ctx, dark)
}

func (t *Theme) setLocked(ctx context.Context, dark bool) error {
	t.dark = dark
	if err := t.store.Set(ctx, StorageKey, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	return nil
}

// Styles returns the styles for the current mode.
func (t *Theme) Styles() Styles {
	if t.Dark() {
		return NewStyles(DarkPalette)
	}
	return NewStyles(LightPalette)
}

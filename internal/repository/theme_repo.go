package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/s9b/memenem/internal/domain"
)

// ThemeKey is the store key for the selected colour theme.
const ThemeKey = "theme"

// ThemeRepository persists the light/dark preference.
type ThemeRepository struct {
	store KVStore
}

func NewThemeRepository(store KVStore) *ThemeRepository {
	return &ThemeRepository{store: store}
}

// Get returns the stored theme, or light when none is stored or the value
// is unrecognised.
func (r *ThemeRepository) Get(ctx context.Context) (domain.Theme, error) {
	raw, err := r.store.GetItem(ctx, ThemeKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.ThemeLight, nil
		}
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	theme := domain.Theme(raw)
	if !theme.Valid() {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

func (r *ThemeRepository) Set(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	if err := r.store.SetItem(ctx, ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle flips the stored theme and returns the new value.
func (r *ThemeRepository) Toggle(ctx context.Context) (domain.Theme, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := r.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

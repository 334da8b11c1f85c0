package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/logger"
)

// CollectionRepository persists the saved-meme collection as a single JSON
// array under domain.CollectionKey.
type CollectionRepository struct {
	store KVStore
}

// NewCollectionRepository creates a new CollectionRepository.
// Parameters:
//   - store: key/value store holding the collection blob.
// Returns:
//   - *CollectionRepository: repository instance bound to store.
func NewCollectionRepository(store KVStore) *CollectionRepository {
	return &CollectionRepository{store: store}
}

// Load returns the stored collection in saved order.
// A missing key yields an empty collection. A blob that fails to decode is
// logged and also treated as empty; the next Save replaces it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meme: stored memes, never nil.
//   - error: non-nil only if the store itself fails.
func (r *CollectionRepository) Load(ctx context.Context) ([]domain.Meme, error) {
	raw, err := r.store.GetItem(ctx, domain.CollectionKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Meme{}, nil
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	if raw == "" {
		return []domain.Meme{}, nil
	}

	var memes []domain.Meme
	if err := json.Unmarshal([]byte(raw), &memes); err != nil {
		logger.CtxWarn(ctx, "Error loading saved memes: %v", err)
		return []domain.Meme{}, nil
	}
	if memes == nil {
		memes = []domain.Meme{}
	}
	return memes, nil
}

// Save replaces the stored collection with memes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - memes: full collection to persist.
// Returns:
//   - error: non-nil if encoding or the write fails.
func (r *CollectionRepository) Save(ctx context.Context, memes []domain.Meme) error {
	if memes == nil {
		memes = []domain.Meme{}
	}
	data, err := json.Marshal(memes)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := r.store.SetItem(ctx, domain.CollectionKey, string(data)); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// Clear removes the stored collection entirely.
func (r *CollectionRepository) Clear(ctx context.Context) error {
	if err := r.store.RemoveItem(ctx, domain.CollectionKey); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	return nil
}

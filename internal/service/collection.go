package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/metrics"
	"github.com/s9b/memenem/internal/repository"
)

// ErrMemeNotSaved is returned when an id is not in the saved collection.
var ErrMemeNotSaved = errors.New("meme not found in collection")

// CollectionService manages the locally saved memes. Every mutation loads
// the whole collection, changes it and writes it back under one lock.
type CollectionService struct {
	repo *repository.CollectionRepository
	mu   sync.Mutex
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(repo *repository.CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

// List returns every saved meme in saved order.
func (s *CollectionService) List(ctx context.Context) ([]domain.Meme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, "list")
}

// Search returns memes whose caption, template name or style contains
// query, ignoring case. A blank query returns everything.
func (s *CollectionService) Search(ctx context.Context, query string) ([]domain.Meme, error) {
	memes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterMemes(memes, query), nil
}

// FilterMemes applies the collection search to an in-memory list.
func FilterMemes(memes []domain.Meme, query string) []domain.Meme {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return memes
	}
	out := make([]domain.Meme, 0, len(memes))
	for _, m := range memes {
		if strings.Contains(strings.ToLower(m.Caption), q) ||
			strings.Contains(strings.ToLower(m.TemplateName), q) ||
			strings.Contains(strings.ToLower(string(m.Style)), q) {
			out = append(out, m)
		}
	}
	return out
}

// Get returns one saved meme.
func (s *CollectionService) Get(ctx context.Context, id string) (*domain.Meme, error) {
	memes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(memes, id); i >= 0 {
		m := memes[i]
		return &m, nil
	}
	return nil, ErrMemeNotSaved
}

// IsSaved reports whether id is in the collection.
func (s *CollectionService) IsSaved(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrMemeNotSaved) {
		return false, nil
	}
	return err == nil, err
}

// Save appends meme unless a meme with the same id is already saved.
// Returns true when the meme was added.
func (s *CollectionService) Save(ctx context.Context, meme domain.Meme) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memes, err := s.load(ctx, "save")
	if err != nil {
		return false, err
	}
	if indexOf(memes, meme.ID) >= 0 {
		metrics.CollectionOperationsTotal.WithLabelValues("save", "duplicate").Inc()
		return false, nil
	}
	memes = append(memes, meme)
	if err := s.store(ctx, "save", memes); err != nil {
		return false, err
	}
	logger.With(logger.Fields{logger.FieldMemeID: meme.ID}).Info(ctx, "Meme saved to collection")
	return true, nil
}

// Remove deletes id from the collection. Returns false if it was not saved.
func (s *CollectionService) Remove(ctx context.Context, id string) (bool, error) {
	n, err := s.removeIDs(ctx, "remove", []string{id})
	return n > 0, err
}

// RemoveMany deletes every listed id and returns how many were removed.
func (s *CollectionService) RemoveMany(ctx context.Context, ids []string) (int, error) {
	return s.removeIDs(ctx, "bulk_remove", ids)
}

func (s *CollectionService) removeIDs(ctx context.Context, op string, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memes, err := s.load(ctx, op)
	if err != nil {
		return 0, err
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]domain.Meme, 0, len(memes))
	for _, m := range memes {
		if _, ok := drop[m.ID]; !ok {
			kept = append(kept, m)
		}
	}
	removed := len(memes) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.store(ctx, op, kept); err != nil {
		return 0, err
	}
	logger.With(logger.Fields{}).WithCount(removed).Info(ctx, "Memes removed from collection")
	return removed, nil
}

// UpdateUpvotes sets the upvote count of a saved meme. Returns false when
// the meme is not saved.
func (s *CollectionService) UpdateUpvotes(ctx context.Context, id string, upvotes int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memes, err := s.load(ctx, "update_upvotes")
	if err != nil {
		return false, err
	}
	i := indexOf(memes, id)
	if i < 0 {
		return false, nil
	}
	memes[i].Upvotes = upvotes
	if err := s.store(ctx, "update_upvotes", memes); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every saved meme.
func (s *CollectionService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		metrics.CollectionOperationsTotal.WithLabelValues("clear", "error").Inc()
		return err
	}
	metrics.CollectionOperationsTotal.WithLabelValues("clear", "ok").Inc()
	metrics.CollectionSize.Set(0)
	return nil
}

// Stats summarises the collection.
func (s *CollectionService) Stats(ctx context.Context) (domain.CollectionStats, error) {
	memes, err := s.List(ctx)
	if err != nil {
		return domain.CollectionStats{}, err
	}
	return ComputeStats(memes), nil
}

// ComputeStats returns count, rounded average virality, total upvotes and
// the number of distinct styles.
func ComputeStats(memes []domain.Meme) domain.CollectionStats {
	stats := domain.CollectionStats{Count: len(memes)}
	if len(memes) == 0 {
		return stats
	}
	var sum float64
	styles := make(map[domain.HumorStyle]struct{})
	for _, m := range memes {
		sum += m.ViralityScore
		stats.TotalUpvotes += m.Upvotes
		styles[m.Style] = struct{}{}
	}
	stats.AverageVirality = format.RoundScore(sum / float64(len(memes)))
	stats.UniqueStyleCount = len(styles)
	return stats
}

func (s *CollectionService) load(ctx context.Context, op string) ([]domain.Meme, error) {
	memes, err := s.repo.Load(ctx)
	if err != nil {
		metrics.CollectionOperationsTotal.WithLabelValues(op, "error").Inc()
		return nil, err
	}
	metrics.CollectionSize.Set(float64(len(memes)))
	return memes, nil
}

func (s *CollectionService) store(ctx context.Context, op string, memes []domain.Meme) error {
	if err := s.repo.Save(ctx, memes); err != nil {
		metrics.CollectionOperationsTotal.WithLabelValues(op, "error").Inc()
		logger.CtxError(ctx, "Error saving memes: %v", err)
		return err
	}
	metrics.CollectionOperationsTotal.WithLabelValues(op, "ok").Inc()
	metrics.CollectionSize.Set(float64(len(memes)))
	return nil
}

func indexOf(memes []domain.Meme, id string) int {
	for i := range memes {
		if memes[i].ID == id {
			return i
		}
	}
	return -1
}

package service

import (
	"context"
	"time"

	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/logger"
)

// LoadMoreStep is how many extra trending memes LoadMore asks for.
const LoadMoreStep = 20

// MemeAPI is the subset of the backend client the meme service uses.
type MemeAPI interface {
	GenerateMeme(ctx context.Context, req domain.GenerateMemeRequest) (*domain.GenerateMemeResponse, error)
	GetTemplates(ctx context.Context, limit int, source string) (*domain.TemplatesResponse, error)
	GetTrendingMemes(ctx context.Context, limit int, sortBy domain.TrendingSort) (*domain.TrendingMemesResponse, error)
	UpvoteMeme(ctx context.Context, req domain.UpvoteRequest) (*domain.UpvoteResponse, error)
	GetViralityScore(ctx context.Context, memeID string) (*domain.ViralityScoreResponse, error)
	CheckHealth(ctx context.Context) (map[string]interface{}, error)
	GetStatus(ctx context.Context) (map[string]interface{}, error)
	IsBackendHealthy(ctx context.Context) bool
}

var _ MemeAPI = (*client.Client)(nil)

// MemeService runs backend actions and keeps the saved collection in sync
// with their results.
type MemeService struct {
	api        MemeAPI
	collection *CollectionService
}

// NewMemeService creates a new MemeService.
// Parameters:
//   - api: backend client.
//   - collection: saved collection; may be nil when nothing is persisted.
func NewMemeService(api MemeAPI, collection *CollectionService) *MemeService {
	return &MemeService{api: api, collection: collection}
}

// GenerateResult is a generated meme and whether it was saved.
type GenerateResult struct {
	Meme  domain.Meme `json:"meme"`
	Saved bool        `json:"saved"`
}

// Generate asks the backend for a new meme. With save set the meme is
// appended to the collection; a failed save is logged, not returned, since
// the meme itself was generated.
func (s *MemeService) Generate(ctx context.Context, req domain.GenerateMemeRequest, save bool) (*GenerateResult, error) {
	start := time.Now()
	resp, err := s.api.GenerateMeme(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Meme: resp.Meme}
	logger.With(logger.Fields{
		logger.FieldMemeID: resp.Meme.ID,
		"template":         resp.Meme.TemplateName,
		"style":            resp.Meme.Style,
	}).WithDuration(time.Since(start).Milliseconds()).Info(ctx, "Meme generated")

	if save && s.collection != nil {
		added, err := s.collection.Save(ctx, resp.Meme)
		if err != nil {
			logger.CtxWarn(ctx, "Generated meme %s could not be saved: %v", resp.Meme.ID, err)
		}
		result.Saved = added
	}
	return result, nil
}

// Trending returns up to limit trending memes. limit <= 0 uses the default.
func (s *MemeService) Trending(ctx context.Context, limit int, sortBy domain.TrendingSort) ([]domain.Meme, error) {
	resp, err := s.api.GetTrendingMemes(ctx, limit, sortBy)
	if err != nil {
		return nil, err
	}
	if resp.Memes == nil {
		return []domain.Meme{}, nil
	}
	return resp.Memes, nil
}

// LoadMore refetches the trending list with LoadMoreStep more entries and
// returns the new limit alongside the memes.
func (s *MemeService) LoadMore(ctx context.Context, currentLimit int, sortBy domain.TrendingSort) (int, []domain.Meme, error) {
	if currentLimit <= 0 {
		currentLimit = client.DefaultTrendingLimit
	}
	limit := currentLimit + LoadMoreStep
	memes, err := s.Trending(ctx, limit, sortBy)
	if err != nil {
		return currentLimit, nil, err
	}
	return limit, memes, nil
}

// Templates returns available templates.
func (s *MemeService) Templates(ctx context.Context, limit int, source string) ([]domain.Template, error) {
	resp, err := s.api.GetTemplates(ctx, limit, source)
	if err != nil {
		return nil, err
	}
	if resp.Templates == nil {
		return []domain.Template{}, nil
	}
	return resp.Templates, nil
}

// Upvote records an upvote and copies the new count into the saved
// collection when the meme is saved there.
func (s *MemeService) Upvote(ctx context.Context, memeID string) (int, error) {
	ctx = logger.SetMemeID(ctx, memeID)
	resp, err := s.api.UpvoteMeme(ctx, domain.UpvoteRequest{MemeID: memeID})
	if err != nil {
		return 0, err
	}
	if s.collection != nil {
		if _, err := s.collection.UpdateUpvotes(ctx, memeID, resp.NewUpvoteCount); err != nil {
			logger.CtxWarn(ctx, "Upvote count not synced to collection: %v", err)
		}
	}
	return resp.NewUpvoteCount, nil
}

// Score fetches the virality breakdown of a meme.
func (s *MemeService) Score(ctx context.Context, memeID string) (*domain.ViralityScoreResponse, error) {
	return s.api.GetViralityScore(ctx, memeID)
}

func (s *MemeService) Health(ctx context.Context) (map[string]interface{}, error) {
	return s.api.CheckHealth(ctx)
}

func (s *MemeService) Status(ctx context.Context) (map[string]interface{}, error) {
	return s.api.GetStatus(ctx)
}

// IsHealthy reports whether the backend answers its health check.
func (s *MemeService) IsHealthy(ctx context.Context) bool {
	return s.api.IsBackendHealthy(ctx)
}

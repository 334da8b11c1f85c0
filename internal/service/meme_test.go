package service

import (
	"context"
	"errors"
	"testing"

	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/domain"
)

type fakeAPI struct {
	generated   domain.Meme
	generateErr error
	trending    []domain.Meme
	lastLimit   int
	lastSort    domain.TrendingSort
	upvotes     int
	upvoteErr   error
	healthErr   error
}

func (f *fakeAPI) GenerateMeme(ctx context.Context, req domain.GenerateMemeRequest) (*domain.GenerateMemeResponse, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &domain.GenerateMemeResponse{Success: true, Meme: f.generated}, nil
}

func (f *fakeAPI) GetTemplates(ctx context.Context, limit int, source string) (*domain.TemplatesResponse, error) {
	return &domain.TemplatesResponse{Success: true}, nil
}

func (f *fakeAPI) GetTrendingMemes(ctx context.Context, limit int, sortBy domain.TrendingSort) (*domain.TrendingMemesResponse, error) {
	f.lastLimit = limit
	f.lastSort = sortBy
	return &domain.TrendingMemesResponse{Success: true, Memes: f.trending, Count: len(f.trending)}, nil
}

func (f *fakeAPI) UpvoteMeme(ctx context.Context, req domain.UpvoteRequest) (*domain.UpvoteResponse, error) {
	if f.upvoteErr != nil {
		return nil, f.upvoteErr
	}
	return &domain.UpvoteResponse{Success: true, NewUpvoteCount: f.upvotes}, nil
}

func (f *fakeAPI) GetViralityScore(ctx context.Context, memeID string) (*domain.ViralityScoreResponse, error) {
	return &domain.ViralityScoreResponse{Success: true, MemeID: memeID, ViralityScore: 88}, nil
}

func (f *fakeAPI) CheckHealth(ctx context.Context) (map[string]interface{}, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return map[string]interface{}{"status": "healthy"}, nil
}

func (f *fakeAPI) IsBackendHealthy(ctx context.Context) bool {
	_, err := f.CheckHealth(ctx)
	return err == nil
}

func (f *fakeAPI) GetStatus(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"version": "1.0.0"}, nil
}

func TestGenerateAutoSave(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	api := &fakeAPI{generated: sampleMeme("g1", domain.StyleWholesome, 66, 0)}
	svc := NewMemeService(api, col)

	res, err := svc.Generate(ctx, domain.GenerateMemeRequest{Topic: "mondays"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved {
		t.Error("meme saved without save flag")
	}

	res, err = svc.Generate(ctx, domain.GenerateMemeRequest{Topic: "mondays"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Saved || res.Meme.ID != "g1" {
		t.Errorf("Generate result = %+v", res)
	}
	if saved, _ := col.IsSaved(ctx, "g1"); !saved {
		t.Error("generated meme missing from collection")
	}
}

func TestGeneratePropagatesClientError(t *testing.T) {
	api := &fakeAPI{generateErr: client.ErrRateLimited}
	_, err := NewMemeService(api, nil).Generate(context.Background(), domain.GenerateMemeRequest{Topic: "x"}, true)
	if !errors.Is(err, client.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestUpvoteSyncsSavedMeme(t *testing.T) {
	ctx := context.Background()
	col := newTestCollection(t)
	col.Save(ctx, sampleMeme("u1", domain.StyleSarcastic, 50, 2))
	svc := NewMemeService(&fakeAPI{upvotes: 3}, col)

	n, err := svc.Upvote(ctx, "u1")
	if err != nil || n != 3 {
		t.Fatalf("Upvote = %d, %v", n, err)
	}
	m, _ := col.Get(ctx, "u1")
	if m.Upvotes != 3 {
		t.Errorf("saved upvotes = %d, want 3", m.Upvotes)
	}

	if _, err := svc.Upvote(ctx, "not-saved"); err != nil {
		t.Errorf("upvoting an unsaved meme should succeed: %v", err)
	}
}

func TestLoadMoreAddsStep(t *testing.T) {
	api := &fakeAPI{trending: []domain.Meme{sampleMeme("t1", domain.StyleSarcastic, 99, 0)}}
	svc := NewMemeService(api, nil)

	limit, memes, err := svc.LoadMore(context.Background(), 20, domain.SortByUpvotes)
	if err != nil {
		t.Fatal(err)
	}
	if limit != 40 || api.lastLimit != 40 || api.lastSort != domain.SortByUpvotes {
		t.Errorf("limit=%d api limit=%d sort=%s", limit, api.lastLimit, api.lastSort)
	}
	if len(memes) != 1 {
		t.Errorf("got %d memes", len(memes))
	}

	limit, _, _ = svc.LoadMore(context.Background(), 0, "")
	if limit != 40 {
		t.Errorf("LoadMore from default = %d, want 40", limit)
	}
}

func TestIsHealthy(t *testing.T) {
	if !NewMemeService(&fakeAPI{}, nil).IsHealthy(context.Background()) {
		t.Error("expected healthy")
	}
	if NewMemeService(&fakeAPI{healthErr: client.ErrNetwork}, nil).IsHealthy(context.Background()) {
		t.Error("expected unhealthy")
	}
}

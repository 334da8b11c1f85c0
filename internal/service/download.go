package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/metrics"
	"github.com/s9b/memenem/internal/storage"
	_ "golang.org/x/image/webp"
)

// errNoImage marks a meme without a downloadable image URL.
var errNoImage = errors.New("meme has no valid image url")

// DownloadService saves meme images and collection snapshots to object
// storage.
type DownloadService struct {
	collection *CollectionService
	storage    storage.ObjectStorage
	http       *resty.Client
	baseURL    string
	workers    int
	now        func() time.Time

	mu       sync.Mutex
	reserved map[string]struct{}
}

// DownloadConfig holds configuration for the download service.
type DownloadConfig struct {
	BaseURL string // resolves relative image URLs
	Workers int
	Timeout time.Duration
}

// NewDownloadService creates a new download service.
func NewDownloadService(collection *CollectionService, objectStorage storage.ObjectStorage, cfg *DownloadConfig) *DownloadService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New()
	httpClient.SetLogger(logger.GetDefault().WithField(logger.FieldComponent, "download"))
	httpClient.SetTimeout(timeout)

	return &DownloadService{
		collection: collection,
		storage:    objectStorage,
		http:       httpClient,
		baseURL:    cfg.BaseURL,
		workers:    workers,
		now:        time.Now,
		reserved:   make(map[string]struct{}),
	}
}

// DownloadResult describes one stored image.
type DownloadResult struct {
	MemeID      string `json:"meme_id"`
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	Format      string `json:"format,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// DownloadStats holds statistics for a DownloadAll run.
type DownloadStats struct {
	TotalItems     int64
	ProcessedItems int64
	SkippedItems   int64
	FailedItems    int64
	Bytes          int64
	Results        []DownloadResult
	StartTime      time.Time
	EndTime        time.Time
}

// Download fetches the image of meme and stores it under its download
// filename.
func (s *DownloadService) Download(ctx context.Context, meme domain.Meme) (*DownloadResult, error) {
	ctx = logger.SetMemeID(ctx, meme.ID)
	result, err := s.download(ctx, meme)
	switch {
	case errors.Is(err, errNoImage):
		metrics.DownloadsTotal.WithLabelValues("skipped").Inc()
	case err != nil:
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
	default:
		metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	}
	return result, err
}

// DownloadByID downloads a meme from the saved collection.
func (s *DownloadService) DownloadByID(ctx context.Context, id string) (*DownloadResult, error) {
	meme, err := s.collection.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Download(ctx, *meme)
}

func (s *DownloadService) download(ctx context.Context, meme domain.Meme) (*DownloadResult, error) {
	imageURL := format.ResolveImageURL(s.baseURL, meme.ImageURL)
	if !format.IsValidImageURL(imageURL) {
		return nil, fmt.Errorf("%w: %q", errNoImage, meme.ImageURL)
	}

	start := time.Now()
	resp, err := s.http.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode())
	}
	data := resp.Body()
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to fetch image: empty body")
	}

	result := &DownloadResult{
		MemeID:      meme.ID,
		Size:        int64(len(data)),
		ContentType: contentType(resp.Header().Get("Content-Type"), data),
	}
	if cfg, kind, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		result.Format = kind
		result.Width = cfg.Width
		result.Height = cfg.Height
	} else {
		logger.CtxWarn(ctx, "Failed to read image config: %v", err)
	}

	key := s.reserveKey(ctx, format.MemeFilename(meme.TemplateName, string(meme.Style), s.now()), meme.ID)
	defer s.release(key)

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), result.Size, result.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	result.Key = key
	result.URL = s.storage.GetURL(key)

	logger.With(logger.Fields{
		logger.FieldSize: result.Size,
		"key":            key,
		"format":         result.Format,
	}).WithDuration(time.Since(start).Milliseconds()).Info(ctx, "Meme downloaded")
	return result, nil
}

// reserveKey returns name, or name with the meme id appended when another
// download holds or storage already has that name.
func (s *DownloadService) reserveKey(ctx context.Context, name, memeID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := name
	if s.taken(ctx, key) {
		ext := ".jpg"
		key = strings.TrimSuffix(name, ext) + "-" + shortID(memeID) + ext
	}
	s.reserved[key] = struct{}{}
	return key
}

func (s *DownloadService) taken(ctx context.Context, key string) bool {
	if _, ok := s.reserved[key]; ok {
		return true
	}
	exists, err := s.storage.Exists(ctx, key)
	return err == nil && exists
}

func (s *DownloadService) release(key string) {
	s.mu.Lock()
	delete(s.reserved, key)
	s.mu.Unlock()
}

func shortID(id string) string {
	id = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, id)
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return "dup"
	}
	return strings.ToLower(id)
}

func contentType(header string, data []byte) string {
	if header != "" && strings.HasPrefix(header, "image/") {
		return header
	}
	return http.DetectContentType(data)
}

// DownloadAll downloads every saved meme with a pool of workers. Memes
// without an image URL are skipped; failures are counted and logged.
func (s *DownloadService) DownloadAll(ctx context.Context) (*DownloadStats, error) {
	memes, err := s.collection.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DownloadStats{
		TotalItems: int64(len(memes)),
		StartTime:  time.Now(),
	}
	logger.With(logger.Fields{}).WithCount(len(memes)).Info(ctx, "Starting collection download with %d workers", s.workers)

	itemsChan := make(chan domain.Meme, s.workers*2)
	resultsChan := make(chan *downloadOutcome, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, itemsChan, resultsChan)
		}()
	}

	done := make(chan struct{})
	go func() {
		for outcome := range resultsChan {
			atomic.AddInt64(&stats.ProcessedItems, 1)
			switch {
			case errors.Is(outcome.err, errNoImage):
				atomic.AddInt64(&stats.SkippedItems, 1)
			case outcome.err != nil:
				atomic.AddInt64(&stats.FailedItems, 1)
				logger.With(logger.Fields{logger.FieldMemeID: outcome.memeID}).
					Error(ctx, "Failed to download meme: %v", outcome.err)
			default:
				atomic.AddInt64(&stats.Bytes, outcome.result.Size)
				stats.Results = append(stats.Results, *outcome.result)
			}
		}
		close(done)
	}()

feed:
	for _, m := range memes {
		select {
		case itemsChan <- m:
		case <-ctx.Done():
			break feed
		}
	}

	close(itemsChan)
	wg.Wait()
	close(resultsChan)
	<-done

	stats.EndTime = time.Now()
	logger.With(logger.Fields{
		"total":     stats.TotalItems,
		"processed": stats.ProcessedItems,
		"skipped":   stats.SkippedItems,
		"failed":    stats.FailedItems,
	}).WithDuration(stats.EndTime.Sub(stats.StartTime).Milliseconds()).Info(ctx, "Collection download completed")

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

type downloadOutcome struct {
	memeID string
	result *DownloadResult
	err    error
}

func (s *DownloadService) worker(ctx context.Context, items <-chan domain.Meme, results chan<- *downloadOutcome) {
	for meme := range items {
		if ctx.Err() != nil {
			results <- &downloadOutcome{memeID: meme.ID, err: ctx.Err()}
			continue
		}
		result, err := s.Download(ctx, meme)
		results <- &downloadOutcome{memeID: meme.ID, result: result, err: err}
	}
}

// ExportResult locates a stored collection snapshot.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

// ExportCollection stores the saved collection as a JSON snapshot named
// memenem-collection-<timestamp>.json.
func (s *DownloadService) ExportCollection(ctx context.Context) (*ExportResult, error) {
	memes, err := s.collection.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(memes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}

	key := fmt.Sprintf("memenem-collection-%s.json", s.now().UTC().Format("2006-01-02T15-04-05"))
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return nil, fmt.Errorf("failed to store collection export: %w", err)
	}

	logger.With(logger.Fields{logger.FieldSize: len(data)}).WithCount(len(memes)).Info(ctx, "Collection exported to %s", key)
	return &ExportResult{
		Key:   key,
		URL:   s.storage.GetURL(key),
		Count: len(memes),
		Size:  int64(len(data)),
	}, nil
}

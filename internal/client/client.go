// Package client wraps the meme backend REST API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/s9b/memenem/internal/config"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/metrics"
)

const (
	// DefaultTemplateLimit is the page size for GetTemplates.
	DefaultTemplateLimit = 50

	// DefaultTrendingLimit is the page size for GetTrendingMemes.
	DefaultTrendingLimit = 20
)

// Client calls the meme backend. It never retries.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New creates a new API client.
// Parameters:
//   - cfg: API configuration; nil uses the defaults.
// Returns:
//   - *Client: client bound to cfg.BaseURL.
func New(cfg *config.APIConfig) *Client {
	if cfg == nil {
		cfg = &config.APIConfig{}
	}
	cfg = cfg.Clone()
	cfg.Normalize()

	httpClient := resty.New()
	httpClient.SetLogger(logger.GetDefault().WithField(logger.FieldComponent, "resty"))
	httpClient.SetBaseURL(cfg.BaseURL)
	httpClient.SetTimeout(cfg.Timeout)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		httpClient.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GenerateMeme asks the backend to generate a meme for a topic and style.
func (c *Client) GenerateMeme(ctx context.Context, req domain.GenerateMemeRequest) (*domain.GenerateMemeResponse, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return nil, invalid(MsgTopicRequired)
	}
	if utf8.RuneCountInString(req.Topic) > domain.MaxTopicLength {
		return nil, invalid(fmt.Sprintf("Topic must be at most %d characters", domain.MaxTopicLength))
	}
	if req.Style == "" {
		req.Style = domain.DefaultHumorStyle
	}
	if !req.Style.Valid() {
		return nil, invalid(fmt.Sprintf("Unknown humor style %q", req.Style))
	}

	var resp domain.GenerateMemeResponse
	if err := c.do(ctx, http.MethodPost, domain.PathGenerate, nil, req, &resp); err != nil {
		if apiErr, ok := err.(*Error); ok {
			return nil, translateGenerateDetail(withFallback(apiErr, "Failed to generate meme"))
		}
		return nil, err
	}
	if !resp.Success {
		return nil, unsuccessful(resp.Message, "Failed to generate meme")
	}
	return &resp, nil
}

// GetTemplates lists meme templates. limit <= 0 uses DefaultTemplateLimit;
// an empty source lists every source.
func (c *Client) GetTemplates(ctx context.Context, limit int, source string) (*domain.TemplatesResponse, error) {
	if limit <= 0 {
		limit = DefaultTemplateLimit
	}
	query := map[string]string{"limit": strconv.Itoa(limit)}
	if source != "" {
		query["source"] = source
	}

	var resp domain.TemplatesResponse
	if err := c.do(ctx, http.MethodGet, domain.PathTemplates, query, nil, &resp); err != nil {
		return nil, fallbackError(err, "Failed to fetch templates")
	}
	if !resp.Success {
		return nil, unsuccessful("", "Failed to fetch templates")
	}
	return &resp, nil
}

// GetTrendingMemes lists trending memes. limit <= 0 uses DefaultTrendingLimit;
// an empty sort uses SortByVirality.
func (c *Client) GetTrendingMemes(ctx context.Context, limit int, sortBy domain.TrendingSort) (*domain.TrendingMemesResponse, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	sortBy, err := domain.ParseTrendingSort(string(sortBy))
	if err != nil {
		return nil, invalid(err.Error())
	}
	query := map[string]string{
		"limit":   strconv.Itoa(limit),
		"sort_by": string(sortBy),
	}

	var resp domain.TrendingMemesResponse
	if err := c.do(ctx, http.MethodGet, domain.PathTrending, query, nil, &resp); err != nil {
		return nil, fallbackError(err, "Failed to fetch trending memes")
	}
	if !resp.Success {
		return nil, unsuccessful("", "Failed to fetch trending memes")
	}
	return &resp, nil
}

// UpvoteMeme upvotes a meme and returns the new count.
func (c *Client) UpvoteMeme(ctx context.Context, req domain.UpvoteRequest) (*domain.UpvoteResponse, error) {
	if strings.TrimSpace(req.MemeID) == "" {
		return nil, invalid("Meme ID is required")
	}
	ctx = logger.SetMemeID(ctx, req.MemeID)

	var resp domain.UpvoteResponse
	if err := c.do(ctx, http.MethodPost, domain.PathUpvote, nil, req, &resp); err != nil {
		return nil, fallbackError(err, "Failed to upvote meme")
	}
	if !resp.Success {
		return nil, unsuccessful(resp.Message, "Failed to upvote meme")
	}
	return &resp, nil
}

// GetViralityScore asks the backend to score a meme.
func (c *Client) GetViralityScore(ctx context.Context, memeID string) (*domain.ViralityScoreResponse, error) {
	if strings.TrimSpace(memeID) == "" {
		return nil, invalid("Meme ID is required")
	}
	ctx = logger.SetMemeID(ctx, memeID)

	var resp domain.ViralityScoreResponse
	query := map[string]string{"meme_id": memeID}
	if err := c.do(ctx, http.MethodPost, domain.PathScore, query, nil, &resp); err != nil {
		return nil, fallbackError(err, "Failed to get virality score")
	}
	if !resp.Success {
		return nil, unsuccessful("", "Failed to get virality score")
	}
	return &resp, nil
}

// CheckHealth calls the backend health endpoint and returns its body.
func (c *Client) CheckHealth(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, domain.PathHealth, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetStatus calls the backend status endpoint and returns its body.
func (c *Client) GetStatus(ctx context.Context) (map[string]interface{}, error) {
	var resp map[string]interface{}
	if err := c.do(ctx, http.MethodGet, domain.PathStatus, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// IsBackendHealthy reports whether the health check succeeds.
func (c *Client) IsBackendHealthy(ctx context.Context) bool {
	_, err := c.CheckHealth(ctx)
	return err == nil
}

// do executes one request, decoding a 2xx JSON body into result and
// classifying every failure into an *Error.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result interface{}) error {
	requestID := uuid.New().String()
	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldRequestID: requestID,
		logger.FieldEndpoint:  path,
	})

	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetError(&domain.ErrorResponse{})
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	logger.CtxDebug(ctx, "API request: %s %s", method, path)
	start := time.Now()
	resp, err := req.Execute(method, path)
	elapsed := time.Since(start)
	metrics.APIRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())

	var apiErr error
	status := 0
	switch {
	case resp == nil || resp.RawResponse == nil:
		apiErr = classifyTransport(err)
	default:
		status = resp.StatusCode()
		if resp.IsError() || status < 200 || status >= 300 {
			apiErr = classifyStatus(resp)
		} else if err != nil {
			apiErr = classifyBody(status, err)
		}
	}
	metrics.APIRequestsTotal.WithLabelValues(method, path, KindName(apiErr)).Inc()

	entry := logger.With(logger.Fields{
		logger.FieldStatus:     status,
		logger.FieldDurationMs: elapsed.Milliseconds(),
	})
	if apiErr != nil {
		if err != nil {
			entry = entry.WithField("cause", err.Error())
		}
		entry.Warn(ctx, "API response error: %s %s: %s", method, path, apiErr.Error())
		return apiErr
	}
	entry.Debug(ctx, "API response: %s %s", method, path)
	return nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/config"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/logger"
	"github.com/s9b/memenem/internal/repository"
	"github.com/s9b/memenem/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers like the meme backend.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(domain.PathGenerate, func(w http.ResponseWriter, r *http.Request) {
		var req domain.GenerateMemeRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Topic == "quota" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"OpenAI quota exceeded"}`))
			return
		}
		if req.Topic == "busy" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(domain.GenerateMemeResponse{
			Success: true,
			Meme:    domain.Meme{ID: "gen-1", Caption: req.Topic, Style: req.Style, ViralityScore: 77},
		})
	})
	mux.HandleFunc(domain.PathTrending, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.TrendingMemesResponse{
			Success: true,
			Memes:   []domain.Meme{{ID: r.URL.Query().Get("limit") + "-" + r.URL.Query().Get("sort_by")}},
			Count:   1,
		})
	})
	mux.HandleFunc(domain.PathTemplates, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc(domain.PathUpvote, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"new_upvote_count":9}`))
	})
	mux.HandleFunc(domain.PathHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type testServer struct {
	router     *gin.Engine
	collection *service.CollectionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	backend := fakeBackend(t)

	store, err := repository.NewFileKV(t.TempDir())
	require.NoError(t, err)
	collection := service.NewCollectionService(repository.NewCollectionRepository(store))
	api := client.New(&config.APIConfig{BaseURL: backend.URL, Timeout: 5 * time.Second})
	memes := service.NewMemeService(api, collection)

	router := SetupRouter(
		&Services{Collection: collection, Memes: memes},
		&config.ServerConfig{Mode: "test", CORS: config.CORSConfig{AllowAllOrigins: true}},
		logger.GetDefault(),
		"test",
	)
	return &testServer{router: router, collection: collection}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 {
		json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	_, body = s.do(t, http.MethodGet, "/health?backend=true", nil)
	assert.Equal(t, "healthy", body["backend"])
}

func TestCollectionRoutes(t *testing.T) {
	s := newTestServer(t)
	meme := domain.Meme{ID: "m1", Caption: "Deploy on Friday", Style: domain.StyleDarkHumor, ViralityScore: 80, Upvotes: 2}

	w, body := s.do(t, http.MethodPost, "/api/v1/collection", meme)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["saved"])

	w, body = s.do(t, http.MethodPost, "/api/v1/collection", meme)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["saved"])

	w, _ = s.do(t, http.MethodPost, "/api/v1/collection", domain.Meme{Caption: "no id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.do(t, http.MethodPost, "/api/v1/collection", domain.Meme{ID: "m2", Caption: "Monday standup", Style: domain.StyleWholesome, ViralityScore: 60})

	_, body = s.do(t, http.MethodGet, "/api/v1/collection?q=friday", nil)
	assert.EqualValues(t, 1, body["count"])

	_, body = s.do(t, http.MethodGet, "/api/v1/collection/stats", nil)
	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["count"])
	assert.EqualValues(t, 70, stats["average_virality"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/collection/m1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodDelete, "/api/v1/collection/m1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, body = s.do(t, http.MethodPost, "/api/v1/collection/bulk-delete", map[string][]string{"ids": {"m2", "x"}})
	assert.EqualValues(t, 1, body["removed"])
}

func TestGenerateRoute(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/v1/generate", map[string]interface{}{
		"topic": "cats", "style": "wholesome", "save": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["saved"])
	saved, err := s.collection.IsSaved(context.Background(), "gen-1")
	require.NoError(t, err)
	assert.True(t, saved)

	w, body = s.do(t, http.MethodPost, "/api/v1/generate", map[string]interface{}{"topic": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, client.MsgTopicRequired, body["error"])

	w, body = s.do(t, http.MethodPost, "/api/v1/generate", map[string]interface{}{"topic": "quota"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, client.MsgAIUnavailable, body["error"])

	w, body = s.do(t, http.MethodPost, "/api/v1/generate", map[string]interface{}{"topic": "busy"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, client.MsgRateLimited, body["error"])
}

func TestProxyRoutes(t *testing.T) {
	s := newTestServer(t)

	_, body := s.do(t, http.MethodGet, "/api/v1/trending?limit=40&sort_by=upvotes", nil)
	memes := body["memes"].([]interface{})
	assert.Equal(t, "40-upvotes", memes[0].(map[string]interface{})["meme_id"])

	w, _ := s.do(t, http.MethodGet, "/api/v1/trending?sort_by=random", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/v1/trending?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(t, http.MethodGet, "/api/v1/templates", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, client.MsgServer, body["error"])

	s.collection.Save(context.Background(), domain.Meme{ID: "up-1", Upvotes: 1})
	w, body = s.do(t, http.MethodPost, "/api/v1/upvote", domain.UpvoteRequest{MemeID: "up-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 9, body["new_upvote_count"])
	m, err := s.collection.Get(context.Background(), "up-1")
	require.NoError(t, err)
	assert.Equal(t, 9, m.Upvotes)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", nil)

	w, _ := s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/collection", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

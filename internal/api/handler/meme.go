package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/service"
)

// MemeHandler proxies meme actions to the backend.
type MemeHandler struct {
	memes *service.MemeService
}

// NewMemeHandler creates a new meme handler.
func NewMemeHandler(memes *service.MemeService) *MemeHandler {
	return &MemeHandler{memes: memes}
}

type generateRequest struct {
	Topic      string            `json:"topic"`
	Style      domain.HumorStyle `json:"style"`
	TemplateID string            `json:"template_id"`
	Save       bool              `json:"save"`
}

// Generate handles POST /api/v1/generate.
func (h *MemeHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	result, err := h.memes.Generate(c.Request.Context(), domain.GenerateMemeRequest{
		Topic:      req.Topic,
		Style:      req.Style,
		TemplateID: req.TemplateID,
	}, req.Save)
	if err != nil {
		respondClientError(c, "Generate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"meme":    result.Meme,
		"saved":   result.Saved,
	})
}

// Trending handles GET /api/v1/trending?limit=&sort_by=.
func (h *MemeHandler) Trending(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	sortBy, err := domain.ParseTrendingSort(c.Query("sort_by"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	memes, err := h.memes.Trending(c.Request.Context(), limit, sortBy)
	if err != nil {
		respondClientError(c, "Trending", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"memes":   memes,
		"count":   len(memes),
	})
}

// Templates handles GET /api/v1/templates?limit=&source=.
func (h *MemeHandler) Templates(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	templates, err := h.memes.Templates(c.Request.Context(), limit, c.Query("source"))
	if err != nil {
		respondClientError(c, "Templates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"templates": templates,
		"count":     len(templates),
	})
}

// Upvote handles POST /api/v1/upvote.
func (h *MemeHandler) Upvote(c *gin.Context) {
	var req domain.UpvoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	count, err := h.memes.Upvote(c.Request.Context(), req.MemeID)
	if err != nil {
		respondClientError(c, "Upvote", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"new_upvote_count": count,
	})
}

// Score handles POST /api/v1/score?meme_id=.
func (h *MemeHandler) Score(c *gin.Context) {
	resp, err := h.memes.Score(c.Request.Context(), c.Query("meme_id"))
	if err != nil {
		respondClientError(c, "Score", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /api/v1/status by relaying the backend status.
func (h *MemeHandler) Status(c *gin.Context) {
	status, err := h.memes.Status(c.Request.Context())
	if err != nil {
		respondClientError(c, "Status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// queryLimit parses ?limit=; absent means 0 (the client default).
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(c, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/s9b/memenem/internal/api/middleware"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/service"
)

// CollectionHandler exposes the saved collection.
type CollectionHandler struct {
	collection *service.CollectionService
}

// NewCollectionHandler creates a new collection handler.
// Parameters:
//   - collection: collection service instance.
// Returns:
//   - *CollectionHandler: initialized handler.
func NewCollectionHandler(collection *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collection: collection}
}

// List handles GET /api/v1/collection?q=.
func (h *CollectionHandler) List(c *gin.Context) {
	memes, err := h.collection.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to load collection")
		respondError(c, http.StatusInternalServerError, "Failed to load collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"memes":   memes,
		"count":   len(memes),
	})
}

// Save handles POST /api/v1/collection. Answers 201 when added and 200
// when the meme was already saved.
func (h *CollectionHandler) Save(c *gin.Context) {
	var meme domain.Meme
	if err := c.ShouldBindJSON(&meme); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(meme.ID) == "" {
		respondError(c, http.StatusBadRequest, "meme_id is required")
		return
	}

	added, err := h.collection.Save(c.Request.Context(), meme)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to save meme")
		respondError(c, http.StatusInternalServerError, "Failed to save meme")
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"saved":   added,
	})
}

// Remove handles DELETE /api/v1/collection/:id.
func (h *CollectionHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.collection.Remove(c.Request.Context(), id)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to remove meme")
		respondError(c, http.StatusInternalServerError, "Failed to remove meme")
		return
	}
	if !removed {
		respondError(c, http.StatusNotFound, "Meme not found in collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkDelete handles POST /api/v1/collection/bulk-delete.
func (h *CollectionHandler) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	n, err := h.collection.RemoveMany(c.Request.Context(), req.IDs)
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to remove memes")
		respondError(c, http.StatusInternalServerError, "Failed to remove memes")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": n,
	})
}

// Stats handles GET /api/v1/collection/stats.
func (h *CollectionHandler) Stats(c *gin.Context) {
	stats, err := h.collection.Stats(c.Request.Context())
	if err != nil {
		middleware.GetLogger(c).WithError(err).Error("Failed to compute stats")
		respondError(c, http.StatusInternalServerError, "Failed to load collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

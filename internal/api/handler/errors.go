package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/s9b/memenem/internal/client"
	"github.com/s9b/memenem/internal/logger"
)

// statusFor maps a backend client error to the status this server answers
// with.
func statusFor(err error) int {
	var apiErr *client.Error
	switch {
	case errors.Is(err, client.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, client.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrServer),
		errors.Is(err, client.ErrNetwork),
		errors.Is(err, client.ErrTimeout),
		errors.Is(err, client.ErrUnsuccessful):
		return http.StatusBadGateway
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400:
		return apiErr.StatusCode
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

// respondClientError logs err and writes it with its mapped status and the
// user-facing message.
func respondClientError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	logger.With(logger.Fields{
		logger.FieldStatus: status,
		"kind":             client.KindName(err),
	}).Warn(c.Request.Context(), "%s failed: %v", op, err)

	c.JSON(status, gin.H{
		"success": false,
		"error":   client.Message(err),
		"kind":    client.KindName(err),
	})
}

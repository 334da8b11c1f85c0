package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/s9b/memenem/internal/client"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rate limited", &client.Error{Kind: client.ErrRateLimited, StatusCode: 429}, http.StatusTooManyRequests},
		{"server", &client.Error{Kind: client.ErrServer, StatusCode: 503}, http.StatusBadGateway},
		{"network", &client.Error{Kind: client.ErrNetwork}, http.StatusBadGateway},
		{"timeout", &client.Error{Kind: client.ErrTimeout}, http.StatusBadGateway},
		{"unsuccessful", &client.Error{Kind: client.ErrUnsuccessful, StatusCode: 200}, http.StatusBadGateway},
		{"invalid", &client.Error{Kind: client.ErrInvalidRequest}, http.StatusBadRequest},
		{"backend 404", &client.Error{Kind: client.ErrBackend, StatusCode: 404}, http.StatusNotFound},
		{"backend 422", &client.Error{Kind: client.ErrBackend, StatusCode: 422}, http.StatusUnprocessableEntity},
		{"canceled", context.Canceled, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

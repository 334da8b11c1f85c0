package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/s9b/memenem/internal/domain"
)

// Error kinds. Match them with errors.Is against an error returned by Client.
var (
	ErrRateLimited    = errors.New("rate limited")
	ErrServer         = errors.New("server error")
	ErrTimeout        = errors.New("request timeout")
	ErrNetwork        = errors.New("network error")
	ErrBackend        = errors.New("backend error")
	ErrUnsuccessful   = errors.New("unsuccessful response")
	ErrInvalidRequest = errors.New("invalid request")
)

// User-facing messages.
const (
	MsgRateLimited     = "Rate limit exceeded. Please try again in a few seconds."
	MsgServer          = "Server error. Please try again later."
	MsgTimeout         = "Request timeout. The meme generation is taking longer than expected."
	MsgNetwork         = "Network error. Please check your connection and try again."
	MsgAIUnavailable   = "AI service temporarily unavailable. Please try again in a few seconds."
	MsgNoTemplates     = "No suitable meme templates found for this topic. Try a different topic!"
	MsgTopicRequired   = "Please enter a topic for your meme"
	MsgUnexpectedError = "An unexpected error occurred"
)

// Error is a classified API failure. Error() is the message shown to the user.
type Error struct {
	Kind       error
	StatusCode int    // 0 when no response was received
	Message    string
	Detail     string // backend-supplied detail, if any
	Err        error  // underlying transport error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the transport cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindName returns a short label for the error kind, used in metrics.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrServer):
		return "server_error"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	case errors.Is(err, ErrUnsuccessful):
		return "unsuccessful"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrBackend):
		return "backend_error"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// Message returns the text to show for any error, mirroring how the UI
// surfaced failures inline.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnexpectedError
}

// classifyTransport maps a request that got no response.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: ErrTimeout, Message: MsgTimeout, Err: err}
	}
	return &Error{Kind: ErrNetwork, Message: MsgNetwork, Err: err}
}

// classifyBody maps a 2xx response whose body could not be read as the
// expected JSON. It counts as an unsuccessful response so each operation
// reports its own fallback message.
func classifyBody(status int, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return classifyTransport(err)
	}
	return &Error{Kind: ErrUnsuccessful, StatusCode: status, Message: MsgUnexpectedError, Err: err}
}

// classifyStatus maps a non-2xx response. Rate limiting and server errors
// take precedence over whatever the body says.
func classifyStatus(resp *resty.Response) *Error {
	status := resp.StatusCode()
	body, _ := resp.Error().(*domain.ErrorResponse)
	if body == nil {
		body = &domain.ErrorResponse{}
	}
	detail := body.DetailString()

	switch {
	case status == http.StatusTooManyRequests:
		return &Error{Kind: ErrRateLimited, StatusCode: status, Message: MsgRateLimited, Detail: detail}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: ErrServer, StatusCode: status, Message: MsgServer, Detail: detail}
	}

	msg := body.Error
	if msg == "" {
		msg = detail
	}
	if msg == "" {
		msg = fmt.Sprintf("API Error: %d", status)
	}
	return &Error{Kind: ErrBackend, StatusCode: status, Message: msg, Detail: detail}
}

// translateGenerateDetail rewrites backend detail strings from the generate
// endpoint into friendlier messages.
func translateGenerateDetail(err *Error) *Error {
	if err.Kind != ErrBackend || err.Detail == "" {
		return err
	}
	switch {
	case strings.Contains(err.Detail, "rate limit") || strings.Contains(err.Detail, "quota"):
		err.Message = MsgAIUnavailable
	case strings.Contains(err.Detail, "no suitable templates"):
		err.Message = MsgNoTemplates
	default:
		err.Message = err.Detail
	}
	return err
}

// withFallback gives an unsuccessful response the operation's own message.
func withFallback(err *Error, fallback string) *Error {
	if err.Kind == ErrUnsuccessful && err.Message == MsgUnexpectedError {
		err.Message = fallback
	}
	return err
}

func fallbackError(err error, fallback string) error {
	if apiErr, ok := err.(*Error); ok {
		return withFallback(apiErr, fallback)
	}
	return err
}

func unsuccessful(message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Kind: ErrUnsuccessful, StatusCode: http.StatusOK, Message: message}
}

func invalid(message string) *Error {
	return &Error{Kind: ErrInvalidRequest, Message: message}
}

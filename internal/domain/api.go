package domain

import (
	"encoding/json"
	"fmt"
)

// Backend API paths.
const (
	PathTemplates = "/api/v1/templates"
	PathGenerate  = "/api/v1/generate"
	PathTrending  = "/api/v1/trending"
	PathUpvote    = "/api/v1/upvote"
	PathScore     = "/api/v1/score"
	PathHealth    = "/health"
	PathStatus    = "/api/v1/status"
)

// MaxTopicLength bounds the topic accepted by GenerateMemeRequest.
const MaxTopicLength = 200

// TrendingSort is the sort order for the trending endpoint.
type TrendingSort string

const (
	SortByVirality  TrendingSort = "virality_score"
	SortByUpvotes   TrendingSort = "upvotes"
	SortByTimestamp TrendingSort = "timestamp"
)

// ParseTrendingSort validates a sort name. Empty means SortByVirality.
func ParseTrendingSort(s string) (TrendingSort, error) {
	switch TrendingSort(s) {
	case "":
		return SortByVirality, nil
	case SortByVirality, SortByUpvotes, SortByTimestamp:
		return TrendingSort(s), nil
	}
	return "", fmt.Errorf("unknown sort %q: want virality_score, upvotes or timestamp", s)
}

// GenerateMemeRequest is the body of POST /api/v1/generate.
type GenerateMemeRequest struct {
	Topic      string     `json:"topic"`
	Style      HumorStyle `json:"style"`
	TemplateID string     `json:"template_id,omitempty"`
}

// UpvoteRequest is the body of POST /api/v1/upvote.
type UpvoteRequest struct {
	MemeID string `json:"meme_id"`
}

// GenerateMemeResponse is returned by the generate endpoint.
type GenerateMemeResponse struct {
	Success bool   `json:"success"`
	Meme    Meme   `json:"meme"`
	Message string `json:"message,omitempty"`
}

// TemplatesResponse is returned by the templates endpoint.
type TemplatesResponse struct {
	Success   bool       `json:"success"`
	Templates []Template `json:"templates"`
	Count     int        `json:"count"`
}

// TrendingMemesResponse is returned by the trending endpoint.
type TrendingMemesResponse struct {
	Success bool   `json:"success"`
	Memes   []Meme `json:"memes"`
	Count   int    `json:"count"`
}

// UpvoteResponse is returned by the upvote endpoint.
type UpvoteResponse struct {
	Success        bool   `json:"success"`
	NewUpvoteCount int    `json:"new_upvote_count"`
	Message        string `json:"message,omitempty"`
}

// ViralityScoreResponse is returned by the score endpoint.
type ViralityScoreResponse struct {
	Success       bool                   `json:"success"`
	MemeID        string                 `json:"meme_id"`
	ViralityScore float64                `json:"virality_score"`
	Factors       map[string]interface{} `json:"factors"`
}

// ErrorResponse is the error body the backend sends on failure.
// Detail is usually a string but validation failures send a list.
type ErrorResponse struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// DetailString returns Detail as text: the string itself when it is a JSON
// string, otherwise the raw JSON.
func (r *ErrorResponse) DetailString() string {
	if len(r.Detail) == 0 || string(r.Detail) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Detail, &s); err == nil {
		return s
	}
	return string(r.Detail)
}

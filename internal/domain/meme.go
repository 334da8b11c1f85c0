package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// CollectionKey is the storage key the saved collection lives under.
const CollectionKey = "memenem-saved-memes"

// StringArray is a string slice stored as a JSON array in a text column.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// Meme is a generated meme as returned by the backend and kept in the
// saved collection. Timestamp is kept verbatim so a stored collection
// round-trips byte for byte.
type Meme struct {
	ID            string     `json:"meme_id"`
	TemplateID    string     `json:"template_id"`
	TemplateName  string     `json:"template_name"`
	Caption       string     `json:"caption"`
	Style         HumorStyle `json:"style"`
	ImageURL      string     `json:"image_url"`
	ViralityScore float64    `json:"virality_score"`
	Upvotes       int        `json:"upvotes"`
	Timestamp     string     `json:"timestamp"`
}

// Template is a meme image template offered by the backend.
type Template struct {
	ID         string      `json:"template_id"`
	Name       string      `json:"name"`
	URL        string      `json:"url"`
	Tags       StringArray `json:"tags"`
	Popularity float64     `json:"popularity"`
	Source     string      `json:"source"`
	CreatedAt  string      `json:"created_at"`
	BoxCount   *int        `json:"box_count,omitempty"`
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`
}

// CollectionStats summarises a saved collection.
type CollectionStats struct {
	Count            int `json:"count"`
	AverageVirality  int `json:"average_virality"`
	TotalUpvotes     int `json:"total_upvotes"`
	UniqueStyleCount int `json:"unique_styles"`
}

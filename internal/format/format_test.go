package format

import (
	"testing"
	"time"

	"github.com/s9b/memenem/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   string
		want string
	}{
		{"seconds", "2024-06-15T11:59:18Z", "42s ago"},
		{"just now", "2024-06-15T12:00:00Z", "0s ago"},
		{"future clamps", "2024-06-15T12:05:00Z", "0s ago"},
		{"minutes", "2024-06-15T11:55:00Z", "5m ago"},
		{"hours", "2024-06-15T09:00:00Z", "3h ago"},
		{"days", "2024-06-13T12:00:00Z", "2d ago"},
		{"no zone reads as UTC", "2024-06-15T11:00:00.123456", "1h ago"},
		{"same year date", "2024-03-04T12:00:00Z", "Mar 4"},
		{"other year date", "2023-12-25T08:00:00Z", "Dec 25, 2023"},
		{"invalid passes through", "yesterday-ish", "yesterday-ish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.ts, now))
		})
	}
}

func TestFormatViralityScore(t *testing.T) {
	tests := []struct {
		score float64
		tier  domain.ViralityTier
		emoji string
		text  string
	}{
		{92, domain.TierViral, "🔥", "92"},
		{89.5, domain.TierViral, "🔥", "90"},
		{89.4, domain.TierHot, "📈", "89"},
		{75, domain.TierHot, "📈", "75"},
		{50, domain.TierRising, "👍", "50"},
		{49.49, domain.TierFresh, "💡", "49"},
		{0, domain.TierFresh, "💡", "0"},
	}

	for _, tt := range tests {
		badge := FormatViralityScore(tt.score)
		assert.Equal(t, tt.tier, badge.Tier, "score %v", tt.score)
		assert.Equal(t, tt.emoji, badge.Emoji, "score %v", tt.score)
		assert.Equal(t, tt.text, badge.Formatted, "score %v", tt.score)
		assert.NotEmpty(t, badge.Color)
	}
}

func TestFormatUpvoteCount(t *testing.T) {
	assert.Equal(t, "0", FormatUpvoteCount(0))
	assert.Equal(t, "999", FormatUpvoteCount(999))
	assert.Equal(t, "1.0K", FormatUpvoteCount(1000))
	assert.Equal(t, "1.5K", FormatUpvoteCount(1500))
	assert.Equal(t, "1.0M", FormatUpvoteCount(1_000_000))
	assert.Equal(t, "2.3M", FormatUpvoteCount(2_345_678))

	// ties round up
	assert.Equal(t, "1.3K", FormatUpvoteCount(1250))
	assert.Equal(t, "3.3K", FormatUpvoteCount(3250))
	assert.Equal(t, "10.3K", FormatUpvoteCount(10250))
	assert.Equal(t, "1.3M", FormatUpvoteCount(1_250_000))
	assert.Equal(t, "1.4K", FormatUpvoteCount(1350))
	assert.Equal(t, "1.2K", FormatUpvoteCount(1249))
	assert.Equal(t, "1000.0K", FormatUpvoteCount(999_999))
}

func TestFormatTotalAndBytes(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatTotal(1234567))
	assert.Equal(t, "83 kB", FormatBytes(83_000))
	assert.Equal(t, "0 B", FormatBytes(-1))
}

func TestShareURL(t *testing.T) {
	caption := ShareText("Me & my code")
	assert.Equal(t, `Check out this viral meme: "Me & my code"`, caption)

	twitter := ShareURL(domain.PlatformTwitter, "http://x.test/m.jpg", caption, nil)
	assert.Equal(t,
		"https://twitter.com/intent/tweet?text=Check%20out%20this%20viral%20meme%3A%20%22Me%20%26%20my%20code%22&url=http%3A%2F%2Fx.test%2Fm.jpg&hashtags=meme,funny,viral",
		twitter)

	linkedin := ShareURL(domain.PlatformLinkedIn, "http://x.test/m.jpg", "hi (there)", []string{})
	assert.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url=http%3A%2F%2Fx.test%2Fm.jpg&summary=hi%20(there)", linkedin)

	assert.Equal(t, "https://www.instagram.com/", ShareURL(domain.PlatformInstagram, "u", "c", nil))
	assert.Equal(t, "http://x.test/m.jpg", ShareURL("myspace", "http://x.test/m.jpg", "c", nil))
}

func TestMemeFilename(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "meme-drake-hotline-bling-gen-z-slang-2024-05-01T10-00-00.jpg",
		MemeFilename("Drake Hotline Bling", "gen_z_slang", now))
}

func TestImageURLHelpers(t *testing.T) {
	assert.True(t, IsValidImageURL("https://i.imgflip.com/30b1gx.jpg"))
	assert.False(t, IsValidImageURL("ftp://example.com/a.jpg"))
	assert.False(t, IsValidImageURL("/static/a.jpg"))

	assert.Equal(t, "http://localhost:8000/static/a.jpg", ResolveImageURL("http://localhost:8000/", "/static/a.jpg"))
	assert.Equal(t, "https://cdn.test/a.jpg", ResolveImageURL("http://localhost:8000", "https://cdn.test/a.jpg"))
	assert.Equal(t, "", ResolveImageURL("http://localhost:8000", ""))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, ts.UTC().Hour())

	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

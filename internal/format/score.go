package format

import (
	"math"
	"strconv"

	"github.com/s9b/memenem/internal/domain"
)

// Badge is the display form of a virality score.
type Badge struct {
	Score     int
	Formatted string
	Tier      domain.ViralityTier
	Label     string
	Color     string // hex colour for the tier
	Emoji     string
}

type tierStyle struct {
	label string
	color string
	emoji string
}

var tierStyles = map[domain.ViralityTier]tierStyle{
	domain.TierViral:  {label: "Viral", color: "#EF4444", emoji: "🔥"},
	domain.TierHot:    {label: "Hot", color: "#F97316", emoji: "📈"},
	domain.TierRising: {label: "Rising", color: "#EAB308", emoji: "👍"},
	domain.TierFresh:  {label: "Fresh", color: "#6B7280", emoji: "💡"},
}

// RoundScore rounds half up, so 89.5 becomes 90.
func RoundScore(score float64) int {
	return int(math.Floor(score + 0.5))
}

// FormatViralityScore buckets a 0–100 score into its tier badge.
func FormatViralityScore(score float64) Badge {
	rounded := RoundScore(score)
	tier := domain.TierForScore(rounded)
	style := tierStyles[tier]
	return Badge{
		Score:     rounded,
		Formatted: strconv.Itoa(rounded),
		Tier:      tier,
		Label:     style.label,
		Color:     style.color,
		Emoji:     style.emoji,
	}
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

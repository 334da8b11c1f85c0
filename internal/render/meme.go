package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
)

// ScoreBadge renders "🔥 92" in the tier colour.
func (t Theme) ScoreBadge(score float64) string {
	b := format.FormatViralityScore(score)
	return lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(b.Color)).
		Render(b.Emoji + " " + b.Formatted)
}

// StyleLabel renders a humor style with its emoji, or the raw value when
// the style is unknown.
func StyleLabel(style domain.HumorStyle) string {
	if info, ok := style.Info(); ok {
		return info.Emoji + " " + info.Label
	}
	return string(style)
}

// MemeCard renders the full card of a meme: caption, template, style,
// score, upvotes, age and image link.
func (t Theme) MemeCard(m domain.Meme, imageURL string, saved bool, now time.Time) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(m.Caption))
	b.WriteString("\n")
	b.WriteString(t.Faint.Render(m.TemplateName + " · " + StyleLabel(m.Style)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s  %s  %s",
		t.ScoreBadge(m.ViralityScore),
		t.Text.Render("▲ "+format.FormatUpvoteCount(m.Upvotes)),
		t.Faint.Render(format.FormatTimestamp(m.Timestamp, now)),
	)
	if saved {
		b.WriteString("  " + t.Success.Render("★ saved"))
	}
	b.WriteString("\n")
	if imageURL != "" {
		b.WriteString(t.Faint.Render(imageURL))
		b.WriteString("\n")
	}
	b.WriteString(t.Faint.Render("id: " + m.ID))
	return t.Card.Render(b.String())
}

// MemeRow renders a meme on one line for lists.
func (t Theme) MemeRow(m domain.Meme, now time.Time) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		t.ScoreBadge(m.ViralityScore),
		t.Text.Render(truncate(m.Caption, 60)),
		t.Faint.Render(m.TemplateName),
		t.Faint.Render("▲ "+format.FormatUpvoteCount(m.Upvotes)),
		t.Faint.Render(format.FormatTimestamp(m.Timestamp, now)+" · "+m.ID),
	)
}

// MemeList renders memes one per line, or a hint when there are none.
func (t Theme) MemeList(memes []domain.Meme, empty string, now time.Time) string {
	if len(memes) == 0 {
		return t.Faint.Render(empty)
	}
	rows := make([]string, len(memes))
	for i, m := range memes {
		rows[i] = t.MemeRow(m, now)
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

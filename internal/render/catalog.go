package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/s9b/memenem/internal/domain"
	"github.com/s9b/memenem/internal/format"
)

// Templates renders a table of templates.
func (t Theme) Templates(templates []domain.Template) string {
	if len(templates) == 0 {
		return t.Faint.Render("No templates available.")
	}
	idW, nameW := len("ID"), len("NAME")
	for _, tpl := range templates {
		idW = max(idW, lipgloss.Width(tpl.ID))
		nameW = max(nameW, lipgloss.Width(truncate(tpl.Name, 40)))
	}

	var b strings.Builder
	b.WriteString(t.Header.Render(fmt.Sprintf("%-*s  %-*s  %6s  %s", idW, "ID", nameW, "NAME", "POP", "TAGS")))
	for _, tpl := range templates {
		b.WriteString("\n")
		line := fmt.Sprintf("%-*s  %-*s  %6.1f  %s",
			idW, tpl.ID, nameW, truncate(tpl.Name, 40), tpl.Popularity, strings.Join(tpl.Tags, ", "))
		b.WriteString(t.Text.Render(line))
	}
	return b.String()
}

// Styles renders the humor style catalogue.
func (t Theme) Styles() string {
	rows := make([]string, 0, len(domain.HumorStyles))
	for _, s := range domain.HumorStyles {
		rows = append(rows, fmt.Sprintf("%s %s  %s  %s",
			s.Emoji, t.Text.Bold(true).Render(s.Label), t.Faint.Render(string(s.Value)), t.Faint.Render(s.Description)))
	}
	return strings.Join(rows, "\n")
}

// Stats renders the collection summary boxes.
func (t Theme) Stats(stats domain.CollectionStats) string {
	box := func(label, value string) string {
		return t.Card.Width(18).Align(lipgloss.Center).Render(
			t.Title.Render(value) + "\n" + t.Faint.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Total Memes", format.FormatTotal(stats.Count)),
		box("Avg Virality", t.ScoreBadge(float64(stats.AverageVirality))),
		box("Total Upvotes", format.FormatTotal(stats.TotalUpvotes)),
		box("Unique Styles", format.FormatTotal(stats.UniqueStyleCount)),
	)
}

// KeyValues renders a free-form JSON object such as health or status,
// sorted by key.
func (t Theme) KeyValues(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s  %v", t.Faint.Render(fmt.Sprintf("%-*s", width, k)), m[k])
	}
	return strings.Join(lines, "\n")
}

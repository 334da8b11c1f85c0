package domain

import (
	"fmt"
	"strings"
)

// HumorStyle is the caption tone requested from the generator.
type HumorStyle string

const (
	StyleSarcastic      HumorStyle = "sarcastic"
	StyleGenZSlang      HumorStyle = "gen_z_slang"
	StyleWholesome      HumorStyle = "wholesome"
	StyleDarkHumor      HumorStyle = "dark_humor"
	StyleCorporateIrony HumorStyle = "corporate_irony"
)

// HumorStyleInfo is the display information for a humor style.
type HumorStyleInfo struct {
	Value       HumorStyle `json:"value"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Emoji       string     `json:"emoji"`
}

// HumorStyles lists every style in display order.
var HumorStyles = []HumorStyleInfo{
	{Value: StyleSarcastic, Label: "Sarcastic", Description: "Witty, cynical humor", Emoji: "😏"},
	{Value: StyleGenZSlang, Label: "Gen Z Slang", Description: "Modern internet terminology", Emoji: "💀"},
	{Value: StyleWholesome, Label: "Wholesome", Description: "Positive, uplifting content", Emoji: "😊"},
	{Value: StyleDarkHumor, Label: "Dark Humor", Description: "Edgy but tasteful humor", Emoji: "🖤"},
	{Value: StyleCorporateIrony, Label: "Corporate Irony", Description: "Business buzzword satire", Emoji: "💼"},
}

// DefaultHumorStyle is preselected when the caller does not choose one.
const DefaultHumorStyle = StyleSarcastic

// Valid reports whether s is one of the known styles.
func (s HumorStyle) Valid() bool {
	_, ok := s.Info()
	return ok
}

// Info returns the display information for s.
func (s HumorStyle) Info() (HumorStyleInfo, bool) {
	for _, info := range HumorStyles {
		if info.Value == s {
			return info, true
		}
	}
	return HumorStyleInfo{}, false
}

// ParseHumorStyle parses a style name. Case and surrounding space are ignored.
func ParseHumorStyle(s string) (HumorStyle, error) {
	style := HumorStyle(strings.ToLower(strings.TrimSpace(s)))
	if !style.Valid() {
		return "", fmt.Errorf("unknown humor style %q", s)
	}
	return style, nil
}

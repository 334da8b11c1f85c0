package domain

import (
	"fmt"
	"strings"
)

// ViralityTier buckets a 0–100 virality score.
type ViralityTier string

const (
	TierViral  ViralityTier = "viral"
	TierHot    ViralityTier = "hot"
	TierRising ViralityTier = "rising"
	TierFresh  ViralityTier = "fresh"
)

// TierForScore returns the tier of an already rounded score.
func TierForScore(score int) ViralityTier {
	switch {
	case score >= 90:
		return TierViral
	case score >= 75:
		return TierHot
	case score >= 50:
		return TierRising
	default:
		return TierFresh
	}
}

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
	return t, nil
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// SocialPlatform is a share target.
type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformLinkedIn  SocialPlatform = "linkedin"
)

// SocialPlatforms lists the share targets in display order.
var SocialPlatforms = []SocialPlatform{PlatformTwitter, PlatformInstagram, PlatformLinkedIn}

package format

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/s9b/memenem/internal/domain"
)

// DefaultHashtags are appended to shared links.
var DefaultHashtags = []string{"meme", "funny", "viral"}

const instagramURL = "https://www.instagram.com/"

// ShareText is the text posted alongside a shared meme.
func ShareText(caption string) string {
	return `Check out this viral meme: "` + caption + `"`
}

// ShareURL builds the share link for a platform. Instagram has no share
// intent, so its home page is returned; unknown platforms get memeURL back.
// A nil hashtags uses DefaultHashtags.
func ShareURL(platform domain.SocialPlatform, memeURL, caption string, hashtags []string) string {
	if hashtags == nil {
		hashtags = DefaultHashtags
	}
	encodedURL := encodeURIComponent(memeURL)
	encodedCaption := encodeURIComponent(caption)

	switch platform {
	case domain.PlatformTwitter:
		return fmt.Sprintf("https://twitter.com/intent/tweet?text=%s&url=%s&hashtags=%s",
			encodedCaption, encodedURL, strings.Join(hashtags, ","))
	case domain.PlatformInstagram:
		return instagramURL
	case domain.PlatformLinkedIn:
		return fmt.Sprintf("https://www.linkedin.com/sharing/share-offsite/?url=%s&summary=%s",
			encodedURL, encodedCaption)
	default:
		return memeURL
	}
}

// ClipboardText is what gets copied when a meme is shared by copy-paste.
func ClipboardText(caption, memeURL string) string {
	return ShareText(caption) + "\n\n" + memeURL
}

// encodeURIComponent escapes like JavaScript's function of the same name,
// which leaves A-Z a-z 0-9 - _ . ! ~ * ' ( ) alone and uses %20 for spaces.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for enc, raw := range map[string]string{"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*", "%7E": "~"} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}
	return escaped
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// MemeFilename builds a download filename such as
// "meme-drake-hotline-bling-sarcastic-2024-05-01T10-00-00.jpg".
func MemeFilename(templateName, style string, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15-04-05")
	cleanTemplate := strings.ToLower(nonAlnum.ReplaceAllString(templateName, "-"))
	cleanStyle := strings.ToLower(nonAlnum.ReplaceAllString(style, "-"))
	return fmt.Sprintf("meme-%s-%s-%s.jpg", cleanTemplate, cleanStyle, stamp)
}

// IsValidImageURL reports whether u is an absolute http(s) URL.
func IsValidImageURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// ResolveImageURL turns a backend-relative image path into an absolute URL
// against baseURL. Absolute URLs are returned as is.
func ResolveImageURL(baseURL, imageURL string) string {
	if imageURL == "" || IsValidImageURL(imageURL) {
		return imageURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(ref).String()
}

package links

import (
	"regexp"

	"secondbrain/internal/models"
)

// Classification is the result of pattern-matching a raw URL. EmbedID is
// empty for plain websites.
type Classification struct {
	Type    models.ContentType
	EmbedID string
}

// Provider patterns, host matched case-insensitively with an optional www.
// prefix. Order matters: youtube, twitter, instagram, then the website
// fallthrough.
var (
	youtubeRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?youtube\.com/shorts/([A-Za-z0-9_-]+)`),
	}
	twitterRegex   = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/\w+/status/(\d+)`)
	instagramRegex = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?instagram\.com/(?:p|reel)/([A-Za-z0-9_-]+)`)
)

// Classify determines the content type of a raw URL and extracts the
// provider-specific embed identifier. It is a total function: any input that
// matches no provider pattern, including malformed input, classifies as a
// plain website.
func Classify(raw string) Classification {
	for _, re := range youtubeRegexes {
		if m := re.FindStringSubmatch(raw); m != nil {
			return Classification{Type: models.ContentTypeYouTube, EmbedID: m[1]}
		}
	}
	if m := twitterRegex.FindStringSubmatch(raw); m != nil {
		return Classification{Type: models.ContentTypeTwitter, EmbedID: m[1]}
	}
	if m := instagramRegex.FindStringSubmatch(raw); m != nil {
		return Classification{Type: models.ContentTypeInstagram, EmbedID: m[1]}
	}
	return Classification{Type: models.ContentTypeWebsite}
}

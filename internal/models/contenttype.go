package models

// ContentType classifies the source of a saved item.
type ContentType string

const (
	ContentTypeWebsite   ContentType = "website"
	ContentTypeYouTube   ContentType = "youtube"
	ContentTypeTwitter   ContentType = "twitter"
	ContentTypeInstagram ContentType = "instagram"
)

// TypeFilterAll is the wildcard value accepted by the type query parameter
// and by views.ViewFilters.
const TypeFilterAll = "all"

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeWebsite, ContentTypeYouTube, ContentTypeTwitter, ContentTypeInstagram:
		return true
	}
	return false
}

// TypeDisplay holds the presentation attributes for a content type. The four
// types are handled through this lookup table rather than per-type behavior.
type TypeDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var typeDisplays = map[ContentType]TypeDisplay{
	ContentTypeYouTube:   {Label: "YouTube", Icon: "play", Color: "red"},
	ContentTypeTwitter:   {Label: "Twitter", Icon: "message-circle", Color: "blue"},
	ContentTypeInstagram: {Label: "Instagram", Icon: "instagram", Color: "pink"},
	ContentTypeWebsite:   {Label: "Website", Icon: "globe", Color: "green"},
}

// Display returns the presentation attributes for c, falling back to the
// website entry for unknown values.
func (c ContentType) Display() TypeDisplay {
	if d, ok := typeDisplays[c]; ok {
		return d
	}
	return typeDisplays[ContentTypeWebsite]
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeValid(t *testing.T) {
	for _, c := range []ContentType{ContentTypeWebsite, ContentTypeYouTube, ContentTypeTwitter, ContentTypeInstagram} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, ContentType("podcast").Valid())
	assert.False(t, ContentType("").Valid())
	assert.False(t, ContentType(TypeFilterAll).Valid())
}

func TestContentTypeDisplay(t *testing.T) {
	assert.Equal(t, "YouTube", ContentTypeYouTube.Display().Label)
	assert.Equal(t, "red", ContentTypeYouTube.Display().Color)
	assert.Equal(t, "globe", ContentTypeWebsite.Display().Icon)
}

func TestContentTypeDisplayUnknownFallsBackToWebsite(t *testing.T) {
	assert.Equal(t, ContentTypeWebsite.Display(), ContentType("podcast").Display())
}

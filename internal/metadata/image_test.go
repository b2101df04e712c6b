package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSocialImagePathString(t *testing.T) {
	doc := map[string]any{
		"files": map[string]any{
			"big":       "/paintings/big/sunset.jpg",
			"instagram": "/paintings/social/sunset_social.jpg",
		},
	}
	assert.Equal(t, "/paintings/social/sunset_social.jpg", SocialImagePath(doc))
}

func TestSocialImagePathList(t *testing.T) {
	doc := map[string]any{
		"files": map[string]any{
			"instagram": []any{"/social/a.jpg", "/social/b.jpg"},
		},
	}
	assert.Equal(t, "/social/a.jpg", SocialImagePath(doc))
}

func TestSocialImagePathNeverFallsBackToBig(t *testing.T) {
	doc := map[string]any{
		"files": map[string]any{
			"big": "/paintings/big/sunset.jpg",
		},
	}
	assert.Empty(t, SocialImagePath(doc))
}

func TestSocialImagePathAbsent(t *testing.T) {
	assert.Empty(t, SocialImagePath(map[string]any{}))
	assert.Empty(t, SocialImagePath(map[string]any{"files": map[string]any{}}))
	assert.Empty(t, SocialImagePath(map[string]any{"files": map[string]any{"instagram": []any{}}}))
	assert.Empty(t, SocialImagePath(map[string]any{"files": "not a map"}))
}

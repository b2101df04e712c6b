package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubPlatformsNotImplemented(t *testing.T) {
	stubs := []Platform{NewBluesky(), NewCara(), NewPixelfed()}

	for _, p := range stubs {
		t.Run(p.Name(), func(t *testing.T) {
			assert.False(t, p.IsConfigured())

			_, err := p.VerifyCredentials(context.Background())
			assert.ErrorIs(t, err, ErrNotImplemented)

			_, err = p.PostImage(context.Background(), "/tmp/x.jpg", "text", "alt")
			assert.ErrorIs(t, err, ErrNotImplemented)

			_, err = p.PostVideo(context.Background(), "/tmp/x.mp4", "text")
			assert.ErrorIs(t, err, ErrNotImplemented)
		})
	}
}

func TestStubPlatformLimits(t *testing.T) {
	assert.Equal(t, 300, NewBluesky().MaxTextLength())
	assert.Equal(t, 5000, NewCara().MaxTextLength())
	assert.Equal(t, 500, NewPixelfed().MaxTextLength())

	assert.False(t, NewCara().SupportsVideo())
	assert.False(t, NewPixelfed().SupportsVideo())
	assert.True(t, NewBluesky().SupportsVideo())
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := NewRegistry(
		NewMastodon("https://mastodon.example.com", "token"),
		NewPixelfed(),
		NewBluesky(),
		NewCara(),
	)

	list := r.List()
	require.Len(t, list, 4)
	assert.Equal(t, "mastodon", list[0].Name())
	assert.Equal(t, "pixelfed", list[1].Name())
	assert.Equal(t, "bluesky", list[2].Name())
	assert.Equal(t, "cara", list[3].Name())

	p, ok := r.Get("mastodon")
	require.True(t, ok)
	assert.Equal(t, "mastodon", p.Name())

	_, ok = r.Get("myspace")
	assert.False(t, ok)
}

func TestRegistryDeduplicates(t *testing.T) {
	r := NewRegistry(NewBluesky(), NewBluesky())
	assert.Len(t, r.List(), 1)
}

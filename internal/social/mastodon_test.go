package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.jpg")
	require.NoError(t, os.WriteFile(path, []byte("\xff\xd8\xff\xe0fake jpeg"), 0o644))
	return path
}

func TestMastodonProperties(t *testing.T) {
	m := NewMastodon("https://mastodon.example.com", "token")

	assert.Equal(t, "mastodon", m.Name())
	assert.Equal(t, "Mastodon", m.DisplayName())
	assert.True(t, m.SupportsImages())
	assert.True(t, m.SupportsVideo())
	assert.Equal(t, 500, m.MaxTextLength())
}

func TestMastodonIsConfigured(t *testing.T) {
	assert.True(t, NewMastodon("https://mastodon.example.com", "token").IsConfigured())
	assert.False(t, NewMastodon("", "token").IsConfigured())
	assert.False(t, NewMastodon("https://mastodon.example.com", "").IsConfigured())
}

func TestMastodonPostImageNotConfigured(t *testing.T) {
	m := NewMastodon("", "")

	result, err := m.PostImage(context.Background(), writeTestImage(t), "test post", "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not configured")
}

func TestMastodonPostVideoNotConfigured(t *testing.T) {
	m := NewMastodon("", "")

	result, err := m.PostVideo(context.Background(), writeTestImage(t), "test post")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not configured")
}

func TestMastodonPostImageSuccess(t *testing.T) {
	var mediaCalls, statusCalls int
	var uploadedAltText, statusText, mediaID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test_token_123", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/api/v2/media":
			mediaCalls++
			require.NoError(t, r.ParseMultipartForm(10<<20))
			uploadedAltText = r.FormValue("description")
			_, header, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "test.jpg", header.Filename)
			json.NewEncoder(w).Encode(map[string]string{"id": "media_123"})
		case "/api/v1/statuses":
			statusCalls++
			require.NoError(t, r.ParseForm())
			statusText = r.FormValue("status")
			mediaID = r.FormValue("media_ids[]")
			json.NewEncoder(w).Encode(map[string]string{
				"url": "https://mastodon.example.com/@user/12345",
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	m := NewMastodon(server.URL, "test_token_123")

	result, err := m.PostImage(context.Background(), writeTestImage(t), "Test post #art", "Alt text here")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "https://mastodon.example.com/@user/12345", result.PostURL)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, mediaCalls)
	assert.Equal(t, 1, statusCalls)
	assert.Equal(t, "Alt text here", uploadedAltText)
	assert.Equal(t, "Test post #art", statusText)
	assert.Equal(t, "media_123", mediaID)
}

func TestMastodonPostImageUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	m := NewMastodon(server.URL, "token")

	result, err := m.PostImage(context.Background(), writeTestImage(t), "test", "")
	require.NoError(t, err, "remote failures must be reported through PostResult")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "422")
}

func TestMastodonPostImageStatusCreationFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/media" {
			json.NewEncoder(w).Encode(map[string]string{"id": "media_123"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := NewMastodon(server.URL, "token")

	result, err := m.PostImage(context.Background(), writeTestImage(t), "test", "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestMastodonPostImageMissingFile(t *testing.T) {
	m := NewMastodon("https://mastodon.example.com", "token")

	result, err := m.PostImage(context.Background(), "/does/not/exist.jpg", "test", "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestMastodonVerifyCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/verify_credentials", r.URL.Path)
		if r.Header.Get("Authorization") == "Bearer good_token" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	valid, err := NewMastodon(server.URL, "good_token").VerifyCredentials(context.Background())
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = NewMastodon(server.URL, "bad_token").VerifyCredentials(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestMastodonVerifyCredentialsNotConfigured(t *testing.T) {
	valid, err := NewMastodon("", "").VerifyCredentials(context.Background())
	require.NoError(t, err)
	assert.False(t, valid)
}

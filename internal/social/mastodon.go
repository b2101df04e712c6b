package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Mastodon posts to a Mastodon instance through its REST API. Publishing is a
// two-step sequence: upload the media file to obtain a media id, then create a
// status referencing that id.
type Mastodon struct {
	InstanceURL string
	AccessToken string
	Client      *http.Client
}

func NewMastodon(instanceURL, accessToken string) *Mastodon {
	return &Mastodon{
		InstanceURL: strings.TrimRight(instanceURL, "/"),
		AccessToken: accessToken,
		Client:      &http.Client{Timeout: 2 * time.Minute},
	}
}

func (m *Mastodon) Name() string        { return "mastodon" }
func (m *Mastodon) DisplayName() string { return "Mastodon" }
func (m *Mastodon) SupportsImages() bool { return true }
func (m *Mastodon) SupportsVideo() bool  { return true }
func (m *Mastodon) MaxTextLength() int   { return 500 }

func (m *Mastodon) IsConfigured() bool {
	return m.InstanceURL != "" && m.AccessToken != ""
}

func (m *Mastodon) VerifyCredentials(ctx context.Context) (bool, error) {
	if !m.IsConfigured() {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", m.InstanceURL+"/api/v1/accounts/verify_credentials", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+m.AccessToken)

	resp, err := m.httpClient().Do(req)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func (m *Mastodon) PostImage(ctx context.Context, imagePath, text, altText string) (*PostResult, error) {
	return m.post(ctx, imagePath, text, altText)
}

func (m *Mastodon) PostVideo(ctx context.Context, videoPath, text string) (*PostResult, error) {
	return m.post(ctx, videoPath, text, "")
}

func (m *Mastodon) post(ctx context.Context, mediaPath, text, altText string) (*PostResult, error) {
	if !m.IsConfigured() {
		return &PostResult{Success: false, Error: "mastodon is not configured"}, nil
	}

	mediaID, err := m.uploadMedia(ctx, mediaPath, altText)
	if err != nil {
		slog.Info(err.Error())
		return &PostResult{Success: false, Error: err.Error()}, nil
	}

	postURL, err := m.createStatus(ctx, text, mediaID)
	if err != nil {
		slog.Info(err.Error())
		return &PostResult{Success: false, Error: err.Error()}, nil
	}

	return &PostResult{Success: true, PostURL: postURL}, nil
}

// uploadMedia pushes the file to /api/v2/media and returns the media id. The
// endpoint answers 200 when the attachment is ready and 202 while it is still
// processing; both carry the id.
func (m *Mastodon) uploadMedia(ctx context.Context, mediaPath, description string) (string, error) {
	file, err := os.Open(mediaPath)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(mediaPath))
	if err != nil {
		return "", fmt.Errorf("error building upload request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("error reading media file: %w", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return "", fmt.Errorf("error building upload request: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("error building upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.InstanceURL+"/api/v2/media", &buf)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.AccessToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("unexpected status code from media upload: %d", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing media upload response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("no media ID returned from mastodon")
	}

	return result.ID, nil
}

func (m *Mastodon) createStatus(ctx context.Context, text, mediaID string) (string, error) {
	form := url.Values{}
	form.Set("status", text)
	form.Add("media_ids[]", mediaID)

	req, err := http.NewRequestWithContext(ctx, "POST", m.InstanceURL+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.AccessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("status creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code from status creation: %d", resp.StatusCode)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing status response: %w", err)
	}

	return result.URL, nil
}

func (m *Mastodon) httpClient() *http.Client {
	if m.Client != nil {
		return m.Client
	}
	return http.DefaultClient
}

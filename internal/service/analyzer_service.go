package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	config "github.com/hverbeek/artflow/configs"
	"github.com/hverbeek/artflow/internal/transfer"
)

// AnalyzerService proposes titles and gallery descriptions for a painting
// using the Anthropic Messages API. It is a narrow external collaborator; the
// rest of the pipeline only sees strings.
type AnalyzerService interface {
	GenerateTitles(ctx context.Context, imagePath string) ([]string, error)
	GenerateDescription(ctx context.Context, imagePath, title, medium, dimensions, category string) (string, error)
}

type analyzerService struct {
	cfg     config.Config
	baseURL string
	client  *http.Client
}

func NewAnalyzerService(cfg config.Config) AnalyzerService {
	return &analyzerService{
		cfg:     cfg,
		baseURL: "https://api.anthropic.com",
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

func (s *analyzerService) GenerateTitles(ctx context.Context, imagePath string) ([]string, error) {
	prompt := "Propose five evocative titles for this painting. " +
		"Respond with only a JSON array of five strings."

	text, err := s.describeImage(ctx, imagePath, prompt)
	if err != nil {
		return nil, err
	}

	titles, err := parseTitleList(text)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to parse title suggestions: %w", err)
	}
	return titles, nil
}

func (s *analyzerService) GenerateDescription(ctx context.Context, imagePath, title, medium, dimensions, category string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short gallery description for the painting %q (%s, %s, category %s). "+
			"Two or three sentences, no markdown.",
		title, medium, dimensions, category,
	)

	text, err := s.describeImage(ctx, imagePath, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *analyzerService) describeImage(ctx context.Context, imagePath, prompt string) (string, error) {
	if s.cfg.AnthropicAPIKey == "" {
		return "", errors.New("anthropic API key is not configured")
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	request := transfer.AnthropicRequest{
		Model:     s.cfg.AnalyzerModel,
		MaxTokens: s.cfg.AnalyzerMaxTokens,
		Messages: []transfer.AnthropicMessage{
			{
				Role: "user",
				Content: []transfer.AnthropicContent{
					{
						Type: "image",
						Source: &transfer.AnthropicImageSource{
							Type:      "base64",
							MediaType: mediaTypeForImage(imagePath),
							Data:      base64.StdEncoding.EncodeToString(imageData),
						},
					},
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.AnthropicAPIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code from analyzer: %d (%s)", resp.StatusCode, respBody)
	}

	var result transfer.AnthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("no text content returned from analyzer")
}

// parseTitleList extracts the JSON array of titles, tolerating surrounding
// prose the model sometimes adds.
func parseTitleList(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var titles []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &titles); err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("empty title list")
	}
	return titles, nil
}

func mediaTypeForImage(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

package metadata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hverbeek/artflow/internal/models"
)

// Manager owns the per-painting metadata documents, one JSON file plus one
// human-readable text report per painting, grouped in category subfolders.
type Manager struct {
	outputPath string
}

func NewManager(outputPath string) (*Manager, error) {
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to create metadata output path: %w", err)
	}
	return &Manager{outputPath: outputPath}, nil
}

type CreateInput struct {
	FilenameBase      string
	Category          string
	BigFilePath       string
	InstagramFilePath string
	SelectedTitle     string
	AllTitles         []string
	Description       string
	Width             float64
	Height            float64
	Depth             *float64
	DimensionUnit     string
	DimensionsText    string
	Substrate         string
	Medium            string
	Subject           string
	Style             string
	Collection        string
	PriceEUR          float64
	CreationDate      string
}

func (m *Manager) Create(in CreateInput) *models.ArtworkMetadata {
	return &models.ArtworkMetadata{
		FilenameBase: in.FilenameBase,
		Category:     in.Category,
		Files: models.ArtworkFiles{
			Big:       in.BigFilePath,
			Instagram: in.InstagramFilePath,
		},
		Title: models.ArtworkTitle{
			Selected:   in.SelectedTitle,
			AllOptions: in.AllTitles,
		},
		Description: in.Description,
		Dimensions: models.Dimensions{
			Width:     in.Width,
			Height:    in.Height,
			Depth:     in.Depth,
			Unit:      in.DimensionUnit,
			Formatted: in.DimensionsText,
		},
		Substrate:     in.Substrate,
		Medium:        in.Medium,
		Subject:       in.Subject,
		Style:         in.Style,
		Collection:    in.Collection,
		PriceEUR:      in.PriceEUR,
		CreationDate:  in.CreationDate,
		ProcessedDate: time.Now().Format(time.RFC3339),
		AnalyzedFrom:  "big",
	}
}

// SaveJSON writes the metadata document and returns its path.
func (m *Manager) SaveJSON(meta *models.ArtworkMetadata) (string, error) {
	categoryPath := filepath.Join(m.outputPath, meta.Category)
	if err := os.MkdirAll(categoryPath, 0o755); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to create category folder: %w", err)
	}

	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	jsonPath := filepath.Join(categoryPath, meta.FilenameBase+".json")
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return jsonPath, nil
}

// SaveText writes the human-readable report next to the JSON document.
func (m *Manager) SaveText(meta *models.ArtworkMetadata) (string, error) {
	categoryPath := filepath.Join(m.outputPath, meta.Category)
	if err := os.MkdirAll(categoryPath, 0o755); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to create category folder: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ARTWORK METADATA\n%s\n\n", strings.Repeat("=", 60))
	fmt.Fprintf(&b, "Title: %s\n", meta.Title.Selected)
	fmt.Fprintf(&b, "Category: %s\n", meta.Category)
	fmt.Fprintf(&b, "Medium: %s on %s\n", meta.Medium, meta.Substrate)
	fmt.Fprintf(&b, "Dimensions: %s\n", meta.Dimensions.Formatted)
	fmt.Fprintf(&b, "Price: EUR %.2f\n", meta.PriceEUR)
	fmt.Fprintf(&b, "Creation Date: %s\n\n", meta.CreationDate)

	fmt.Fprintf(&b, "DESCRIPTION\n%s\n%s\n\n", strings.Repeat("-", 60), meta.Description)

	fmt.Fprintf(&b, "ALTERNATIVE TITLES\n%s\n", strings.Repeat("-", 60))
	for i, title := range meta.Title.AllOptions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}

	instagram := meta.Files.Instagram
	if instagram == "" {
		instagram = "N/A"
	}
	fmt.Fprintf(&b, "\nFILES\n%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Big Version: %s\n", meta.Files.Big)
	fmt.Fprintf(&b, "Instagram Version: %s\n", instagram)

	fmt.Fprintf(&b, "\nPROCESSING INFO\n%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Processed: %s\n", meta.ProcessedDate)
	fmt.Fprintf(&b, "Analyzed From: %s\n", meta.AnalyzedFrom)

	txtPath := filepath.Join(categoryPath, meta.FilenameBase+".txt")
	if err := os.WriteFile(txtPath, []byte(b.String()), 0o644); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to write text report: %w", err)
	}
	return txtPath, nil
}

func (m *Manager) Load(category, filenameBase string) (*models.ArtworkMetadata, error) {
	raw, err := os.ReadFile(m.Path(category, filenameBase))
	if err != nil {
		return nil, err
	}

	var meta models.ArtworkMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &meta, nil
}

func (m *Manager) Exists(category, filenameBase string) bool {
	_, err := os.Stat(m.Path(category, filenameBase))
	return err == nil
}

func (m *Manager) Path(category, filenameBase string) string {
	return filepath.Join(m.outputPath, category, filenameBase+".json")
}

package metadata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// LoadDocument reads a metadata document as a loose map so unknown keys
// written by other tools survive a read-modify-write cycle.
func LoadDocument(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to parse metadata document: %w", err)
	}
	return doc, nil
}

// UpdateSocialTracking records one posting outcome inside the painting's own
// metadata document. It always re-reads the on-disk copy first so concurrent
// external edits to other keys are not clobbered, then patches only the
// social_media subtree and writes the full document back.
func UpdateSocialTracking(metadataPath, platform, postURL string) error {
	doc, err := LoadDocument(metadataPath)
	if err != nil {
		return err
	}

	social, ok := doc["social_media"].(map[string]any)
	if !ok {
		social = make(map[string]any)
	}

	entry, ok := social[platform].(map[string]any)
	if !ok {
		entry = map[string]any{"post_count": float64(0)}
	}

	count, _ := entry["post_count"].(float64)
	entry["post_count"] = count + 1
	entry["last_posted"] = time.Now().Format(time.RFC3339)
	entry["post_url"] = postURL

	social[platform] = entry
	doc["social_media"] = social

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata document: %w", err)
	}

	if err := os.WriteFile(metadataPath, raw, 0o644); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to write metadata document: %w", err)
	}
	return nil
}

package gallery

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"
)

// TrackedPainting is one painting's gallery upload state.
type TrackedPainting struct {
	MetadataPath  string          `json:"metadata_path"`
	ProcessedDate string          `json:"processed_date"`
	Uploads       map[string]bool `json:"uploads"`
}

type trackerDocument struct {
	Paintings   map[string]*TrackedPainting `json:"paintings"`
	Platforms   []string                    `json:"platforms"`
	LastUpdated string                      `json:"last_updated"`
}

// Tracker records which paintings have been uploaded to which gallery
// platforms, in a single JSON document rewritten on every change.
type Tracker struct {
	mu   sync.Mutex
	path string
	data trackerDocument
}

func NewTracker(path string, platforms []string) (*Tracker, error) {
	t := &Tracker{
		path: path,
		data: trackerDocument{
			Paintings: make(map[string]*TrackedPainting),
			Platforms: platforms,
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to read upload tracker: %w", err)
	}

	if err := json.Unmarshal(raw, &t.data); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to parse upload tracker: %w", err)
	}
	if t.data.Paintings == nil {
		t.data.Paintings = make(map[string]*TrackedPainting)
	}
	if len(t.data.Platforms) == 0 {
		t.data.Platforms = platforms
	}
	return t, nil
}

// Track registers a newly processed painting with all uploads pending.
// Re-tracking an existing painting updates its metadata path but keeps its
// upload flags.
func (t *Tracker) Track(contentID, metadataPath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.data.Paintings[contentID]; ok {
		existing.MetadataPath = metadataPath
		return t.save()
	}

	uploads := make(map[string]bool, len(t.data.Platforms))
	for _, platform := range t.data.Platforms {
		uploads[platform] = false
	}

	t.data.Paintings[contentID] = &TrackedPainting{
		MetadataPath:  metadataPath,
		ProcessedDate: time.Now().Format(time.RFC3339),
		Uploads:       uploads,
	}
	return t.save()
}

// MarkUploaded flags one painting as uploaded to one platform. Unknown
// paintings report false without error.
func (t *Tracker) MarkUploaded(contentID, platform string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	painting, ok := t.data.Paintings[contentID]
	if !ok {
		return false, nil
	}

	if painting.Uploads == nil {
		painting.Uploads = make(map[string]bool)
	}
	painting.Uploads[platform] = true
	if err := t.save(); err != nil {
		return false, err
	}
	return true, nil
}

// Pending lists content ids not yet uploaded to the given platform, sorted
// for stable output.
func (t *Tracker) Pending(platform string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var pending []string
	for contentID, painting := range t.data.Paintings {
		if !painting.Uploads[platform] {
			pending = append(pending, contentID)
		}
	}
	sort.Strings(pending)
	return pending
}

func (t *Tracker) save() error {
	t.data.LastUpdated = time.Now().Format(time.RFC3339)

	raw, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode upload tracker: %w", err)
	}

	if err := os.WriteFile(t.path, raw, 0o644); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to write upload tracker: %w", err)
	}
	return nil
}

package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Paintings above this size are rejected before any processing.
const maxImageSizeBytes = 100 * 1024 * 1024

// PaintingPair is one painting's big original plus its optional social-sized
// variant, matched by filename stem.
type PaintingPair struct {
	Big    string
	Social string
}

// Manager locates and renames painting files across the big and social-sized
// folder trees, which mirror each other by category.
type Manager struct {
	bigPath    string
	socialPath string
}

func NewManager(bigPath, socialPath string) *Manager {
	return &Manager{bigPath: bigPath, socialPath: socialPath}
}

// Categories lists the category folders under the big paintings path.
func (m *Manager) Categories() ([]string, error) {
	entries, err := os.ReadDir(m.bigPath)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to read paintings folder: %w", err)
	}

	var categories []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			categories = append(categories, entry.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// FindPaintingPairs returns every supported image in the category's big
// folder, paired with a same-stem file from the social folder when one exists.
func (m *Manager) FindPaintingPairs(category string) ([]PaintingPair, error) {
	bigDir := filepath.Join(m.bigPath, category)
	entries, err := os.ReadDir(bigDir)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to read category folder: %w", err)
	}

	var pairs []PaintingPair
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		big := filepath.Join(bigDir, entry.Name())
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		pairs = append(pairs, PaintingPair{
			Big:    big,
			Social: m.findSocialVariant(category, stem),
		})
	}
	return pairs, nil
}

// FindPair resolves one named painting in a category to its pair.
func (m *Manager) FindPair(category, filename string) (PaintingPair, error) {
	big := filepath.Join(m.bigPath, category, filename)
	if _, err := os.Stat(big); err != nil {
		return PaintingPair{}, fmt.Errorf("painting not found: %s/%s", category, filename)
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return PaintingPair{
		Big:    big,
		Social: m.findSocialVariant(category, stem),
	}, nil
}

func (m *Manager) findSocialVariant(category, stem string) string {
	for ext := range supportedExtensions {
		candidate := filepath.Join(m.socialPath, category, stem+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// RenamePair renames both files of a pair to the new base name, keeping each
// file's extension. The social variant is optional.
func (m *Manager) RenamePair(pair PaintingPair, newBase string) (PaintingPair, error) {
	renamed := PaintingPair{}

	newBig := filepath.Join(filepath.Dir(pair.Big), newBase+filepath.Ext(pair.Big))
	if err := os.Rename(pair.Big, newBig); err != nil {
		slog.Info(err.Error())
		return renamed, fmt.Errorf("failed to rename big file: %w", err)
	}
	renamed.Big = newBig

	if pair.Social != "" {
		newSocial := filepath.Join(filepath.Dir(pair.Social), newBase+filepath.Ext(pair.Social))
		if err := os.Rename(pair.Social, newSocial); err != nil {
			slog.Info(err.Error())
			return renamed, fmt.Errorf("failed to rename social file: %w", err)
		}
		renamed.Social = newSocial
	}
	return renamed, nil
}

// CreationDate suggests a creation date for a painting from the file's
// modification time.
func (m *Manager) CreationDate(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ValidateImage checks that the file is a real image by content, not
// extension, and rejects oversized files.
func ValidateImage(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxImageSizeBytes {
		return fmt.Errorf("image exceeds maximum size: %s", path)
	}

	header, err := readHeader(path)
	if err != nil {
		return err
	}
	if !filetype.IsImage(header) {
		return fmt.Errorf("not a supported image file: %s", path)
	}
	return nil
}

// DetectContentType sniffs the MIME type from file content, falling back to
// application/octet-stream when the type is unknown.
func DetectContentType(path string) (string, error) {
	header, err := readHeader(path)
	if err != nil {
		return "", err
	}

	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream", nil
	}
	return kind.MIME.Value, nil
}

func readHeader(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header := make([]byte, 261)
	n, err := file.Read(header)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return header[:n], nil
}

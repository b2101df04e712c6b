package social

import (
	"context"
	"fmt"
)

// Cara is a placeholder; Cara has no public posting API yet.
type Cara struct{}

func NewCara() *Cara { return &Cara{} }

func (c *Cara) Name() string         { return "cara" }
func (c *Cara) DisplayName() string  { return "Cara" }
func (c *Cara) SupportsImages() bool { return true }
func (c *Cara) SupportsVideo() bool  { return false }
func (c *Cara) MaxTextLength() int   { return 5000 }
func (c *Cara) IsConfigured() bool   { return false }

func (c *Cara) VerifyCredentials(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("cara: %w", ErrNotImplemented)
}

func (c *Cara) PostImage(ctx context.Context, imagePath, text, altText string) (*PostResult, error) {
	return nil, fmt.Errorf("cara: %w", ErrNotImplemented)
}

func (c *Cara) PostVideo(ctx context.Context, videoPath, text string) (*PostResult, error) {
	return nil, fmt.Errorf("cara: %w", ErrNotImplemented)
}

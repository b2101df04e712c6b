package social

import (
	"context"
	"fmt"
)

// Bluesky is a placeholder; posting is not wired up yet.
type Bluesky struct{}

func NewBluesky() *Bluesky { return &Bluesky{} }

func (b *Bluesky) Name() string         { return "bluesky" }
func (b *Bluesky) DisplayName() string  { return "Bluesky" }
func (b *Bluesky) SupportsImages() bool { return true }
func (b *Bluesky) SupportsVideo() bool  { return true }
func (b *Bluesky) MaxTextLength() int   { return 300 }
func (b *Bluesky) IsConfigured() bool   { return false }

func (b *Bluesky) VerifyCredentials(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("bluesky: %w", ErrNotImplemented)
}

func (b *Bluesky) PostImage(ctx context.Context, imagePath, text, altText string) (*PostResult, error) {
	return nil, fmt.Errorf("bluesky: %w", ErrNotImplemented)
}

func (b *Bluesky) PostVideo(ctx context.Context, videoPath, text string) (*PostResult, error) {
	return nil, fmt.Errorf("bluesky: %w", ErrNotImplemented)
}

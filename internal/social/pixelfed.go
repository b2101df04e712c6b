package social

import (
	"context"
	"fmt"
)

// Pixelfed is a placeholder; the API is Mastodon-compatible but untested, so
// it stays unimplemented for now.
type Pixelfed struct{}

func NewPixelfed() *Pixelfed { return &Pixelfed{} }

func (p *Pixelfed) Name() string         { return "pixelfed" }
func (p *Pixelfed) DisplayName() string  { return "Pixelfed" }
func (p *Pixelfed) SupportsImages() bool { return true }
func (p *Pixelfed) SupportsVideo() bool  { return false }
func (p *Pixelfed) MaxTextLength() int   { return 500 }
func (p *Pixelfed) IsConfigured() bool   { return false }

func (p *Pixelfed) VerifyCredentials(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("pixelfed: %w", ErrNotImplemented)
}

func (p *Pixelfed) PostImage(ctx context.Context, imagePath, text, altText string) (*PostResult, error) {
	return nil, fmt.Errorf("pixelfed: %w", ErrNotImplemented)
}

func (p *Pixelfed) PostVideo(ctx context.Context, videoPath, text string) (*PostResult, error) {
	return nil, fmt.Errorf("pixelfed: %w", ErrNotImplemented)
}

package social

import (
	"context"
	"errors"
)

// ErrNotImplemented marks a platform that exists as a placeholder only. It is
// distinct from a failed PostResult so callers know new credentials will not
// help.
var ErrNotImplemented = errors.New("platform integration not yet implemented")

// PostResult reports one posting attempt. Expected failures (unconfigured
// platform, remote API errors) are carried here rather than through returned
// errors, so a runner can loop over many platforms without special cases.
type PostResult struct {
	Success bool   `json:"success"`
	PostURL string `json:"post_url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Platform is the uniform capability contract over one social network's
// posting API.
type Platform interface {
	Name() string
	DisplayName() string
	SupportsImages() bool
	SupportsVideo() bool
	MaxTextLength() int

	// IsConfigured reports whether credentials are present and well-formed
	// enough to attempt a call. Never performs network I/O.
	IsConfigured() bool

	// VerifyCredentials performs a live authenticated check. It returns false
	// both when unconfigured and when the platform rejects the credentials;
	// only transport failures surface as errors.
	VerifyCredentials(ctx context.Context) (bool, error)

	// PostImage publishes one image with caption and optional alt text. When
	// the platform is unconfigured it fails fast with an unsuccessful
	// PostResult and makes no network call.
	PostImage(ctx context.Context, imagePath, text, altText string) (*PostResult, error)

	// PostVideo publishes one video with caption, under the same contract as
	// PostImage.
	PostVideo(ctx context.Context, videoPath, text string) (*PostResult, error)
}

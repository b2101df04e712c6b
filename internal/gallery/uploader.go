package gallery

import (
	"context"

	"github.com/hverbeek/artflow/internal/models"
)

// Uploader publishes a processed painting to a gallery website. The FASO
// implementation drives a browser session and lives outside this repository;
// here it is only a collaborator with a narrow contract.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, meta *models.ArtworkMetadata) error
}

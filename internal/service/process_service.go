package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	config "github.com/hverbeek/artflow/configs"
	"github.com/hverbeek/artflow/internal/files"
	"github.com/hverbeek/artflow/internal/gallery"
	"github.com/hverbeek/artflow/internal/metadata"
	"github.com/hverbeek/artflow/internal/transfer"
	"github.com/hverbeek/artflow/pkg/utils"
)

// ProcessService runs the painting intake workflow: propose titles, generate
// a description, rename the files, write the metadata documents, register the
// painting with the upload tracker, and archive the original.
type ProcessService interface {
	Analyze(ctx context.Context, category, filename string) ([]string, error)
	Process(ctx context.Context, req *transfer.ProcessArtworkRequest) (*transfer.ProcessArtworkResponse, error)
}

type processService struct {
	cfg      config.Config
	fm       *files.Manager
	mm       *metadata.Manager
	analyzer AnalyzerService
	tracker  *gallery.Tracker
	archive  *ArchiveService
}

func NewProcessService(
	cfg config.Config,
	fm *files.Manager,
	mm *metadata.Manager,
	analyzer AnalyzerService,
	tracker *gallery.Tracker,
	archive *ArchiveService) ProcessService {
	return &processService{
		cfg:      cfg,
		fm:       fm,
		mm:       mm,
		analyzer: analyzer,
		tracker:  tracker,
		archive:  archive,
	}
}

func (s *processService) Analyze(ctx context.Context, category, filename string) ([]string, error) {
	pair, err := s.fm.FindPair(category, filename)
	if err != nil {
		return nil, err
	}
	if err := files.ValidateImage(pair.Big); err != nil {
		return nil, err
	}
	return s.analyzer.GenerateTitles(ctx, pair.Big)
}

func (s *processService) Process(ctx context.Context, req *transfer.ProcessArtworkRequest) (*transfer.ProcessArtworkResponse, error) {
	pair, err := s.fm.FindPair(req.Category, req.Filename)
	if err != nil {
		return nil, err
	}
	if err := files.ValidateImage(pair.Big); err != nil {
		return nil, err
	}

	formatted := formatDimensions(req.Width, req.Height, req.Depth, s.cfg.DimensionUnit)
	fullMedium := fmt.Sprintf("%s on %s", req.Medium, req.Substrate)

	description, err := s.analyzer.GenerateDescription(ctx, pair.Big, req.SelectedTitle, fullMedium, formatted, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to generate description: %w", err)
	}

	sanitized := utils.SanitizeFilename(req.SelectedTitle)
	if sanitized == "" {
		return nil, fmt.Errorf("selected title produces an empty filename")
	}

	renamed, err := s.fm.RenamePair(pair, sanitized)
	if err != nil {
		return nil, err
	}

	meta := s.mm.Create(metadata.CreateInput{
		FilenameBase:      sanitized,
		Category:          req.Category,
		BigFilePath:       renamed.Big,
		InstagramFilePath: renamed.Social,
		SelectedTitle:     req.SelectedTitle,
		AllTitles:         req.AllTitles,
		Description:       description,
		Width:             req.Width,
		Height:            req.Height,
		Depth:             req.Depth,
		DimensionUnit:     s.cfg.DimensionUnit,
		DimensionsText:    formatted,
		Substrate:         req.Substrate,
		Medium:            req.Medium,
		Subject:           req.Subject,
		Style:             req.Style,
		Collection:        req.Collection,
		PriceEUR:          req.PriceEUR,
		CreationDate:      req.CreationDate,
	})

	jsonPath, err := s.mm.SaveJSON(meta)
	if err != nil {
		return nil, err
	}
	txtPath, err := s.mm.SaveText(meta)
	if err != nil {
		return nil, err
	}

	if err := s.tracker.Track(sanitized, jsonPath); err != nil {
		return nil, err
	}

	// Archiving is best effort; a storage outage must not lose the intake work.
	if s.archive != nil && s.archive.IsConfigured() {
		key := fmt.Sprintf("%s/%s%s", req.Category, sanitized, filepath.Ext(renamed.Big))
		if err := s.archive.ArchiveArtwork(ctx, key, renamed.Big); err != nil {
			slog.Error("failed to archive artwork", "content_id", sanitized, "error", err)
		}
	}

	return &transfer.ProcessArtworkResponse{
		ContentID:    sanitized,
		MetadataPath: jsonPath,
		TextPath:     txtPath,
		BigFile:      renamed.Big,
		SocialFile:   renamed.Social,
	}, nil
}

func formatDimensions(width, height float64, depth *float64, unit string) string {
	formatted := fmt.Sprintf("%g%s x %g%s", width, unit, height, unit)
	if depth != nil {
		formatted += fmt.Sprintf(" x %g%s", *depth, unit)
	}
	return formatted
}

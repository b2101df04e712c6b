package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/hverbeek/artflow/configs"
	"github.com/hverbeek/artflow/internal/files"
)

// ArchiveService keeps an off-site copy of processed paintings in Cloudflare
// R2 storage.
type ArchiveService struct {
	config cfg.Config
}

func NewArchiveService(cfg cfg.Config) *ArchiveService {
	return &ArchiveService{config: cfg}
}

func (a *ArchiveService) IsConfigured() bool {
	r2 := a.config.R2
	return r2.AccountID != "" && r2.AccessKey != "" && r2.SecretKey != "" && r2.BucketName != ""
}

func (a *ArchiveService) r2Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(a.config.R2.AccessKey, a.config.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", a.config.R2.AccountID))
	}), nil
}

// ArchiveArtwork uploads one painting file under the given object key. The
// content type is sniffed from the file itself.
func (a *ArchiveService) ArchiveArtwork(ctx context.Context, key, filePath string) error {
	if !a.IsConfigured() {
		return fmt.Errorf("archive storage is not configured")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to read artwork file: %w", err)
	}

	contentType, err := files.DetectContentType(filePath)
	if err != nil {
		return err
	}

	client, err := a.r2Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

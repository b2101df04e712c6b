package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	MastodonInstanceURL string
	MastodonAccessToken string
	PaintingsBigPath    string
	PaintingsSocialPath string
	MetadataOutputPath  string
	SchedulePath        string
	UploadTrackerPath   string
	AnthropicAPIKey     string
	AnalyzerModel       string
	AnalyzerMaxTokens   int
	DimensionUnit       string
	RedisURI            string
	APIKey              string
	R2                  R2
}

func LoadConfig() *Config {
	return &Config{
		MastodonInstanceURL: getEnv("MASTODON_INSTANCE_URL", ""),
		MastodonAccessToken: getEnv("MASTODON_ACCESS_TOKEN", ""),
		PaintingsBigPath:    getEnv("PAINTINGS_BIG_PATH", ""),
		PaintingsSocialPath: getEnv("PAINTINGS_SOCIAL_PATH", ""),
		MetadataOutputPath:  getEnv("METADATA_OUTPUT_PATH", ""),
		SchedulePath:        getEnv("SCHEDULE_PATH", "schedule.json"),
		UploadTrackerPath:   getEnv("UPLOAD_TRACKER_PATH", "upload_tracker.json"),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		AnalyzerModel:       getEnv("ANALYZER_MODEL", "claude-sonnet-4-20250514"),
		AnalyzerMaxTokens:   2000,
		DimensionUnit:       getEnv("DIMENSION_UNIT", "cm"),
		RedisURI:            getEnv("REDIS_URI", "127.0.0.1:6379"),
		APIKey:              getEnv("API_KEY", ""),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package models

type ArtworkFiles struct {
	Big       string `json:"big"`
	Instagram string `json:"instagram,omitempty"`
}

type ArtworkTitle struct {
	Selected   string   `json:"selected"`
	AllOptions []string `json:"all_options"`
}

type Dimensions struct {
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Depth     *float64 `json:"depth"`
	Unit      string   `json:"unit"`
	Formatted string   `json:"formatted"`
}

// ArtworkMetadata is the per-painting metadata document written alongside the
// image files. The social_media block is owned by the tracking updater and is
// deliberately loose-typed there; see internal/metadata.
type ArtworkMetadata struct {
	FilenameBase  string                      `json:"filename_base"`
	Category      string                      `json:"category"`
	Files         ArtworkFiles                `json:"files"`
	Title         ArtworkTitle                `json:"title"`
	Description   string                      `json:"description"`
	Dimensions    Dimensions                  `json:"dimensions"`
	Substrate     string                      `json:"substrate"`
	Medium        string                      `json:"medium"`
	Subject       string                      `json:"subject"`
	Style         string                      `json:"style"`
	Collection    string                      `json:"collection"`
	PriceEUR      float64                     `json:"price_eur"`
	CreationDate  string                      `json:"creation_date"`
	ProcessedDate string                      `json:"processed_date"`
	AnalyzedFrom  string                      `json:"analyzed_from"`
	SocialMedia   map[string]PlatformTracking `json:"social_media,omitempty"`
}

// PlatformTracking records how often a painting went out on one platform.
type PlatformTracking struct {
	LastPosted string `json:"last_posted"`
	PostURL    string `json:"post_url"`
	PostCount  int    `json:"post_count"`
}

package transfer

type AnalyzeArtworkRequest struct {
	Category string `json:"category"`
	Filename string `json:"filename"`
}

type AnalyzeArtworkResponse struct {
	Titles []string `json:"titles"`
}

type ProcessArtworkRequest struct {
	Category      string   `json:"category"`
	Filename      string   `json:"filename"`
	SelectedTitle string   `json:"selected_title"`
	AllTitles     []string `json:"all_titles"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	Depth         *float64 `json:"depth"`
	Substrate     string   `json:"substrate"`
	Medium        string   `json:"medium"`
	Subject       string   `json:"subject"`
	Style         string   `json:"style"`
	Collection    string   `json:"collection"`
	PriceEUR      float64  `json:"price_eur"`
	CreationDate  string   `json:"creation_date"`
}

type ProcessArtworkResponse struct {
	ContentID    string `json:"content_id"`
	MetadataPath string `json:"metadata_path"`
	TextPath     string `json:"text_path"`
	BigFile      string `json:"big_file"`
	SocialFile   string `json:"social_file,omitempty"`
}

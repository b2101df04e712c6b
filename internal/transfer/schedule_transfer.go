package transfer

type SchedulePostRequest struct {
	ContentID     string `json:"content_id"`
	MetadataPath  string `json:"metadata_path"`
	Platform      string `json:"platform"`
	ScheduledTime string `json:"scheduled_time"`
}

type PlatformInfo struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	SupportsImage bool   `json:"supports_images"`
	SupportsVideo bool   `json:"supports_video"`
	MaxTextLength int    `json:"max_text_length"`
	Configured    bool   `json:"configured"`
	Implemented   bool   `json:"implemented"`
}

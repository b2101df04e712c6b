package models

import "time"

// ScheduledPost is a live entry in the schedule. Terminal outcomes move to a
// HistoryRecord, which carries the resolution details.
type ScheduledPost struct {
	ID            string    `json:"id"`
	ContentID     string    `json:"content_id"`
	MetadataPath  string    `json:"metadata_path"`
	Platform      string    `json:"platform"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Status        string    `json:"status"` // scheduled, posted, failed, cancelled
	PostURL       string    `json:"post_url,omitempty"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type HistoryRecord struct {
	ID         string    `json:"id"`
	ContentID  string    `json:"content_id"`
	Platform   string    `json:"platform"`
	Status     string    `json:"status"`
	PostURL    string    `json:"post_url,omitempty"`
	Error      string    `json:"error,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

const (
	PostStatusScheduled = "scheduled"
	PostStatusPosted    = "posted"
	PostStatusFailed    = "failed"
	PostStatusCancelled = "cancelled"
)

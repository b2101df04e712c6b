package queue

import (
	"time"

	"github.com/hverbeek/artflow/internal/schedule"
	"github.com/hverbeek/artflow/internal/social"
)

// Runner executes due social posts: it resolves the image to post, dispatches
// to the platform adapter, and records the outcome in the scheduler history
// and the painting's own metadata document.
type Runner struct {
	sched     *schedule.Scheduler
	platforms *social.Registry

	// pause between successive platform calls, to stay friendly with rate
	// limits
	postDelay time.Duration
}

func NewRunner(sched *schedule.Scheduler, platforms *social.Registry) *Runner {
	return &Runner{
		sched:     sched,
		platforms: platforms,
		postDelay: 2 * time.Second,
	}
}

const TaskTypeSocialPost = "social:post"

type SocialPostPayload struct {
	PostID string `json:"post_id"`
}

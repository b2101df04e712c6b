package job

import (
	"log/slog"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/hverbeek/artflow/internal/queue"
	"github.com/hverbeek/artflow/internal/schedule"
)

// DuePostsJob sweeps the schedule for due posts and hands them to the task
// queue. It remembers what it already enqueued so a post is not queued twice
// while the worker is still processing it.
type DuePostsJob struct {
	sched  *schedule.Scheduler
	client *asynq.Client

	mu       sync.Mutex
	enqueued map[string]bool
}

func NewDuePostsJob(sched *schedule.Scheduler, client *asynq.Client) *DuePostsJob {
	return &DuePostsJob{
		sched:    sched,
		client:   client,
		enqueued: make(map[string]bool),
	}
}

func (j *DuePostsJob) SweepDuePosts() {
	pending := j.sched.GetPending()

	j.mu.Lock()
	defer j.mu.Unlock()

	// Drop bookkeeping for posts that have left the live set.
	live := make(map[string]bool, len(pending))
	for _, post := range pending {
		live[post.ID] = true
	}
	for id := range j.enqueued {
		if !live[id] && j.sched.Get(id) == nil {
			delete(j.enqueued, id)
		}
	}

	for _, post := range pending {
		if j.enqueued[post.ID] {
			continue
		}

		err := queue.EnqueuePost(j.client, queue.SocialPostPayload{PostID: post.ID}, 0)
		if err != nil {
			slog.Error("failed to enqueue due post", "post_id", post.ID, "error", err)
			continue
		}
		j.enqueued[post.ID] = true
	}
}

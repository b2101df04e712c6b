package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hibiken/asynq"

	"github.com/hverbeek/artflow/internal/metadata"
)

func (r *Runner) HandleSocialPostTask(ctx context.Context, task *asynq.Task) error {
	var payload SocialPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return r.PublishPost(ctx, payload.PostID)
}

// PublishPost runs one posting attempt. Expected failures (unconfigured or
// unimplemented platform, remote API errors, missing image) resolve the post
// as failed and do not error the task; only persistence failures propagate so
// asynq retries them.
func (r *Runner) PublishPost(ctx context.Context, postID string) error {
	post := r.sched.Get(postID)
	if post == nil {
		// Already resolved or cancelled since the task was enqueued.
		slog.Info("skipping post no longer in live set", "post_id", postID)
		return nil
	}

	platform, ok := r.platforms.Get(post.Platform)
	if !ok {
		return r.sched.MarkFailed(postID, fmt.Sprintf("unknown platform: %s", post.Platform))
	}

	doc, err := metadata.LoadDocument(post.MetadataPath)
	if err != nil {
		return r.sched.MarkFailed(postID, fmt.Sprintf("failed to load metadata: %v", err))
	}

	imagePath := metadata.SocialImagePath(doc)
	if imagePath == "" {
		return r.sched.MarkFailed(postID, "no social-sized image available")
	}

	caption := buildCaption(doc, platform.MaxTextLength())
	altText := selectedTitle(doc)

	result, err := platform.PostImage(ctx, imagePath, caption, altText)
	if r.postDelay > 0 {
		time.Sleep(r.postDelay)
	}
	if err != nil {
		// Unimplemented platforms land here with their distinct error.
		return r.sched.MarkFailed(postID, err.Error())
	}
	if !result.Success {
		return r.sched.MarkFailed(postID, result.Error)
	}

	if err := r.sched.MarkPosted(postID, result.PostURL); err != nil {
		return err
	}

	if err := metadata.UpdateSocialTracking(post.MetadataPath, post.Platform, result.PostURL); err != nil {
		// The post went out; a tracking write failure must not trigger a
		// duplicate attempt.
		slog.Error("failed to update social tracking", "post_id", postID, "error", err)
	}

	slog.Info("published post", "post_id", postID, "platform", post.Platform, "url", result.PostURL)
	return nil
}

func buildCaption(doc map[string]any, maxLength int) string {
	title := selectedTitle(doc)
	description, _ := doc["description"].(string)

	caption := title
	if description != "" {
		if caption != "" {
			caption += "\n\n"
		}
		caption += description
	}

	// Platform limits count characters, not bytes.
	if maxLength > 0 && utf8.RuneCountInString(caption) > maxLength {
		runes := []rune(caption)
		caption = strings.TrimSpace(string(runes[:maxLength]))
	}
	return caption
}

func selectedTitle(doc map[string]any) string {
	title, ok := doc["title"].(map[string]any)
	if !ok {
		return ""
	}
	selected, _ := title["selected"].(string)
	return selected
}

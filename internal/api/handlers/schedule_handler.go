package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/hverbeek/artflow/internal/queue"
	"github.com/hverbeek/artflow/internal/schedule"
	"github.com/hverbeek/artflow/internal/social"
	"github.com/hverbeek/artflow/internal/transfer"
)

type ScheduleHandler struct {
	sched       *schedule.Scheduler
	platforms   *social.Registry
	AsynqClient *asynq.Client
}

func NewScheduleHandler(sched *schedule.Scheduler, platforms *social.Registry, asynqClient *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{sched: sched, platforms: platforms, AsynqClient: asynqClient}
}

func (h *ScheduleHandler) CreatePost(c *fiber.Ctx) error {
	var req transfer.SchedulePostRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.ContentID == "" || req.MetadataPath == "" || req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content_id, metadata_path and platform are required",
		})
	}

	if _, ok := h.platforms.Get(req.Platform); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown platform: " + req.Platform,
		})
	}

	scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_time must be an RFC 3339 timestamp",
		})
	}

	postID, err := h.sched.AddPost(req.ContentID, req.MetadataPath, req.Platform, scheduledTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	delay := time.Until(scheduledTime)
	if delay < 0 {
		delay = 0
	}
	if err := queue.EnqueuePost(h.AsynqClient, queue.SocialPostPayload{PostID: postID}, delay); err != nil {
		// The post is persisted; the sweep job will pick it up when due.
		slog.Error("failed to enqueue post task", "post_id", postID, "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post scheduled successfully",
		"post_id": postID,
	})
}

func (h *ScheduleHandler) ListPending(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.sched.GetPending())
}

func (h *ScheduleHandler) ListUpcoming(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.sched.GetUpcoming())
}

func (h *ScheduleHandler) CancelPost(c *fiber.Ctx) error {
	cancelled, err := h.sched.CancelPost(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to cancel post",
		})
	}
	if !cancelled {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ScheduleHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	return c.Status(fiber.StatusOK).JSON(h.sched.GetHistory(limit))
}

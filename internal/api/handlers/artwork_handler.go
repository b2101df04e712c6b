package handlers

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/hverbeek/artflow/internal/metadata"
	"github.com/hverbeek/artflow/internal/service"
	"github.com/hverbeek/artflow/internal/transfer"
)

type ArtworkHandler struct {
	ps service.ProcessService
	mm *metadata.Manager
}

func NewArtworkHandler(ps service.ProcessService, mm *metadata.Manager) *ArtworkHandler {
	return &ArtworkHandler{ps: ps, mm: mm}
}

func (h *ArtworkHandler) Analyze(c *fiber.Ctx) error {
	var req transfer.AnalyzeArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	titles, err := h.ps.Analyze(c.Context(), req.Category, req.Filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(transfer.AnalyzeArtworkResponse{Titles: titles})
}

func (h *ArtworkHandler) Process(c *fiber.Ctx) error {
	var req transfer.ProcessArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if req.SelectedTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "selected_title is required",
		})
	}

	result, err := h.ps.Process(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ArtworkHandler) GetMetadata(c *fiber.Ctx) error {
	meta, err := h.mm.Load(c.Params("category"), c.Params("name"))
	if err != nil {
		if os.IsNotExist(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Metadata not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load metadata",
		})
	}

	return c.Status(fiber.StatusOK).JSON(meta)
}

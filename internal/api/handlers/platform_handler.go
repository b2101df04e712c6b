package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hverbeek/artflow/internal/social"
	"github.com/hverbeek/artflow/internal/transfer"
)

type PlatformHandler struct {
	platforms *social.Registry
}

func NewPlatformHandler(platforms *social.Registry) *PlatformHandler {
	return &PlatformHandler{platforms: platforms}
}

func (h *PlatformHandler) ListPlatforms(c *fiber.Ctx) error {
	list := h.platforms.List()
	infos := make([]transfer.PlatformInfo, 0, len(list))

	for _, p := range list {
		implemented := true
		if !p.IsConfigured() {
			// Stubs answer without network I/O; configured platforms are
			// implemented by definition.
			_, err := p.VerifyCredentials(c.Context())
			implemented = !errors.Is(err, social.ErrNotImplemented)
		}

		infos = append(infos, transfer.PlatformInfo{
			Name:          p.Name(),
			DisplayName:   p.DisplayName(),
			SupportsImage: p.SupportsImages(),
			SupportsVideo: p.SupportsVideo(),
			MaxTextLength: p.MaxTextLength(),
			Configured:    p.IsConfigured(),
			Implemented:   implemented,
		})
	}

	return c.Status(fiber.StatusOK).JSON(infos)
}

func (h *PlatformHandler) VerifyCredentials(c *fiber.Ctx) error {
	platform, ok := h.platforms.Get(c.Params("name"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unknown platform",
		})
	}

	valid, err := platform.VerifyCredentials(c.Context())
	if err != nil {
		if errors.Is(err, social.ErrNotImplemented) {
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Println(err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Credential check failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"platform":   platform.Name(),
		"configured": platform.IsConfigured(),
		"valid":      valid,
	})
}

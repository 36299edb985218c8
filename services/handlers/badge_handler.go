package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/shared"
)

const maxBadgeSize = 2 << 20 // 2 MiB

type BadgeHandler struct {
	badgeSvc BadgeServiceInterface
}

func NewBadgeHandler(badgeSvc BadgeServiceInterface) *BadgeHandler {
	return &BadgeHandler{badgeSvc: badgeSvc}
}

// @Summary Upload achievement badge
// @Description Stores a badge image for the achievement and records its URL on the catalog entry
// @Tags achievements
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Achievement id"
// @Param badge formData file true "Badge image"
// @Success 200 {object} shared.Response{data=dto.BadgeUploadResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/achievements/{id}/badge [post]
func (h *BadgeHandler) UploadBadge(c *fiber.Ctx) error {
	achievementID := c.Params("id")
	if achievementID == "" {
		return shared.NewBadRequestError(nil, "achievement id is required")
	}

	fileHeader, err := c.FormFile("badge")
	if err != nil {
		return shared.NewBadRequestError(err, "badge file is required")
	}
	if fileHeader.Size > maxBadgeSize {
		return shared.NewBadRequestError(nil, "badge file exceeds 2 MiB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "failed to open badge file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	resp, err := h.badgeSvc.UploadBadge(achievementID, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

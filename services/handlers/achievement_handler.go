package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/shared"
)

type AchievementHandler struct {
	achievementSvc AchievementServiceInterface
}

func NewAchievementHandler(achievementSvc AchievementServiceInterface) *AchievementHandler {
	return &AchievementHandler{achievementSvc: achievementSvc}
}

// @Summary List achievements
// @Description Returns the catalog annotated with the user's unlock state
// @Tags achievements
// @Produce json
// @Success 200 {object} shared.Response{data=dto.AchievementCollectionResponse}
// @Security BearerAuth
// @Router /api/v1/achievements [get]
func (h *AchievementHandler) ListAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.achievementSvc.ListAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Create achievement
// @Description Adds a catalog entry; prerequisites must reference existing achievement ids
// @Tags achievements
// @Accept json
// @Produce json
// @Param request body dto.CreateAchievementRequest true "Achievement"
// @Success 201 {object} shared.Response{data=dto.AchievementResponse}
// @Failure 400 {object} shared.Response
// @Failure 409 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/achievements [post]
func (h *AchievementHandler) CreateAchievement(c *fiber.Ctx) error {
	var req dto.CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	resp, err := h.achievementSvc.CreateAchievement(&req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// @Summary Update achievement
// @Description Rewrites a catalog entry; the achievement id is immutable
// @Tags achievements
// @Accept json
// @Produce json
// @Param id path string true "Achievement id"
// @Param request body dto.CreateAchievementRequest true "Achievement"
// @Success 200 {object} shared.Response{data=dto.AchievementResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/achievements/{id} [put]
func (h *AchievementHandler) UpdateAchievement(c *fiber.Ctx) error {
	achievementID := c.Params("id")
	if achievementID == "" {
		return shared.NewBadRequestError(nil, "achievement id is required")
	}

	var req dto.CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	resp, err := h.achievementSvc.UpdateAchievement(achievementID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

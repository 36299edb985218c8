package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// @Summary Record a played game
// @Description Applies one finished game to the user's progress: XP, aggregates, streak, leveling and achievement unlocks
// @Tags progress
// @Accept json
// @Produce json
// @Param request body dto.PlayedGameRequest true "Played game"
// @Success 200 {object} shared.Response{data=dto.RecordGameResponse}
// @Failure 400 {object} shared.Response
// @Failure 409 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/progress/games [post]
func (h *ProgressHandler) RecordPlayedGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.PlayedGameRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	resp, err := h.progressSvc.RecordPlayedGame(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Record a stage completion
// @Description Applies a finished lesson stage to level and category progress, granting the XP reward on first completion
// @Tags progress
// @Accept json
// @Produce json
// @Param request body dto.StageCompletionRequest true "Stage result"
// @Success 200 {object} shared.Response{data=dto.StageCompletionResponse}
// @Failure 400 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/progress/stages [post]
func (h *ProgressHandler) RecordStageCompletion(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.StageCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	resp, err := h.progressSvc.RecordStageCompletion(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get progress snapshot
// @Description Returns the user's full progress view: XP, level, streak, statistics, achievements and daily activity
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Security BearerAuth
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Recent games
// @Description Returns the newest play events first
// @Tags progress
// @Produce json
// @Param limit query int false "Max games to return" default(20)
// @Success 200 {object} shared.Response{data=dto.RecentGamesResponse}
// @Security BearerAuth
// @Router /api/v1/progress/games/recent [get]
func (h *ProgressHandler) RecentGames(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.progressSvc.RecentGames(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Re-check achievements
// @Description Runs the unlock pass against the current snapshot, e.g. after a catalog change
// @Tags progress
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CheckAchievementsResponse}
// @Security BearerAuth
// @Router /api/v1/progress/achievements/check [post]
func (h *ProgressHandler) CheckAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.CheckAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{challengeSvc: challengeSvc}
}

// @Summary Today's challenge
// @Description Returns the user's daily challenge instance, creating it on first access
// @Tags challenges
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Security BearerAuth
// @Router /api/v1/challenges/today [get]
func (h *ChallengeHandler) GetTodayChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.challengeSvc.GetTodayChallenge(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Update challenge progress
// @Description Writes an absolute progress value; reaching the target completes the challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body dto.UpdateChallengeProgressRequest true "Progress"
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Failure 400 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/challenges/today/progress [put]
func (h *ChallengeHandler) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateChallengeProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	resp, err := h.challengeSvc.UpdateProgress(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Claim challenge rewards
// @Description Moves a completed challenge to rewards_claimed and applies its rewards to the user's progress
// @Tags challenges
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Failure 400 {object} shared.Response
// @Failure 409 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/challenges/today/claim [post]
func (h *ChallengeHandler) ClaimRewards(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.challengeSvc.ClaimRewards(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Challenge streak
// @Description Counts consecutive days with a completed daily challenge ending today
// @Tags challenges
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ChallengeStreakResponse}
// @Security BearerAuth
// @Router /api/v1/challenges/streak [get]
func (h *ChallengeHandler) GetChallengeStreak(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.challengeSvc.GetChallengeStreak(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Create challenge template
// @Description Adds an entry to the rotating daily challenge pool
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body model.ChallengeTemplate true "Template"
// @Success 201 {object} shared.Response{data=model.ChallengeTemplate}
// @Failure 400 {object} shared.Response
// @Security BearerAuth
// @Router /api/v1/admin/challenges/templates [post]
func (h *ChallengeHandler) CreateTemplate(c *fiber.Ctx) error {
	var tpl model.ChallengeTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return shared.NewBadRequestError(err, "invalid request body")
	}

	if err := h.challengeSvc.CreateTemplate(&tpl); err != nil {
		return err
	}

	return shared.ResponseCreated(c, tpl)
}

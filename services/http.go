package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/brainwave-labs/quest_api/middleware"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/services/handlers"
	"github.com/brainwave-labs/quest_api/services/repositories"
	"github.com/brainwave-labs/quest_api/shared"
)

type HttpService struct {
	context.DefaultService

	jwtSvc         *JWTService
	sqlSvc         *SqlService
	progressSvc    *ProgressService
	challengeSvc   *ChallengeService
	achievementSvc *AchievementService
	badgeSvc       *BadgeService
	monitoringSvc  *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.challengeSvc = svc.Service(CHALLENGE_SVC).(*ChallengeService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.badgeSvc = svc.Service(BADGE_SVC).(*BadgeService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})
	svc.app = app

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(svc.monitoringSvc.HTTPMiddleware())

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	challengeHandler := handlers.NewChallengeHandler(svc.challengeSvc)
	achievementHandler := handlers.NewAchievementHandler(svc.achievementSvc)
	badgeHandler := handlers.NewBadgeHandler(svc.badgeSvc)

	userRepo := repositories.NewUserRepository(svc.sqlSvc.Db())

	auth := middleware.RequiredAuth(svc.jwtSvc)
	admin := middleware.RequireRole(userRepo, model.RoleAdmin)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	progress := v1.Group("/progress", auth)
	progress.Get("/", progressHandler.GetProgress)
	progress.Post("/games", progressHandler.RecordPlayedGame)
	progress.Get("/games/recent", progressHandler.RecentGames)
	progress.Post("/stages", progressHandler.RecordStageCompletion)
	progress.Post("/achievements/check", progressHandler.CheckAchievements)

	challengesGrp := v1.Group("/challenges", auth)
	challengesGrp.Get("/today", challengeHandler.GetTodayChallenge)
	challengesGrp.Put("/today/progress", challengeHandler.UpdateProgress)
	challengesGrp.Post("/today/claim", challengeHandler.ClaimRewards)
	challengesGrp.Get("/streak", challengeHandler.GetChallengeStreak)

	v1.Get("/achievements", auth, achievementHandler.ListAchievements)

	adminGrp := v1.Group("/admin", auth, admin)
	adminGrp.Post("/achievements", achievementHandler.CreateAchievement)
	adminGrp.Put("/achievements/:id", achievementHandler.UpdateAchievement)
	adminGrp.Post("/achievements/:id/badge", badgeHandler.UploadBadge)
	adminGrp.Post("/challenges/templates", challengeHandler.CreateTemplate)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	log.Infof("HTTP listening on :%d", svc.port)
	return app.Listen(fmt.Sprintf(":%d", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description Health check
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.WithError(appErr.Err).Error(appErr.Message)
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}

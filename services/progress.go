package services

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/engine"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/services/repositories"
	"github.com/brainwave-labs/quest_api/shared"
)

// ProgressService owns the per-user progress snapshot. Every mutation runs
// as load -> apply rules -> save under a per-user lock, so concurrent play
// events for the same user serialize instead of losing updates.
type ProgressService struct {
	context.DefaultService

	sqlSvc         *SqlService
	achievementSvc *AchievementService
	monitoringSvc  *MonitoringService

	progressRepo *repositories.ProgressRepository

	clock engine.Clock
	locks sync.Map // userID -> *sync.Mutex
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	tz := os.Getenv("PROGRESS_TIMEZONE")
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid PROGRESS_TIMEZONE %q: %w", tz, err)
	}
	svc.clock = engine.NewSystemClock(loc)

	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.progressRepo = repositories.NewProgressRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ProgressService) userLock(userID string) *sync.Mutex {
	mu, _ := svc.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RecordPlayedGame applies one finished game to the user's snapshot: XP and
// aggregates, leveling, the daily entry and streak decision, then a full
// achievement unlock pass. The snapshot is persisted once at the end.
func (svc *ProgressService) RecordPlayedGame(userID string, req *dto.PlayedGameRequest) (*dto.RecordGameResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "invalid played game payload")
	}

	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if req.EventID != "" {
		seen, err := svc.progressRepo.IsEventProcessed(userID, req.EventID)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		if seen {
			return nil, shared.NewConflictError(nil, "event already processed")
		}
	}

	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := svc.clock.Now()
	game := model.PlayedGame{
		Type:             req.Type,
		Name:             req.Name,
		LevelName:        req.LevelName,
		StageName:        req.StageName,
		Score:            req.Score,
		MaxScore:         req.MaxScore,
		TimeSpentSeconds: req.TimeSpentSeconds,
		CorrectAnswers:   req.CorrectAnswers,
		TotalQuestions:   req.TotalQuestions,
		PlayedAt:         now,
	}

	prevLevel := snapshot.Level
	xp := engine.ApplyGame(snapshot, game)
	engine.ApplyDailyActivity(snapshot, now, xp, 1, req.TimeSpentSeconds)
	engine.ApplyLevelUp(snapshot, prevLevel, now)

	unlocked, err := svc.runUnlockPass(snapshot, now)
	if err != nil {
		return nil, err
	}

	// unlock XP bonuses may cross another level boundary
	engine.ApplyLevelUp(snapshot, snapshot.Level, now)
	if err := svc.progressRepo.SaveSnapshot(snapshot); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	// recorded only after the snapshot is durably saved, so a failed apply
	// never burns the event id for the client's retry
	if req.EventID != "" {
		if _, err := svc.progressRepo.MarkEventProcessed(userID, req.EventID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	svc.monitoringSvc.GameRecorded()
	if snapshot.Level > prevLevel {
		svc.monitoringSvc.LevelUp()
	}
	svc.monitoringSvc.AchievementsUnlocked(len(unlocked))

	log.WithFields(log.Fields{
		"user_id":   userID,
		"xp":        xp,
		"level":     snapshot.Level,
		"streak":    snapshot.Streak,
		"unlocked":  len(unlocked),
		"game_type": req.Type,
	}).Debug("played game recorded")

	return &dto.RecordGameResponse{
		XPEarned:             xp,
		NewLevel:             snapshot.Level,
		LeveledUp:            snapshot.Level > prevLevel,
		Streak:               snapshot.Streak,
		UnlockedAchievements: unlocked,
	}, nil
}

// RecordStageCompletion applies one finished lesson stage: best-score and
// attempt tracking, level and category completion percentages, and the XP
// reward on first completion, followed by the same daily-activity, leveling
// and unlock steps as a played game.
func (svc *ProgressService) RecordStageCompletion(userID string, req *dto.StageCompletionRequest) (*dto.StageCompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "invalid stage completion payload")
	}

	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := svc.clock.Now()
	result := engine.StageResult{
		LevelName:    req.LevelName,
		LevelType:    req.LevelType,
		StageName:    req.StageName,
		StageNumber:  req.StageNumber,
		CategoryName: req.CategoryName,
		CategoryType: req.CategoryType,
		TotalLessons: req.TotalLessons,
		Score:        req.Score,
		MaxScore:     req.MaxScore,
		XPReward:     req.XPReward,
	}

	prevLevel := snapshot.Level
	xp := engine.ApplyStageCompletion(snapshot, result, now)
	engine.ApplyDailyActivity(snapshot, now, xp, 0, req.TimeSpent)
	engine.ApplyLevelUp(snapshot, prevLevel, now)

	unlocked, err := svc.runUnlockPass(snapshot, now)
	if err != nil {
		return nil, err
	}

	engine.ApplyLevelUp(snapshot, snapshot.Level, now)
	if err := svc.progressRepo.SaveSnapshot(snapshot); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.monitoringSvc.StageCompleted()
	if snapshot.Level > prevLevel {
		svc.monitoringSvc.LevelUp()
	}
	svc.monitoringSvc.AchievementsUnlocked(len(unlocked))

	return &dto.StageCompletionResponse{
		XPEarned:             xp,
		NewLevel:             snapshot.Level,
		Streak:               snapshot.Streak,
		StageCompleted:       xp > 0,
		UnlockedAchievements: unlocked,
	}, nil
}

// CheckAchievements runs the unlock pass against the current snapshot
// without any preceding play event. Useful after catalog changes.
func (svc *ProgressService) CheckAchievements(userID string) (*dto.CheckAchievementsResponse, error) {
	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := svc.clock.Now()
	unlocked, err := svc.runUnlockPass(snapshot, now)
	if err != nil {
		return nil, err
	}

	if len(unlocked) > 0 {
		engine.ApplyLevelUp(snapshot, snapshot.Level, now)
		if err := svc.progressRepo.SaveSnapshot(snapshot); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		svc.monitoringSvc.AchievementsUnlocked(len(unlocked))
	}

	return &dto.CheckAchievementsResponse{Unlocked: unlocked}, nil
}

// ApplyChallengeRewards folds a claimed daily challenge's rewards into the
// snapshot. Called by the challenge service with the instance already in its
// terminal state.
func (svc *ProgressService) ApplyChallengeRewards(userID string, rewards model.ChallengeRewards) (*model.ProgressSnapshot, error) {
	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	now := svc.clock.Now()
	prevLevel := snapshot.Level
	engine.ApplyChallengeRewards(snapshot, rewards, now)
	engine.ApplyLevelUp(snapshot, prevLevel, now)

	unlocked, err := svc.runUnlockPass(snapshot, now)
	if err != nil {
		return nil, err
	}

	engine.ApplyLevelUp(snapshot, snapshot.Level, now)
	if err := svc.progressRepo.SaveSnapshot(snapshot); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.monitoringSvc.AchievementsUnlocked(len(unlocked))
	return snapshot, nil
}

// GetProgress returns the user's snapshot view, creating an empty snapshot
// on first read.
func (svc *ProgressService) GetProgress(userID string) (*dto.ProgressResponse, error) {
	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.ProgressResponse{
		UserID:        snapshot.UserID,
		TotalXP:       snapshot.TotalXP,
		Level:         snapshot.Level,
		XPToNextLevel: engine.XPToNextLevel(snapshot.TotalXP),
		Streak:        snapshot.Streak,
		Statistics:    snapshot.Statistics,
		Levels:        snapshot.Levels,
		Categories:    snapshot.Categories,
		Achievements:  snapshot.Achievements,
		DailyProgress: snapshot.DailyProgress,
		UpdatedAt:     snapshot.UpdatedAt,
	}, nil
}

// RecentGames returns the newest play events first, capped at limit.
func (svc *ProgressService) RecentGames(userID string, limit int) (*dto.RecentGamesResponse, error) {
	snapshot, err := svc.progressRepo.GetSnapshot(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RecentGamesResponse{Games: []model.PlayedGame{}}, nil
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	total := len(snapshot.GamesPlayed)
	games := make([]model.PlayedGame, 0, limit)
	for i := total - 1; i >= 0 && len(games) < limit; i-- {
		games = append(games, snapshot.GamesPlayed[i])
	}

	return &dto.RecentGamesResponse{Games: games, Total: total}, nil
}

// GetSnapshot exposes the raw snapshot to sibling services.
func (svc *ProgressService) GetSnapshot(userID string) (*model.ProgressSnapshot, error) {
	snapshot, err := svc.progressRepo.GetOrCreateSnapshot(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return snapshot, nil
}

func (svc *ProgressService) runUnlockPass(snapshot *model.ProgressSnapshot, now time.Time) ([]model.UnlockedAchievement, error) {
	catalog, err := svc.achievementSvc.GetActiveCatalog()
	if err != nil {
		return nil, err
	}
	return engine.RunUnlockPass(snapshot, catalog, now), nil
}

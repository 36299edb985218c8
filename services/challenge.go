package services

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/engine"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/services/repositories"
	"github.com/brainwave-labs/quest_api/shared"
)

// ChallengeService runs the daily challenge machinery: one shared challenge
// per calendar day picked from the template pool, and a per-user instance
// with its completed/claimed state machine.
type ChallengeService struct {
	context.DefaultService

	sqlSvc        *SqlService
	progressSvc   *ProgressService
	monitoringSvc *MonitoringService

	challengeRepo *repositories.ChallengeRepository

	clock engine.Clock
	locks sync.Map // userID -> *sync.Mutex
}

const CHALLENGE_SVC = "challenge_svc"

const challengeStreakLookback = 366

func (svc ChallengeService) Id() string {
	return CHALLENGE_SVC
}

func (svc *ChallengeService) Configure(ctx *context.Context) error {
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

func (svc *ChallengeService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.challengeRepo = repositories.NewChallengeRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ChallengeService) userLock(userID string) *sync.Mutex {
	mu, _ := svc.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// EnsureDailyChallenge provisions the shared challenge for the given day if
// it does not exist yet. Templates rotate deterministically by day, so every
// replica picks the same one.
func (svc *ChallengeService) EnsureDailyChallenge(day time.Time) (*model.DailyChallenge, error) {
	day = engine.Day(day)

	existing, err := svc.challengeRepo.GetChallengeForDay(day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	templates, err := svc.challengeRepo.GetActiveTemplates()
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if len(templates) == 0 {
		return nil, shared.NewNotFoundError(nil, "no active challenge templates")
	}

	epochDays := int(day.Unix() / 86400)
	tpl := templates[epochDays%len(templates)]

	challenge := &model.DailyChallenge{
		ID:            uuid.Must(uuid.NewV7()).String(),
		Date:          day,
		ChallengeType: tpl.ChallengeType,
		Title:         tpl.Title,
		Description:   tpl.Description,
		TargetValue:   tpl.TargetValue,
		Rewards: model.ChallengeRewards{
			XPBonus:     tpl.XPBonus,
			StreakBonus: tpl.StreakBonus,
		},
	}

	if err := svc.challengeRepo.CreateDailyChallenge(challenge); err != nil {
		// another replica may have won the unique-index race; re-read
		if existing, readErr := svc.challengeRepo.GetChallengeForDay(day); readErr == nil {
			return existing, nil
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"date":  day.Format("2006-01-02"),
		"type":  challenge.ChallengeType,
		"title": challenge.Title,
	}).Info("daily challenge provisioned")

	return challenge, nil
}

// GetTodayChallenge returns the user's instance for today, lazily creating
// both the shared challenge and the instance.
func (svc *ChallengeService) GetTodayChallenge(userID string) (*dto.ChallengeResponse, error) {
	now := svc.clock.Now()

	challenge, err := svc.EnsureDailyChallenge(now)
	if err != nil {
		return nil, err
	}

	instance, err := svc.challengeRepo.GetOrCreateInstance(userID, challenge)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return toChallengeResponse(instance, challenge), nil
}

// UpdateProgress writes an absolute progress value onto today's instance.
func (svc *ChallengeService) UpdateProgress(userID string, req *dto.UpdateChallengeProgressRequest) (*dto.ChallengeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "invalid challenge progress payload")
	}

	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := svc.clock.Now()

	challenge, err := svc.EnsureDailyChallenge(now)
	if err != nil {
		return nil, err
	}

	instance, err := svc.challengeRepo.GetOrCreateInstance(userID, challenge)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if instance.RewardsClaimed {
		return nil, shared.NewConflictError(nil, "challenge rewards already claimed")
	}

	completedNow := engine.UpdateChallengeProgress(instance, req.Progress, now)
	if req.Metadata != nil {
		instance.Metadata = req.Metadata
	}

	if err := svc.challengeRepo.SaveInstance(instance); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if completedNow {
		svc.monitoringSvc.ChallengeCompleted()
		log.WithFields(log.Fields{
			"user_id": userID,
			"date":    engine.Day(now).Format("2006-01-02"),
		}).Debug("daily challenge completed")
	}

	return toChallengeResponse(instance, challenge), nil
}

// ClaimRewards moves today's completed instance to rewards_claimed and
// applies the challenge rewards to the user's progress snapshot.
func (svc *ChallengeService) ClaimRewards(userID string) (*dto.ChallengeResponse, error) {
	mu := svc.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	now := svc.clock.Now()

	instance, err := svc.challengeRepo.GetInstance(userID, engine.Day(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "no challenge instance for today")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := engine.ClaimChallengeRewards(instance, now); err != nil {
		switch err {
		case engine.ErrChallengeNotCompleted:
			return nil, shared.NewBadRequestError(err, "challenge is not completed")
		case engine.ErrRewardsAlreadyClaimed:
			return nil, shared.NewConflictError(err, "rewards already claimed")
		default:
			return nil, shared.NewInternalError(err, "failed to claim rewards")
		}
	}

	challenge, err := svc.challengeRepo.GetChallengeByID(instance.ChallengeID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if _, err := svc.progressSvc.ApplyChallengeRewards(userID, challenge.Rewards); err != nil {
		return nil, err
	}

	// the claim is persisted last; a failure before this point leaves the
	// stored instance claimable on retry
	if err := svc.challengeRepo.SaveInstance(instance); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.monitoringSvc.RewardsClaimed()

	return toChallengeResponse(instance, challenge), nil
}

// GetChallengeStreak counts consecutive days with a completed challenge
// ending today.
func (svc *ChallengeService) GetChallengeStreak(userID string) (*dto.ChallengeStreakResponse, error) {
	streak, err := svc.challengeStreak(userID, svc.clock.Now(), challengeStreakLookback)
	if err != nil {
		return nil, err
	}
	return &dto.ChallengeStreakResponse{Streak: streak}, nil
}

// challengeStreak widens the completed-day window whenever the back-walk
// consumes all of it, so streaks longer than the initial lookback are still
// counted in full.
func (svc *ChallengeService) challengeStreak(userID string, now time.Time, limit int) (int, error) {
	for {
		days, err := svc.challengeRepo.GetCompletedDays(userID, limit)
		if err != nil {
			return 0, svc.sqlSvc.HandleError(err)
		}

		streak := engine.ChallengeStreak(days, now)
		if streak < limit || len(days) < limit {
			return streak, nil
		}
		limit *= 2
	}
}

// CreateTemplate adds an entry to the rotating challenge pool.
func (svc *ChallengeService) CreateTemplate(t *model.ChallengeTemplate) error {
	if t.ChallengeType == "" || t.Title == "" || t.TargetValue <= 0 {
		return shared.NewBadRequestError(nil, "template needs a type, title and positive target")
	}
	if err := svc.challengeRepo.CreateTemplate(t); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

func toChallengeResponse(instance *model.UserChallenge, challenge *model.DailyChallenge) *dto.ChallengeResponse {
	return &dto.ChallengeResponse{
		ID:               instance.ID,
		ChallengeID:      challenge.ID,
		Date:             challenge.Date,
		Title:            challenge.Title,
		Description:      challenge.Description,
		ChallengeType:    challenge.ChallengeType,
		TargetValue:      instance.TargetValue,
		CurrentProgress:  instance.CurrentProgress,
		Status:           instance.Status(),
		IsCompleted:      instance.IsCompleted,
		CompletedAt:      instance.CompletedAt,
		RewardsClaimed:   instance.RewardsClaimed,
		RewardsClaimedAt: instance.RewardsClaimedAt,
		XPBonus:          challenge.Rewards.XPBonus,
		StreakBonus:      challenge.Rewards.StreakBonus,
	}
}

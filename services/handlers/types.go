package handlers

import (
	"io"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/model"
)

// ProgressServiceInterface is the progress surface the handlers depend on.
type ProgressServiceInterface interface {
	RecordPlayedGame(userID string, req *dto.PlayedGameRequest) (*dto.RecordGameResponse, error)
	RecordStageCompletion(userID string, req *dto.StageCompletionRequest) (*dto.StageCompletionResponse, error)
	CheckAchievements(userID string) (*dto.CheckAchievementsResponse, error)
	GetProgress(userID string) (*dto.ProgressResponse, error)
	RecentGames(userID string, limit int) (*dto.RecentGamesResponse, error)
}

type ChallengeServiceInterface interface {
	GetTodayChallenge(userID string) (*dto.ChallengeResponse, error)
	UpdateProgress(userID string, req *dto.UpdateChallengeProgressRequest) (*dto.ChallengeResponse, error)
	ClaimRewards(userID string) (*dto.ChallengeResponse, error)
	GetChallengeStreak(userID string) (*dto.ChallengeStreakResponse, error)
	CreateTemplate(t *model.ChallengeTemplate) error
}

type AchievementServiceInterface interface {
	CreateAchievement(req *dto.CreateAchievementRequest) (*dto.AchievementResponse, error)
	UpdateAchievement(achievementID string, req *dto.CreateAchievementRequest) (*dto.AchievementResponse, error)
	ListAchievements(userID string) (*dto.AchievementCollectionResponse, error)
}

type BadgeServiceInterface interface {
	UploadBadge(achievementID, filename, contentType string, reader io.Reader, size int64) (*dto.BadgeUploadResponse, error)
}

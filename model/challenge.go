// model/challenge.go
package model

import (
	"time"

	"github.com/brainwave-labs/quest_api/shared"
)

// ChallengeTemplate is one entry of the rotating daily challenge pool.
type ChallengeTemplate struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ChallengeType string    `json:"challenge_type" gorm:"not null"` // games_played, correct_answers, xp_earned, play_time
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description"`
	TargetValue   int       `json:"target_value" gorm:"not null"`
	XPBonus       int       `json:"xp_bonus" gorm:"default:0"`
	StreakBonus   int       `json:"streak_bonus" gorm:"default:0"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DailyChallenge is the challenge scheduled for one calendar day, shared by
// all users. Date carries the day with time-of-day zeroed.
type DailyChallenge struct {
	ID            string           `json:"id" gorm:"primaryKey"`
	Date          time.Time        `json:"date" gorm:"uniqueIndex;not null"`
	ChallengeType string           `json:"challenge_type" gorm:"not null"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	TargetValue   int              `json:"target_value" gorm:"not null"`
	Rewards       ChallengeRewards `json:"rewards" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time        `json:"created_at"`
}

type ChallengeRewards struct {
	XPBonus     int `json:"xp_bonus"`
	StreakBonus int `json:"streak_bonus"`
}

// UserChallenge is the per-user per-day challenge instance with its own
// completed/claimed state machine. Unique key is (user id, challenge date).
type UserChallenge struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"uniqueIndex:idx_user_challenge_day;not null"`
	ChallengeID   string    `json:"challenge_id" gorm:"not null"`
	ChallengeDate time.Time `json:"challenge_date" gorm:"uniqueIndex:idx_user_challenge_day;not null"`

	TargetValue      int                    `json:"target_value"`
	CurrentProgress  int                    `json:"current_progress" gorm:"default:0"`
	IsCompleted      bool                   `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time             `json:"completed_at,omitempty"`
	RewardsClaimed   bool                   `json:"rewards_claimed" gorm:"default:false"`
	RewardsClaimedAt *time.Time             `json:"rewards_claimed_at,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json;type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status reports the instance's position in the
// not_started -> in_progress -> completed -> rewards_claimed machine.
func (uc *UserChallenge) Status() string {
	switch {
	case uc.RewardsClaimed:
		return shared.ChallengeRewardsClaimed
	case uc.IsCompleted:
		return shared.ChallengeCompleted
	case uc.CurrentProgress > 0:
		return shared.ChallengeInProgress
	default:
		return shared.ChallengeNotStarted
	}
}

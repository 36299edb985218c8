// dto/challenge.go
package dto

import "time"

type UpdateChallengeProgressRequest struct {
	Progress int                    `json:"progress" validate:"gte=0"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (r UpdateChallengeProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ChallengeResponse struct {
	ID               string     `json:"id"`
	ChallengeID      string     `json:"challenge_id"`
	Date             time.Time  `json:"date"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ChallengeType    string     `json:"challenge_type"`
	TargetValue      int        `json:"target_value"`
	CurrentProgress  int        `json:"current_progress"`
	Status           string     `json:"status"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	RewardsClaimed   bool       `json:"rewards_claimed"`
	RewardsClaimedAt *time.Time `json:"rewards_claimed_at,omitempty"`
	XPBonus          int        `json:"xp_bonus"`
	StreakBonus      int        `json:"streak_bonus"`
}

type ChallengeStreakResponse struct {
	Streak int `json:"streak"`
}

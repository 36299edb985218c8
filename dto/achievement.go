// dto/achievement.go
package dto

import "time"

type CriteriaRequest struct {
	Type     string `json:"type" validate:"required"`
	Value    int    `json:"value" validate:"gte=0"`
	Operator string `json:"operator" validate:"required,oneof=>= > = < <="`
}

type CreateAchievementRequest struct {
	AchievementID string          `json:"achievement_id" validate:"required,min=2,max=64"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Category      string          `json:"category" validate:"required,oneof=learning streak collection special"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	Rarity        string          `json:"rarity"`
	Criteria      CriteriaRequest `json:"criteria" validate:"required"`
	Points        int             `json:"points" validate:"gte=0"`
	Prerequisites []string        `json:"prerequisites"`
	XPBonus       int             `json:"xp_bonus" validate:"gte=0"`
	SortOrder     int             `json:"sort_order"`
	IsActive      *bool           `json:"is_active"`
}

func (r CreateAchievementRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AchievementResponse struct {
	AchievementID string          `json:"achievement_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Icon          string          `json:"icon,omitempty"`
	Color         string          `json:"color,omitempty"`
	Rarity        string          `json:"rarity,omitempty"`
	BadgeURL      string          `json:"badge_url,omitempty"`
	Criteria      CriteriaRequest `json:"criteria"`
	Points        int             `json:"points"`
	Prerequisites []string        `json:"prerequisites,omitempty"`
	XPBonus       int             `json:"xp_bonus"`
	IsActive      bool            `json:"is_active"`
	UnlockedAt    *time.Time      `json:"unlocked_at,omitempty"`
}

type AchievementCollectionResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
	Total        int                   `json:"total"`
	Unlocked     int                   `json:"unlocked"`
}

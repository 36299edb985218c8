// model/achievement.go
package model

import "time"

// Achievement is one catalog entry. The catalog is shared across users; the
// unlock pass receives it as an immutable input.
type Achievement struct {
	ID            string `json:"id" gorm:"primaryKey"`
	AchievementID string `json:"achievement_id" gorm:"uniqueIndex;not null"`
	Name          string `json:"name" gorm:"not null"`
	Description   string `json:"description"`
	Category      string `json:"category"` // learning, streak, collection, special
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	Rarity        string `json:"rarity"`
	BadgeURL      string `json:"badge_url"`

	Criteria      AchievementCriteria `json:"criteria" gorm:"serializer:json;type:text"`
	Points        int                 `json:"points" gorm:"default:0"`
	Prerequisites []string            `json:"prerequisites" gorm:"serializer:json;type:text"`
	Rewards       AchievementRewards  `json:"rewards" gorm:"serializer:json;type:text"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AchievementCriteria is the (type, operator, threshold) triple deciding
// whether an achievement unlocks against a snapshot.
type AchievementCriteria struct {
	Type     string `json:"type"`
	Value    int    `json:"value"`
	Operator string `json:"operator"` // >=, >, =, <, <=
}

type AchievementRewards struct {
	XPBonus int `json:"xp_bonus"`
}

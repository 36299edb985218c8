// model/progress.go
package model

import (
	"time"
)

// ProgressSnapshot is the single per-user progress document. Every counter,
// list and statistic the rule engine reads or writes lives here; the list
// columns are stored as JSON text the same way the progress tables keep
// their embedded collections.
type ProgressSnapshot struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null"`

	TotalXP int `json:"total_xp" gorm:"default:0"`
	Level   int `json:"level" gorm:"default:1"`
	Streak  int `json:"streak" gorm:"default:0"`

	Statistics    Statistics            `json:"statistics" gorm:"serializer:json;type:text"`
	Levels        []LevelProgress       `json:"levels" gorm:"serializer:json;type:text"`
	Categories    []CategoryProgress    `json:"categories" gorm:"serializer:json;type:text"`
	Achievements  []UnlockedAchievement `json:"achievements" gorm:"serializer:json;type:text"`
	GamesPlayed   []PlayedGame          `json:"games_played" gorm:"serializer:json;type:text"`
	DailyProgress []DailyEntry          `json:"daily_progress" gorm:"serializer:json;type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Statistics are the rolling aggregates recomputed on every play event.
type Statistics struct {
	TotalPlayTimeSeconds   int `json:"total_play_time_seconds"`
	TotalGamesPlayed       int `json:"total_games_played"`
	AverageScore           int `json:"average_score"`
	BestStreak             int `json:"best_streak"`
	PerfectScores          int `json:"perfect_scores"`
	TotalCorrectAnswers    int `json:"total_correct_answers"`
	TotalQuestionsAnswered int `json:"total_questions_answered"`
}

type StageProgress struct {
	Name        string     `json:"name"`
	Number      int        `json:"number"`
	IsCompleted bool       `json:"is_completed"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"max_score"`
	Attempts    int        `json:"attempts"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type LevelProgress struct {
	Name                 string          `json:"name"`
	Type                 string          `json:"type"`
	IsCompleted          bool            `json:"is_completed"`
	CompletionPercentage int             `json:"completion_percentage"`
	Stages               []StageProgress `json:"stages"`
}

type CategoryProgress struct {
	Name                 string     `json:"name"`
	Type                 string     `json:"type"`
	IsCompleted          bool       `json:"is_completed"`
	CompletionPercentage int        `json:"completion_percentage"`
	TotalLessons         int        `json:"total_lessons"`
	CompletedLessons     int        `json:"completed_lessons"`
	LastPlayed           *time.Time `json:"last_played,omitempty"`
}

// UnlockedAchievement is one entry of the snapshot's append-only achievement
// list. An achievement id appears at most once.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Icon          string    `json:"icon,omitempty"`
	Color         string    `json:"color,omitempty"`
	Rarity        string    `json:"rarity,omitempty"`
	Points        int       `json:"points"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// PlayedGame is one raw play event appended to the snapshot's history.
type PlayedGame struct {
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	LevelName        string    `json:"level_name"`
	StageName        string    `json:"stage_name"`
	Score            int       `json:"score"`
	MaxScore         int       `json:"max_score"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	CorrectAnswers   int       `json:"correct_answers"`
	TotalQuestions   int       `json:"total_questions"`
	PlayedAt         time.Time `json:"played_at"`
}

// DailyEntry is the per-calendar-day activity marker. Date carries the day
// with time-of-day zeroed; at most one entry exists per day.
type DailyEntry struct {
	Date                time.Time `json:"date"`
	XPEarned            int       `json:"xp_earned"`
	GamesPlayed         int       `json:"games_played"`
	TimeSpentSeconds    int       `json:"time_spent_seconds"`
	ChallengesCompleted int       `json:"challenges_completed"`
	StreakMaintained    bool      `json:"streak_maintained"`
}

// HasAchievement reports whether the snapshot already holds the given
// achievement id.
func (s *ProgressSnapshot) HasAchievement(achievementID string) bool {
	for _, a := range s.Achievements {
		if a.AchievementID == achievementID {
			return true
		}
	}
	return false
}

// ProcessedEvent records a client-supplied play event id so the same event
// is never applied to a snapshot twice.
type ProcessedEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_user_event;not null"`
	EventID   string    `json:"event_id" gorm:"uniqueIndex:idx_user_event;not null"`
	CreatedAt time.Time `json:"created_at"`
}

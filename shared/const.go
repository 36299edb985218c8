package shared

const (
	UserID = "user_id"

	// Criterion types an achievement definition may reference.
	CriteriaTotalXP             = "total_xp"
	CriteriaLevelReached        = "level_reached"
	CriteriaStreakDays          = "streak_days"
	CriteriaGamesPlayed         = "games_played"
	CriteriaPerfectScores       = "perfect_scores"
	CriteriaTotalPlayTime       = "total_play_time"
	CriteriaCorrectAnswers      = "correct_answers"
	CriteriaCategoriesCompleted = "categories_completed"
	CriteriaConsecutiveWins     = "consecutive_wins"
	CriteriaFirstGame           = "first_game"
	CriteriaDailyPlayer         = "daily_player"
	CriteriaSpeedDemon          = "speed_demon"
	CriteriaPerfectionist       = "perfectionist"

	// Criterion comparison operators.
	OperatorGTE = ">="
	OperatorGT  = ">"
	OperatorEQ  = "="
	OperatorLT  = "<"
	OperatorLTE = "<="

	// Daily challenge instance states.
	ChallengeNotStarted     = "not_started"
	ChallengeInProgress     = "in_progress"
	ChallengeCompleted      = "completed"
	ChallengeRewardsClaimed = "rewards_claimed"

	AchievementCategoryLearning   = "learning"
	AchievementCategoryStreak     = "streak"
	AchievementCategoryCollection = "collection"
	AchievementCategorySpecial    = "special"
)

// CriteriaTypes lists every criterion type the evaluator understands.
var CriteriaTypes = []string{
	CriteriaTotalXP,
	CriteriaLevelReached,
	CriteriaStreakDays,
	CriteriaGamesPlayed,
	CriteriaPerfectScores,
	CriteriaTotalPlayTime,
	CriteriaCorrectAnswers,
	CriteriaCategoriesCompleted,
	CriteriaConsecutiveWins,
	CriteriaFirstGame,
	CriteriaDailyPlayer,
	CriteriaSpeedDemon,
	CriteriaPerfectionist,
}

// Operators lists every comparison operator the evaluator understands.
var Operators = []string{OperatorGTE, OperatorGT, OperatorEQ, OperatorLT, OperatorLTE}

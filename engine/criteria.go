package engine

import (
	"time"

	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

const (
	consecutiveWinsWindow = 5
	perfectionistWindow   = 10
	speedDemonSeconds     = 120
)

// EvaluateCriterion decides whether a criterion holds against the snapshot.
// It never fails: unknown criterion types and unknown operators evaluate to
// false, so a malformed catalog entry can only fail to unlock, never unlock
// by accident.
func EvaluateCriterion(c model.AchievementCriteria, s *model.ProgressSnapshot, now time.Time) bool {
	switch c.Type {
	case shared.CriteriaTotalXP:
		return compare(s.TotalXP, c.Operator, c.Value)
	case shared.CriteriaLevelReached:
		return compare(s.Level, c.Operator, c.Value)
	case shared.CriteriaStreakDays:
		return compare(s.Streak, c.Operator, c.Value)
	case shared.CriteriaGamesPlayed:
		return compare(s.Statistics.TotalGamesPlayed, c.Operator, c.Value)
	case shared.CriteriaPerfectScores:
		return compare(s.Statistics.PerfectScores, c.Operator, c.Value)
	case shared.CriteriaTotalPlayTime:
		return compare(s.Statistics.TotalPlayTimeSeconds, c.Operator, c.Value)
	case shared.CriteriaCorrectAnswers:
		return compare(s.Statistics.TotalCorrectAnswers, c.Operator, c.Value)
	case shared.CriteriaCategoriesCompleted:
		return compare(completedCategories(s), c.Operator, c.Value)
	case shared.CriteriaConsecutiveWins:
		return compare(perfectsInLast(s, consecutiveWinsWindow), c.Operator, c.Value)
	case shared.CriteriaFirstGame:
		// Ignores operator and threshold.
		return s.Statistics.TotalGamesPlayed >= 1
	case shared.CriteriaDailyPlayer:
		return playedTodayAndYesterday(s, now)
	case shared.CriteriaSpeedDemon:
		return compare(fastGames(s), c.Operator, c.Value)
	case shared.CriteriaPerfectionist:
		return compare(perfectsInLast(s, perfectionistWindow), c.Operator, c.Value)
	default:
		return false
	}
}

func compare(actual int, operator string, threshold int) bool {
	switch operator {
	case shared.OperatorGTE:
		return actual >= threshold
	case shared.OperatorGT:
		return actual > threshold
	case shared.OperatorEQ:
		return actual == threshold
	case shared.OperatorLT:
		return actual < threshold
	case shared.OperatorLTE:
		return actual <= threshold
	default:
		return false
	}
}

func completedCategories(s *model.ProgressSnapshot) int {
	n := 0
	for _, c := range s.Categories {
		if c.IsCompleted {
			n++
		}
	}
	return n
}

// perfectsInLast counts perfect scores among the last n entries of the game
// history.
func perfectsInLast(s *model.ProgressSnapshot, n int) int {
	games := s.GamesPlayed
	if len(games) > n {
		games = games[len(games)-n:]
	}
	count := 0
	for _, g := range games {
		if isPerfect(g) {
			count++
		}
	}
	return count
}

func fastGames(s *model.ProgressSnapshot) int {
	count := 0
	for _, g := range s.GamesPlayed {
		if g.TimeSpentSeconds < speedDemonSeconds {
			count++
		}
	}
	return count
}

func playedTodayAndYesterday(s *model.ProgressSnapshot, now time.Time) bool {
	today := DailyEntryIndex(s, now)
	yesterday := DailyEntryIndex(s, Day(now).AddDate(0, 0, -1))
	return today >= 0 && s.DailyProgress[today].GamesPlayed > 0 &&
		yesterday >= 0 && s.DailyProgress[yesterday].GamesPlayed > 0
}

package engine

import (
	"math"

	"github.com/brainwave-labs/quest_api/model"
)

const (
	xpPerCorrectAnswer = 10
	perfectScoreBonus  = 50
)

// GameXP returns the XP a single play event is worth.
func GameXP(g model.PlayedGame) int {
	xp := g.CorrectAnswers * xpPerCorrectAnswer
	if isPerfect(g) {
		xp += perfectScoreBonus
	}
	return xp
}

// ApplyGame folds one play event into the snapshot: appends it to the game
// history, advances the rolling statistics and adds the earned XP to the
// total. Returns the XP earned by this event. The caller decides what
// happens to level, streak and achievements afterwards.
func ApplyGame(s *model.ProgressSnapshot, g model.PlayedGame) int {
	s.GamesPlayed = append(s.GamesPlayed, g)

	s.Statistics.TotalGamesPlayed++
	s.Statistics.TotalPlayTimeSeconds += g.TimeSpentSeconds
	s.Statistics.TotalCorrectAnswers += g.CorrectAnswers
	s.Statistics.TotalQuestionsAnswered += g.TotalQuestions
	if isPerfect(g) {
		s.Statistics.PerfectScores++
	}
	s.Statistics.AverageScore = averageScore(s.GamesPlayed)

	xp := GameXP(g)
	s.TotalXP += xp
	return xp
}

func isPerfect(g model.PlayedGame) bool {
	return g.Score == g.MaxScore
}

// averageScore recomputes the mean score over the full game history, rounded
// to the nearest integer. Kept as a full recomputation to preserve the exact
// rounding of the original update path.
func averageScore(games []model.PlayedGame) int {
	if len(games) == 0 {
		return 0
	}
	sum := 0
	for _, g := range games {
		sum += g.Score
	}
	return int(math.Round(float64(sum) / float64(len(games))))
}

package engine

import (
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

func playedGame(score, maxScore, correct, total, seconds int) model.PlayedGame {
	return model.PlayedGame{
		Type:             "quiz",
		Name:             "Word Match",
		Score:            score,
		MaxScore:         maxScore,
		TimeSpentSeconds: seconds,
		CorrectAnswers:   correct,
		TotalQuestions:   total,
		PlayedAt:         time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}
}

func TestGameXP(t *testing.T) {
	tests := []struct {
		name string
		game model.PlayedGame
		want int
	}{
		{"plain", playedGame(70, 100, 7, 10, 300), 70},
		{"perfect with bonus", playedGame(100, 100, 6, 6, 300), 110},
		{"zero correct", playedGame(10, 100, 0, 10, 300), 0},
	}

	for _, tt := range tests {
		if got := GameXP(tt.game); got != tt.want {
			t.Errorf("%s: GameXP = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestApplyGameAggregates(t *testing.T) {
	s := &model.ProgressSnapshot{TotalXP: 950, Level: 1}

	// Scenario: 950 XP, perfect game with 6 correct answers -> +110 XP.
	xp := ApplyGame(s, playedGame(100, 100, 6, 6, 240))
	if xp != 110 {
		t.Fatalf("xp earned = %d, want 110", xp)
	}
	if s.TotalXP != 1060 {
		t.Errorf("total xp = %d, want 1060", s.TotalXP)
	}
	if s.Statistics.TotalGamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", s.Statistics.TotalGamesPlayed)
	}
	if s.Statistics.PerfectScores != 1 {
		t.Errorf("perfect scores = %d, want 1", s.Statistics.PerfectScores)
	}
	if s.Statistics.TotalCorrectAnswers != 6 || s.Statistics.TotalQuestionsAnswered != 6 {
		t.Errorf("answers = %d/%d, want 6/6",
			s.Statistics.TotalCorrectAnswers, s.Statistics.TotalQuestionsAnswered)
	}
	if s.Statistics.TotalPlayTimeSeconds != 240 {
		t.Errorf("play time = %d, want 240", s.Statistics.TotalPlayTimeSeconds)
	}
	if len(s.GamesPlayed) != 1 {
		t.Errorf("history = %d entries, want 1", len(s.GamesPlayed))
	}
}

func TestApplyGameAverageScore(t *testing.T) {
	s := &model.ProgressSnapshot{}

	ApplyGame(s, playedGame(80, 100, 8, 10, 60))
	ApplyGame(s, playedGame(71, 100, 7, 10, 60))

	// mean(80, 71) = 75.5 rounds to 76.
	if s.Statistics.AverageScore != 76 {
		t.Errorf("average = %d, want 76", s.Statistics.AverageScore)
	}

	ApplyGame(s, playedGame(50, 100, 5, 10, 60))
	// mean(80, 71, 50) = 67.0
	if s.Statistics.AverageScore != 67 {
		t.Errorf("average = %d, want 67", s.Statistics.AverageScore)
	}
}

func TestApplyGameImperfectScore(t *testing.T) {
	s := &model.ProgressSnapshot{}
	ApplyGame(s, playedGame(90, 100, 9, 10, 60))

	if s.Statistics.PerfectScores != 0 {
		t.Errorf("perfect scores = %d, want 0", s.Statistics.PerfectScores)
	}
}

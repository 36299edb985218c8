package engine

import (
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

var monday = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestApplyDailyActivityFirstDay(t *testing.T) {
	s := &model.ProgressSnapshot{}

	ApplyDailyActivity(s, monday, 110, 1, 240)

	if s.Streak != 1 {
		t.Errorf("streak = %d, want 1", s.Streak)
	}
	if len(s.DailyProgress) != 1 {
		t.Fatalf("daily entries = %d, want 1", len(s.DailyProgress))
	}
	entry := s.DailyProgress[0]
	if !entry.Date.Equal(Day(monday)) {
		t.Errorf("entry date = %v, want %v", entry.Date, Day(monday))
	}
	if entry.XPEarned != 110 || entry.GamesPlayed != 1 || entry.TimeSpentSeconds != 240 {
		t.Errorf("entry deltas = %+v", entry)
	}
	if !entry.StreakMaintained {
		t.Error("streak_maintained not set")
	}
}

func TestApplyDailyActivityStreakLaw(t *testing.T) {
	tests := []struct {
		name       string
		yesterday  *model.DailyEntry
		streak     int
		wantStreak int
	}{
		{
			name:       "no yesterday entry resets to 1",
			yesterday:  nil,
			streak:     6,
			wantStreak: 1,
		},
		{
			name: "yesterday maintained increments",
			yesterday: &model.DailyEntry{
				Date: Day(monday).AddDate(0, 0, -1), StreakMaintained: true, GamesPlayed: 2,
			},
			streak:     6,
			wantStreak: 7,
		},
		{
			name: "yesterday not maintained resets to 1",
			yesterday: &model.DailyEntry{
				Date: Day(monday).AddDate(0, 0, -1), StreakMaintained: false,
			},
			streak:     6,
			wantStreak: 1,
		},
	}

	for _, tt := range tests {
		s := &model.ProgressSnapshot{Streak: tt.streak}
		if tt.yesterday != nil {
			s.DailyProgress = append(s.DailyProgress, *tt.yesterday)
		}

		ApplyDailyActivity(s, monday, 50, 1, 60)
		if s.Streak != tt.wantStreak {
			t.Errorf("%s: streak = %d, want %d", tt.name, s.Streak, tt.wantStreak)
		}
	}
}

func TestApplyDailyActivityTwiceSameDay(t *testing.T) {
	s := &model.ProgressSnapshot{
		Streak: 3,
		DailyProgress: []model.DailyEntry{
			{Date: Day(monday).AddDate(0, 0, -1), StreakMaintained: true, GamesPlayed: 1},
		},
	}

	ApplyDailyActivity(s, monday, 50, 1, 60)
	ApplyDailyActivity(s, monday.Add(4*time.Hour), 30, 1, 90)

	if s.Streak != 4 {
		t.Errorf("streak = %d, want 4 (no double increment)", s.Streak)
	}
	if len(s.DailyProgress) != 2 {
		t.Fatalf("daily entries = %d, want 2", len(s.DailyProgress))
	}

	today := s.DailyProgress[DailyEntryIndex(s, monday)]
	if today.XPEarned != 80 || today.GamesPlayed != 2 || today.TimeSpentSeconds != 150 {
		t.Errorf("today's deltas not accumulated: %+v", today)
	}
}

func TestApplyDailyActivityBestStreak(t *testing.T) {
	s := &model.ProgressSnapshot{
		Streak: 5,
		DailyProgress: []model.DailyEntry{
			{Date: Day(monday).AddDate(0, 0, -1), StreakMaintained: true},
		},
	}
	s.Statistics.BestStreak = 5

	ApplyDailyActivity(s, monday, 10, 1, 30)
	if s.Statistics.BestStreak != 6 {
		t.Errorf("best streak = %d, want 6", s.Statistics.BestStreak)
	}

	// Best streak is a high-water mark; a reset never lowers it.
	s2 := &model.ProgressSnapshot{Streak: 6}
	s2.Statistics.BestStreak = 9
	ApplyDailyActivity(s2, monday, 10, 1, 30)
	if s2.Streak != 1 {
		t.Errorf("streak = %d, want 1", s2.Streak)
	}
	if s2.Statistics.BestStreak != 9 {
		t.Errorf("best streak = %d, want 9", s2.Statistics.BestStreak)
	}
}

func TestAddChallengeCompletion(t *testing.T) {
	s := &model.ProgressSnapshot{}

	AddChallengeCompletion(s, monday, 100)

	idx := DailyEntryIndex(s, monday)
	if idx < 0 {
		t.Fatal("no daily entry created")
	}
	if s.DailyProgress[idx].ChallengesCompleted != 1 {
		t.Errorf("challenges completed = %d, want 1", s.DailyProgress[idx].ChallengesCompleted)
	}
	if s.DailyProgress[idx].XPEarned != 100 {
		t.Errorf("xp earned = %d, want 100", s.DailyProgress[idx].XPEarned)
	}
}

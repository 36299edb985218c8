package engine

import (
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1060, 2},
		{1999, 2},
		{2000, 3},
		{10500, 11},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := LevelOf(tt.totalXP); got != tt.want {
			t.Errorf("LevelOf(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1000},
		{950, 50},
		{1000, 1000},
		{1060, 940},
	}

	for _, tt := range tests {
		if got := XPToNextLevel(tt.totalXP); got != tt.want {
			t.Errorf("XPToNextLevel(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}

func TestApplyLevelUp(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	s := &model.ProgressSnapshot{TotalXP: 1060, Level: 1}
	unlocked := ApplyLevelUp(s, 1, now)

	if s.Level != 2 {
		t.Fatalf("level = %d, want 2", s.Level)
	}
	if unlocked == nil {
		t.Fatal("expected a level-up achievement")
	}
	if unlocked.AchievementID != "level_2" {
		t.Errorf("achievement id = %q, want level_2", unlocked.AchievementID)
	}
	if unlocked.Points != 200 {
		t.Errorf("points = %d, want 200", unlocked.Points)
	}
	if !s.HasAchievement("level_2") {
		t.Error("level_2 not appended to snapshot")
	}
}

func TestApplyLevelUpNoChange(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	s := &model.ProgressSnapshot{TotalXP: 500, Level: 1}
	if unlocked := ApplyLevelUp(s, 1, now); unlocked != nil {
		t.Errorf("unexpected level-up achievement %q", unlocked.AchievementID)
	}
	if s.Level != 1 {
		t.Errorf("level = %d, want 1", s.Level)
	}
}

func TestApplyLevelUpNeverDuplicates(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	s := &model.ProgressSnapshot{
		TotalXP: 1200,
		Level:   1,
		Achievements: []model.UnlockedAchievement{
			{AchievementID: "level_2", Points: 200, UnlockedAt: now},
		},
	}

	if unlocked := ApplyLevelUp(s, 1, now); unlocked != nil {
		t.Errorf("duplicate level_2 appended")
	}
	if len(s.Achievements) != 1 {
		t.Errorf("achievements = %d entries, want 1", len(s.Achievements))
	}
}

package engine

import (
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

var unlockNow = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

func achievementDef(id string, crit model.AchievementCriteria, prereqs ...string) model.Achievement {
	return model.Achievement{
		AchievementID: id,
		Name:          id,
		Criteria:      crit,
		Points:        10,
		Prerequisites: prereqs,
		IsActive:      true,
	}
}

func TestRunUnlockPassIdempotent(t *testing.T) {
	catalog := []model.Achievement{
		achievementDef("games_10", criterion(shared.CriteriaGamesPlayed, ">=", 10)),
		achievementDef("xp_1000", criterion(shared.CriteriaTotalXP, ">=", 1000)),
	}
	catalog[1].Rewards.XPBonus = 50

	s := &model.ProgressSnapshot{TotalXP: 1500, Level: 2}
	s.Statistics.TotalGamesPlayed = 12

	first := RunUnlockPass(s, catalog, unlockNow)
	if len(first) != 2 {
		t.Fatalf("first pass unlocked %d, want 2", len(first))
	}
	xpAfterFirst := s.TotalXP
	if xpAfterFirst != 1550 {
		t.Errorf("xp after first pass = %d, want 1550", xpAfterFirst)
	}

	second := RunUnlockPass(s, catalog, unlockNow)
	if len(second) != 0 {
		t.Errorf("second pass unlocked %d, want 0", len(second))
	}
	if s.TotalXP != xpAfterFirst {
		t.Errorf("second pass changed xp: %d -> %d", xpAfterFirst, s.TotalXP)
	}
	if len(s.Achievements) != 2 {
		t.Errorf("achievements = %d entries, want 2", len(s.Achievements))
	}
}

func TestRunUnlockPassStreakScenario(t *testing.T) {
	catalog := []model.Achievement{
		achievementDef("streak_7", criterion(shared.CriteriaStreakDays, ">=", 7)),
	}

	s := &model.ProgressSnapshot{Streak: 6}
	if got := RunUnlockPass(s, catalog, unlockNow); len(got) != 0 {
		t.Fatalf("unlocked %d at streak 6, want 0", len(got))
	}

	s.Streak = 7
	got := RunUnlockPass(s, catalog, unlockNow)
	if len(got) != 1 || got[0].AchievementID != "streak_7" {
		t.Fatalf("streak_7 not unlocked at streak 7: %+v", got)
	}

	if again := RunUnlockPass(s, catalog, unlockNow); len(again) != 0 {
		t.Errorf("streak_7 unlocked twice")
	}
}

func TestRunUnlockPassPrerequisiteOrder(t *testing.T) {
	critA := criterion(shared.CriteriaGamesPlayed, ">=", 1)
	critB := criterion(shared.CriteriaGamesPlayed, ">=", 1)

	// A precedes B: both unlock in one pass, B sees A appended mid-sweep.
	snapshot := func() *model.ProgressSnapshot {
		s := &model.ProgressSnapshot{}
		s.Statistics.TotalGamesPlayed = 3
		return s
	}

	s := snapshot()
	forward := []model.Achievement{
		achievementDef("a", critA),
		achievementDef("b", critB, "a"),
	}
	if got := RunUnlockPass(s, forward, unlockNow); len(got) != 2 {
		t.Fatalf("forward order unlocked %d, want 2", len(got))
	}

	// B precedes A: B's prerequisite is not yet in the list, so only A
	// unlocks this pass; B unlocks on the next one.
	s = snapshot()
	reversed := []model.Achievement{
		achievementDef("b", critB, "a"),
		achievementDef("a", critA),
	}
	got := RunUnlockPass(s, reversed, unlockNow)
	if len(got) != 1 || got[0].AchievementID != "a" {
		t.Fatalf("reversed order first pass = %+v, want only a", got)
	}
	got = RunUnlockPass(s, reversed, unlockNow)
	if len(got) != 1 || got[0].AchievementID != "b" {
		t.Fatalf("reversed order second pass = %+v, want only b", got)
	}
}

func TestRunUnlockPassMissingPrerequisiteFailsClosed(t *testing.T) {
	catalog := []model.Achievement{
		achievementDef("orphan", criterion(shared.CriteriaGamesPlayed, ">=", 1), "no_such_id"),
	}

	s := &model.ProgressSnapshot{}
	s.Statistics.TotalGamesPlayed = 5

	if got := RunUnlockPass(s, catalog, unlockNow); len(got) != 0 {
		t.Errorf("achievement with dangling prerequisite unlocked: %+v", got)
	}
}

func TestRunUnlockPassSkipsInactive(t *testing.T) {
	def := achievementDef("retired", criterion(shared.CriteriaGamesPlayed, ">=", 1))
	def.IsActive = false

	s := &model.ProgressSnapshot{}
	s.Statistics.TotalGamesPlayed = 5

	if got := RunUnlockPass(s, []model.Achievement{def}, unlockNow); len(got) != 0 {
		t.Errorf("inactive achievement unlocked: %+v", got)
	}
}

func TestRunUnlockPassCopiesDefinitionFields(t *testing.T) {
	def := achievementDef("decorated", criterion(shared.CriteriaFirstGame, "", 0))
	def.Description = "Play your first game"
	def.Category = shared.AchievementCategoryLearning
	def.Icon = "star"
	def.Color = "#ffd700"
	def.Rarity = "common"
	def.Points = 25

	s := &model.ProgressSnapshot{}
	s.Statistics.TotalGamesPlayed = 1

	got := RunUnlockPass(s, []model.Achievement{def}, unlockNow)
	if len(got) != 1 {
		t.Fatalf("unlocked %d, want 1", len(got))
	}
	u := got[0]
	if u.Description != def.Description || u.Category != def.Category ||
		u.Icon != def.Icon || u.Color != def.Color || u.Rarity != def.Rarity ||
		u.Points != def.Points {
		t.Errorf("definition fields not copied: %+v", u)
	}
	if !u.UnlockedAt.Equal(unlockNow) {
		t.Errorf("unlockedAt = %v, want %v", u.UnlockedAt, unlockNow)
	}
}

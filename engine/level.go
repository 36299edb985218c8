package engine

import (
	"fmt"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

const (
	xpPerLevel         = 1000
	levelUpPointsScale = 100
)

// LevelOf maps cumulative XP to a level number. Total and monotonic
// non-decreasing in totalXP.
func LevelOf(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/xpPerLevel + 1
}

// XPToNextLevel returns how much XP is missing until the next level.
func XPToNextLevel(totalXP int) int {
	return LevelOf(totalXP)*xpPerLevel - totalXP
}

// LevelUpAchievementID names the synthesized achievement appended when a
// user reaches the given level.
func LevelUpAchievementID(level int) string {
	return fmt.Sprintf("level_%d", level)
}

// ApplyLevelUp recomputes the snapshot's level from its XP and, when the
// level increased past prevLevel, appends the synthesized level_<N>
// achievement worth N*100 points. The append respects the no-duplicate-id
// invariant, so replaying a level boundary never duplicates the record.
// Returns the newly appended achievement, or nil.
func ApplyLevelUp(s *model.ProgressSnapshot, prevLevel int, now time.Time) *model.UnlockedAchievement {
	s.Level = LevelOf(s.TotalXP)
	if s.Level <= prevLevel {
		return nil
	}

	id := LevelUpAchievementID(s.Level)
	if s.HasAchievement(id) {
		return nil
	}

	unlocked := model.UnlockedAchievement{
		AchievementID: id,
		Name:          fmt.Sprintf("Level %d", s.Level),
		Description:   fmt.Sprintf("Reached level %d", s.Level),
		Category:      "learning",
		Points:        s.Level * levelUpPointsScale,
		UnlockedAt:    now,
	}
	s.Achievements = append(s.Achievements, unlocked)
	return &unlocked
}

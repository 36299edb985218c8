package engine

import (
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

// RunUnlockPass sweeps the achievement catalog once, in catalog order,
// against the snapshot and appends every newly earned achievement. XP
// bonuses carried by a definition's rewards are added to the snapshot's
// total as the pass goes.
//
// The pass is idempotent: already-unlocked ids are skipped, so running it
// twice on an unchanged snapshot is a no-op the second time. Prerequisites
// must already be present in the unlocked list; an id unlocked earlier in
// the same pass counts, since the list is mutated as the sweep advances. A
// prerequisite id that matches nothing is treated as unsatisfied rather
// than an error.
func RunUnlockPass(s *model.ProgressSnapshot, catalog []model.Achievement, now time.Time) []model.UnlockedAchievement {
	var newlyUnlocked []model.UnlockedAchievement

	for _, def := range catalog {
		if !def.IsActive {
			continue
		}
		if s.HasAchievement(def.AchievementID) {
			continue
		}
		if !prerequisitesMet(s, def.Prerequisites) {
			continue
		}
		if !EvaluateCriterion(def.Criteria, s, now) {
			continue
		}

		unlocked := model.UnlockedAchievement{
			AchievementID: def.AchievementID,
			Name:          def.Name,
			Description:   def.Description,
			Category:      def.Category,
			Icon:          def.Icon,
			Color:         def.Color,
			Rarity:        def.Rarity,
			Points:        def.Points,
			UnlockedAt:    now,
		}
		s.Achievements = append(s.Achievements, unlocked)
		newlyUnlocked = append(newlyUnlocked, unlocked)

		if def.Rewards.XPBonus > 0 {
			s.TotalXP += def.Rewards.XPBonus
		}
	}

	return newlyUnlocked
}

func prerequisitesMet(s *model.ProgressSnapshot, prerequisites []string) bool {
	for _, id := range prerequisites {
		if !s.HasAchievement(id) {
			return false
		}
	}
	return true
}

package engine

import (
	"errors"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

var (
	// ErrChallengeNotCompleted rejects a reward claim before completion.
	ErrChallengeNotCompleted = errors.New("challenge is not completed")
	// ErrRewardsAlreadyClaimed rejects a second reward claim.
	ErrRewardsAlreadyClaimed = errors.New("challenge rewards already claimed")
)

// UpdateChallengeProgress writes an absolute progress value onto the
// instance: later writes overwrite, they do not add. When the value reaches
// the target for the first time the instance transitions to completed and
// CompletedAt is set exactly once. Returns whether this call caused the
// transition. Instances in the terminal rewards_claimed state are immutable
// and ignore the write.
func UpdateChallengeProgress(inst *model.UserChallenge, value int, now time.Time) bool {
	if inst.RewardsClaimed {
		return false
	}
	if value < 0 {
		value = 0
	}
	inst.CurrentProgress = value

	if inst.IsCompleted || inst.CurrentProgress < inst.TargetValue {
		return false
	}

	inst.IsCompleted = true
	completedAt := now
	inst.CompletedAt = &completedAt
	return true
}

// ClaimChallengeRewards moves a completed instance to its terminal
// rewards_claimed state. Claims on a non-completed or already-claimed
// instance are rejected and leave the instance untouched.
func ClaimChallengeRewards(inst *model.UserChallenge, now time.Time) error {
	if !inst.IsCompleted {
		return ErrChallengeNotCompleted
	}
	if inst.RewardsClaimed {
		return ErrRewardsAlreadyClaimed
	}

	inst.RewardsClaimed = true
	claimedAt := now
	inst.RewardsClaimedAt = &claimedAt
	return nil
}

// ApplyChallengeRewards feeds a claimed challenge's rewards into the user's
// snapshot: XP bonus, direct streak bonus and today's daily entry.
func ApplyChallengeRewards(s *model.ProgressSnapshot, rewards model.ChallengeRewards, now time.Time) {
	AddChallengeCompletion(s, now, rewards.XPBonus)
	s.TotalXP += rewards.XPBonus
	if rewards.StreakBonus > 0 {
		s.Streak += rewards.StreakBonus
		if s.Streak > s.Statistics.BestStreak {
			s.Statistics.BestStreak = s.Streak
		}
	}
}

// ChallengeStreak counts completed daily challenges walking backward
// day-by-day from today, stopping at the first gap. completedDays carries
// the calendar days (time-of-day zeroed) with a completed instance.
func ChallengeStreak(completedDays []time.Time, today time.Time) int {
	set := make(map[time.Time]bool, len(completedDays))
	for _, d := range completedDays {
		set[Day(d)] = true
	}

	streak := 0
	for day := Day(today); set[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

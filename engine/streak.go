package engine

import (
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

// DailyEntryIndex returns the index of the entry for the given calendar day,
// or -1. Entries store the day with time-of-day already zeroed.
func DailyEntryIndex(s *model.ProgressSnapshot, day time.Time) int {
	day = Day(day)
	for i := range s.DailyProgress {
		if s.DailyProgress[i].Date.Equal(day) {
			return i
		}
	}
	return -1
}

// ApplyDailyActivity records today's activity deltas on the snapshot's daily
// progress and updates the continuity streak.
//
// The streak decision is made once per calendar day, when today's entry is
// first created: an existing entry for yesterday with StreakMaintained set
// increments the streak, anything else resets it to 1 (today still counts
// as day one). Re-running for a day that already has an entry only adds the
// deltas, so playing twice in one day never double-increments.
func ApplyDailyActivity(s *model.ProgressSnapshot, now time.Time, xpEarned, gamesPlayed, timeSpentSeconds int) {
	today := Day(now)

	idx := DailyEntryIndex(s, today)
	firstToday := idx < 0
	if firstToday {
		s.DailyProgress = append(s.DailyProgress, model.DailyEntry{Date: today})
		idx = len(s.DailyProgress) - 1
	}

	entry := &s.DailyProgress[idx]
	entry.XPEarned += xpEarned
	entry.GamesPlayed += gamesPlayed
	entry.TimeSpentSeconds += timeSpentSeconds
	entry.StreakMaintained = true

	if firstToday {
		yesterday := DailyEntryIndex(s, today.AddDate(0, 0, -1))
		if yesterday >= 0 && s.DailyProgress[yesterday].StreakMaintained {
			s.Streak++
		} else {
			s.Streak = 1
		}
	}

	if s.Streak > s.Statistics.BestStreak {
		s.Statistics.BestStreak = s.Streak
	}
}

// AddChallengeCompletion bumps today's challenge counter and XP on the daily
// entry, creating it if the reward claim is the user's first touch today.
func AddChallengeCompletion(s *model.ProgressSnapshot, now time.Time, xpEarned int) {
	ApplyDailyActivity(s, now, xpEarned, 0, 0)
	idx := DailyEntryIndex(s, now)
	s.DailyProgress[idx].ChallengesCompleted++
}

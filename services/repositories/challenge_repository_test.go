package repositories

import (
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

func seedChallenge(t *testing.T, repo *ChallengeRepository, day time.Time) *model.DailyChallenge {
	t.Helper()

	challenge := &model.DailyChallenge{
		Date:          day,
		ChallengeType: "games_played",
		Title:         "Daily Dozen",
		TargetValue:   3,
		Rewards:       model.ChallengeRewards{XPBonus: 50},
	}
	if err := repo.CreateDailyChallenge(challenge); err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return challenge
}

func TestGetOrCreateInstance(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	challenge := seedChallenge(t, repo, day)

	inst, err := repo.GetOrCreateInstance("user-1", challenge)
	if err != nil {
		t.Fatalf("create instance: %v", err)
	}
	if inst.TargetValue != 3 || inst.CurrentProgress != 0 || inst.IsCompleted {
		t.Fatalf("fresh instance not zeroed: %+v", inst)
	}

	again, err := repo.GetOrCreateInstance("user-1", challenge)
	if err != nil {
		t.Fatalf("reload instance: %v", err)
	}
	if again.ID != inst.ID {
		t.Fatalf("second call created a new instance: %s vs %s", again.ID, inst.ID)
	}
}

func TestInstanceRoundTripState(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	challenge := seedChallenge(t, repo, day)

	inst, err := repo.GetOrCreateInstance("user-1", challenge)
	if err != nil {
		t.Fatalf("create instance: %v", err)
	}

	completedAt := day.Add(15 * time.Hour)
	inst.CurrentProgress = 3
	inst.IsCompleted = true
	inst.CompletedAt = &completedAt
	if err := repo.SaveInstance(inst); err != nil {
		t.Fatalf("save instance: %v", err)
	}

	loaded, err := repo.GetInstance("user-1", day)
	if err != nil {
		t.Fatalf("load instance: %v", err)
	}
	if !loaded.IsCompleted || loaded.CompletedAt == nil || !loaded.CompletedAt.Equal(completedAt) {
		t.Fatalf("completion state lost: %+v", loaded)
	}
}

func TestGetCompletedDays(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))

	days := []time.Time{
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), // gap on the 3rd
	}
	for _, day := range days {
		challenge := seedChallenge(t, repo, day)
		inst, err := repo.GetOrCreateInstance("user-1", challenge)
		if err != nil {
			t.Fatalf("create instance: %v", err)
		}
		inst.IsCompleted = true
		if err := repo.SaveInstance(inst); err != nil {
			t.Fatalf("save instance: %v", err)
		}
	}

	// incomplete instance must not count
	challenge := seedChallenge(t, repo, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	if _, err := repo.GetOrCreateInstance("user-1", challenge); err != nil {
		t.Fatalf("create instance: %v", err)
	}

	got, err := repo.GetCompletedDays("user-1", 10)
	if err != nil {
		t.Fatalf("completed days: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 completed days, got %d: %v", len(got), got)
	}
	if !got[0].Equal(days[2]) {
		t.Errorf("want newest first, got %v", got)
	}
}

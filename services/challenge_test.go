package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/engine"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

func seedChallengeTemplate(t *testing.T, stack *testStack) {
	t.Helper()
	tpl := &model.ChallengeTemplate{
		ChallengeType: "games_played",
		Title:         "Daily Dozen",
		TargetValue:   3,
		XPBonus:       50,
		StreakBonus:   1,
		IsActive:      true,
	}
	if err := stack.challengeSvc.CreateTemplate(tpl); err != nil {
		t.Fatalf("seed template: %v", err)
	}
}

func TestUpdateProgressAfterClaimConflicts(t *testing.T) {
	stack := newTestStack(t)
	seedChallengeTemplate(t, stack)

	if _, err := stack.challengeSvc.UpdateProgress("user-1", &dto.UpdateChallengeProgressRequest{Progress: 3}); err != nil {
		t.Fatalf("complete challenge: %v", err)
	}
	if _, err := stack.challengeSvc.ClaimRewards("user-1"); err != nil {
		t.Fatalf("claim rewards: %v", err)
	}

	_, err := stack.challengeSvc.UpdateProgress("user-1", &dto.UpdateChallengeProgressRequest{Progress: 1})
	if err == nil {
		t.Fatal("progress write accepted on a rewards_claimed instance")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("terminal instance write: got %v, want 409 conflict", err)
	}

	day := engine.Day(stack.challengeSvc.clock.Now())
	instance, err := stack.challengeSvc.challengeRepo.GetInstance("user-1", day)
	if err != nil {
		t.Fatalf("load instance: %v", err)
	}
	if instance.CurrentProgress != 3 || !instance.RewardsClaimed {
		t.Errorf("terminal instance mutated: progress = %d, claimed = %v", instance.CurrentProgress, instance.RewardsClaimed)
	}
}

func TestClaimRewardsFailureLeavesInstanceClaimable(t *testing.T) {
	stack := newTestStack(t)
	seedChallengeTemplate(t, stack)

	if _, err := stack.challengeSvc.UpdateProgress("user-1", &dto.UpdateChallengeProgressRequest{Progress: 3}); err != nil {
		t.Fatalf("complete challenge: %v", err)
	}

	now := stack.challengeSvc.clock.Now()
	challenge, err := stack.challengeSvc.EnsureDailyChallenge(now)
	if err != nil {
		t.Fatalf("load today's challenge: %v", err)
	}

	// Make the reward application fail mid-claim by taking the shared
	// challenge row away.
	if err := stack.db.Migrator().DropTable(&model.DailyChallenge{}); err != nil {
		t.Fatalf("drop daily challenges: %v", err)
	}
	if _, err := stack.challengeSvc.ClaimRewards("user-1"); err == nil {
		t.Fatal("expected claim failure with the challenge row unavailable")
	}

	instance, err := stack.challengeSvc.challengeRepo.GetInstance("user-1", engine.Day(now))
	if err != nil {
		t.Fatalf("load instance: %v", err)
	}
	if instance.RewardsClaimed {
		t.Fatal("claim persisted even though the rewards were never applied")
	}

	if err := stack.db.AutoMigrate(&model.DailyChallenge{}); err != nil {
		t.Fatalf("restore daily challenges: %v", err)
	}
	if err := stack.challengeSvc.challengeRepo.CreateDailyChallenge(challenge); err != nil {
		t.Fatalf("restore challenge row: %v", err)
	}

	resp, err := stack.challengeSvc.ClaimRewards("user-1")
	if err != nil {
		t.Fatalf("retry claim: %v", err)
	}
	if !resp.RewardsClaimed {
		t.Error("retried claim not marked claimed")
	}

	snapshot, err := stack.progressSvc.GetSnapshot("user-1")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot.TotalXP != 50 {
		t.Errorf("snapshot xp = %d, want the 50 bonus exactly once", snapshot.TotalXP)
	}

	_, err = stack.challengeSvc.ClaimRewards("user-1")
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("second claim: got %v, want 409 conflict", err)
	}
}

func TestChallengeStreakWidensPastInitialWindow(t *testing.T) {
	stack := newTestStack(t)
	repo := stack.challengeSvc.challengeRepo

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		day := engine.Day(now).AddDate(0, 0, -i)
		challenge := &model.DailyChallenge{
			Date:          day,
			ChallengeType: "games_played",
			Title:         "Daily Dozen",
			TargetValue:   3,
		}
		if err := repo.CreateDailyChallenge(challenge); err != nil {
			t.Fatalf("seed challenge for %v: %v", day, err)
		}
		instance, err := repo.GetOrCreateInstance("user-1", challenge)
		if err != nil {
			t.Fatalf("create instance for %v: %v", day, err)
		}
		instance.CurrentProgress = 3
		instance.IsCompleted = true
		completedAt := day.Add(18 * time.Hour)
		instance.CompletedAt = &completedAt
		if err := repo.SaveInstance(instance); err != nil {
			t.Fatalf("save instance for %v: %v", day, err)
		}
	}

	// An initial window smaller than the streak must widen, not cap it.
	streak, err := stack.challengeSvc.challengeStreak("user-1", now, 2)
	if err != nil {
		t.Fatalf("challenge streak: %v", err)
	}
	if streak != 5 {
		t.Errorf("streak = %d, want 5", streak)
	}
}

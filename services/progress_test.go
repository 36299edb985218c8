package services

import (
	"net/http"
	"testing"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

func playedGameRequest(eventID string) *dto.PlayedGameRequest {
	return &dto.PlayedGameRequest{
		EventID:          eventID,
		Type:             "quiz",
		Name:             "dynasties",
		Score:            8,
		MaxScore:         10,
		TimeSpentSeconds: 60,
		CorrectAnswers:   5,
		TotalQuestions:   10,
	}
}

func TestRecordPlayedGameRejectsDuplicateEvent(t *testing.T) {
	stack := newTestStack(t)

	if _, err := stack.progressSvc.RecordPlayedGame("user-1", playedGameRequest("evt-1")); err != nil {
		t.Fatalf("first record: %v", err)
	}

	_, err := stack.progressSvc.RecordPlayedGame("user-1", playedGameRequest("evt-1"))
	if err == nil {
		t.Fatal("duplicate event accepted")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate event: got %v, want 409 conflict", err)
	}
}

func TestRecordPlayedGameFailedApplyKeepsEventRetryable(t *testing.T) {
	stack := newTestStack(t)

	// Break the unlock pass mid-operation: the catalog read fails after the
	// event id check and before the snapshot is saved.
	if err := stack.db.Migrator().DropTable(&model.Achievement{}); err != nil {
		t.Fatalf("drop achievements: %v", err)
	}
	if _, err := stack.progressSvc.RecordPlayedGame("user-1", playedGameRequest("evt-1")); err == nil {
		t.Fatal("expected failure with the catalog unavailable")
	}
	if err := stack.db.AutoMigrate(&model.Achievement{}); err != nil {
		t.Fatalf("restore achievements: %v", err)
	}

	// The failed attempt must not have burned the event id.
	resp, err := stack.progressSvc.RecordPlayedGame("user-1", playedGameRequest("evt-1"))
	if err != nil {
		t.Fatalf("retry after failed apply: %v", err)
	}
	if resp.XPEarned != 50 {
		t.Errorf("xp earned = %d, want 50", resp.XPEarned)
	}

	snapshot, err := stack.progressSvc.GetSnapshot("user-1")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snapshot.TotalXP != 50 || len(snapshot.GamesPlayed) != 1 {
		t.Errorf("game applied %d times (xp = %d), want exactly once", len(snapshot.GamesPlayed), snapshot.TotalXP)
	}

	// Only the successful apply marks the event as processed.
	if _, err := stack.progressSvc.RecordPlayedGame("user-1", playedGameRequest("evt-1")); err == nil {
		t.Fatal("duplicate event accepted after successful apply")
	}
}

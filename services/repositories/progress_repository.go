package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
)

// ProgressRepository owns the per-user progress snapshot rows and the
// processed play event ids.
type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetSnapshot loads the user's snapshot, or gorm.ErrRecordNotFound.
func (r *ProgressRepository) GetSnapshot(userID string) (*model.ProgressSnapshot, error) {
	var snapshot model.ProgressSnapshot
	if err := r.db.Where("user_id = ?", userID).First(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetOrCreateSnapshot loads the user's snapshot, creating a zeroed one on
// first contact. Snapshots are never deleted by this engine.
func (r *ProgressRepository) GetOrCreateSnapshot(userID string) (*model.ProgressSnapshot, error) {
	snapshot, err := r.GetSnapshot(userID)
	if err == nil {
		return snapshot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	snapshot = &model.ProgressSnapshot{
		ID:        id.String(),
		UserID:    userID,
		TotalXP:   0,
		Level:     1,
		Streak:    0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(snapshot).Error; err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *ProgressRepository) SaveSnapshot(snapshot *model.ProgressSnapshot) error {
	snapshot.UpdatedAt = time.Now()
	return r.db.Save(snapshot).Error
}

// IsEventProcessed reports whether the client event id was already recorded
// for the user.
func (r *ProgressRepository) IsEventProcessed(userID, eventID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProcessedEvent{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkEventProcessed records a client event id for the user. Returns false
// without error when the id was already recorded.
func (r *ProgressRepository) MarkEventProcessed(userID, eventID string) (bool, error) {
	var existing model.ProcessedEvent
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	id, _ := uuid.NewV7()
	record := &model.ProcessedEvent{
		ID:        id.String(),
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(record).Error; err != nil {
		return false, err
	}
	return true, nil
}

package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
)

// ChallengeRepository owns the daily challenge schedule, the template pool
// and the per-user challenge instances.
type ChallengeRepository struct {
	BaseRepository
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== TEMPLATES ====================

func (r *ChallengeRepository) GetActiveTemplates() ([]model.ChallengeTemplate, error) {
	var templates []model.ChallengeTemplate
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *ChallengeRepository) CreateTemplate(t *model.ChallengeTemplate) error {
	if t.ID == "" {
		id, _ := uuid.NewV7()
		t.ID = id.String()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return r.db.Create(t).Error
}

// ==================== DAILY SCHEDULE ====================

func (r *ChallengeRepository) GetChallengeForDay(day time.Time) (*model.DailyChallenge, error) {
	var challenge model.DailyChallenge
	if err := r.db.Where("date = ?", day).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) GetChallengeByID(challengeID string) (*model.DailyChallenge, error) {
	var challenge model.DailyChallenge
	if err := r.db.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *ChallengeRepository) CreateDailyChallenge(c *model.DailyChallenge) error {
	if c.ID == "" {
		id, _ := uuid.NewV7()
		c.ID = id.String()
	}
	c.CreatedAt = time.Now()
	return r.db.Create(c).Error
}

// ==================== USER INSTANCES ====================

func (r *ChallengeRepository) GetInstance(userID string, day time.Time) (*model.UserChallenge, error) {
	var instance model.UserChallenge
	err := r.db.Where("user_id = ? AND challenge_date = ?", userID, day).First(&instance).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetOrCreateInstance lazily creates the user's instance of the given day's
// challenge on first progress update.
func (r *ChallengeRepository) GetOrCreateInstance(userID string, challenge *model.DailyChallenge) (*model.UserChallenge, error) {
	instance, err := r.GetInstance(userID, challenge.Date)
	if err == nil {
		return instance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	instance = &model.UserChallenge{
		ID:            id.String(),
		UserID:        userID,
		ChallengeID:   challenge.ID,
		ChallengeDate: challenge.Date,
		TargetValue:   challenge.TargetValue,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := r.db.Create(instance).Error; err != nil {
		return nil, err
	}
	return instance, nil
}

func (r *ChallengeRepository) SaveInstance(instance *model.UserChallenge) error {
	instance.UpdatedAt = time.Now()
	return r.db.Save(instance).Error
}

// GetCompletedDays returns the calendar days on which the user completed a
// daily challenge, newest first, bounded by limit.
func (r *ChallengeRepository) GetCompletedDays(userID string, limit int) ([]time.Time, error) {
	var instances []model.UserChallenge
	err := r.db.Where("user_id = ? AND is_completed = ?", userID, true).
		Order("challenge_date DESC").
		Limit(limit).
		Find(&instances).Error
	if err != nil {
		return nil, err
	}

	days := make([]time.Time, len(instances))
	for i, inst := range instances {
		days[i] = inst.ChallengeDate
	}
	return days, nil
}

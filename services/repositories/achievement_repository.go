package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
)

// AchievementRepository owns the shared achievement catalog.
type AchievementRepository struct {
	BaseRepository
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// GetActiveCatalog returns the active definitions in catalog order. The
// unlock pass depends on this ordering for same-pass prerequisite chains.
func (r *AchievementRepository) GetActiveCatalog() ([]model.Achievement, error) {
	var catalog []model.Achievement
	err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC, achievement_id ASC").
		Find(&catalog).Error
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *AchievementRepository) GetAll() ([]model.Achievement, error) {
	var catalog []model.Achievement
	if err := r.db.Order("sort_order ASC, achievement_id ASC").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *AchievementRepository) GetByAchievementID(achievementID string) (*model.Achievement, error) {
	var def model.Achievement
	if err := r.db.Where("achievement_id = ?", achievementID).First(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *AchievementRepository) Create(def *model.Achievement) (*model.Achievement, error) {
	if def.ID == "" {
		id, _ := uuid.NewV7()
		def.ID = id.String()
	}
	def.CreatedAt = time.Now()
	def.UpdatedAt = time.Now()
	if err := r.db.Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

func (r *AchievementRepository) Update(def *model.Achievement) error {
	def.UpdatedAt = time.Now()
	return r.db.Save(def).Error
}

func (r *AchievementRepository) SetBadgeURL(achievementID, badgeURL string) error {
	return r.db.Model(&model.Achievement{}).
		Where("achievement_id = ?", achievementID).
		Updates(map[string]interface{}{
			"badge_url":  badgeURL,
			"updated_at": time.Now(),
		}).Error
}

package repositories

import (
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserRole(userID string) (string, error) {
	user, err := r.GetUser(userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

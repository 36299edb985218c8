package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository carries the shared gorm handle the concrete repositories
// embed. All progress, catalog and challenge repositories build on it.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB exposes the raw handle for callers that need ad-hoc queries.
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}

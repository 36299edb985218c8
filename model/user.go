package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Email     string `json:"email" gorm:"unique"`
	Username  string `json:"username" gorm:"unique;not null"`
	Role      string `json:"role" gorm:"default:user"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	LastLogin time.Time
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

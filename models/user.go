package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID         string         `json:"id" gorm:"primarykey;type:uuid"`
	PiUsername string         `json:"pi_username" gorm:"not null"`
	PiUID      string         `json:"pi_uid" gorm:"uniqueIndex;not null"`
	Role       UserRole       `json:"role" gorm:"default:'user'"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

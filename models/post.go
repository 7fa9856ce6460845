package models

import "time"

type PostStatus string

const (
	StatusPending  PostStatus = "pending"
	StatusActive   PostStatus = "active"
	StatusRejected PostStatus = "rejected"
)

func ValidStatus(s PostStatus) bool {
	return s == StatusPending || s == StatusActive || s == StatusRejected
}

// CanTransition reports whether an admin may move a post from s to next.
// Pending posts go live or get rejected; rejected posts may be restored to
// the queue. Active posts have no exposed back-transition.
func (s PostStatus) CanTransition(next PostStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusRejected
	case StatusRejected:
		return next == StatusPending
	}
	return false
}

type Post struct {
	ID             string     `json:"id" gorm:"primarykey;type:uuid"`
	UserID         string     `json:"user_id" gorm:"type:uuid;not null"`
	PiUsername     string     `json:"pi_username" gorm:"not null"`
	OriginalURL    string     `json:"original_url" gorm:"not null"`
	Category       Category   `json:"category" gorm:"not null"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description" gorm:"type:text"`
	ThumbnailImage string     `json:"thumbnail_image"`
	Comment        string     `json:"comment"`
	Status         PostStatus `json:"status" gorm:"default:'pending';index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

package model

import "time"

// UserProgress is one completion record per user/lesson attempt. Records are
// append-only and strictly scoped to their owning user. LessonID is an opaque
// reference; CourseID is validated on write.
type UserProgress struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	UserID         string     `json:"user_id" gorm:"not null;index"`
	LessonID       string     `json:"lesson_id" gorm:"not null"`
	CourseID       string     `json:"course_id" gorm:"not null"`
	IsCompleted    bool       `json:"is_completed" gorm:"default:false;not null"`
	StarsEarned    int        `json:"stars_earned" gorm:"default:0;not null"`
	CoinsEarned    int        `json:"coins_earned" gorm:"default:0;not null"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

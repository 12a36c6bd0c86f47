package model

import "time"

// Course is teacher-owned learning content. Unpublished courses are drafts
// visible only to their owner.
type Course struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	TeacherID    string    `json:"teacher_id" gorm:"not null;index"`
	Language     string    `json:"language" gorm:"default:english;size:20"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsPublished  bool      `json:"is_published" gorm:"default:false;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Lesson is a single unit of content within a course, ordered by OrderIndex.
type Lesson struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	CourseID     string    `json:"course_id" gorm:"not null;index"`
	Title        string    `json:"title" gorm:"not null"`
	Content      string    `json:"content,omitempty" gorm:"type:text"`
	LessonType   string    `json:"lesson_type" gorm:"not null;size:20"` // story, game, quiz, video
	OrderIndex   int       `json:"order_index" gorm:"not null"`
	PointsReward int       `json:"points_reward" gorm:"default:10"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

package model

import "time"

// Badge is a catalog entry. StarsRequired gates automatic awards when a
// progress record pushes a user's total past the threshold.
type Badge struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	IconURL       string    `json:"icon_url,omitempty"`
	StarsRequired int       `json:"stars_required" gorm:"default:0;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

type UserBadge struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"not null;index:idx_user_badge,unique"`
	BadgeID    string    `json:"badge_id" gorm:"not null;index:idx_user_badge,unique"`
	EarnedDate time.Time `json:"earned_date"`
	CreatedAt  time.Time `json:"created_at"`

	Badge Badge `json:"badge" gorm:"foreignKey:BadgeID"`
}

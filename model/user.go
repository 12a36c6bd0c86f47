package model

import "time"

const (
	RoleChild   = "child"
	RoleTeacher = "teacher"
)

// User is the application account backing both temporary demo sessions and
// identity-service logins. GoogleSub is the external identity subject; a
// unique index on it is what keeps first-login idempotent under concurrency.
type User struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	UserType    string `json:"user_type" gorm:"not null;size:20"`
	AvatarID    string `json:"avatar_id,omitempty"`
	Language    string `json:"language" gorm:"default:english;size:20"`
	Theme       string `json:"theme" gorm:"default:light;size:10"`
	PhoneNumber string `json:"phone_number,omitempty"`

	TotalStars  int `json:"total_stars" gorm:"default:0;not null"`
	TotalCoins  int `json:"total_coins" gorm:"default:0;not null"`
	TotalBadges int `json:"total_badges" gorm:"default:0;not null"`

	GoogleSub string `json:"google_sub,omitempty" gorm:"uniqueIndex;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsTeacher() bool {
	return u.UserType == RoleTeacher
}

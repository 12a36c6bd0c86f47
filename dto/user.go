package dto

import "github.com/edugram-labs/edugram-api/model"

// UpdateProfileRequest carries a partial profile update. Nil fields keep
// their stored value (coalesce semantics).
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	AvatarID *string `json:"avatar_id,omitempty"`
	Language *string `json:"language,omitempty" validate:"omitempty,oneof=english hindi odia telugu bangla malayalam kannada"`
	Theme    *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
}

func (r UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

// CurrentUserResponse mirrors the identity-service profile next to the
// application user row, the shape the clients were built against.
type CurrentUserResponse struct {
	IdentityUser IdentityProfile `json:"identity_user"`
	AppUser      *model.User     `json:"app_user"`
}

type LogoutResponse struct {
	Success bool `json:"success" example:"true"`
}

type UserBadgesResponse struct {
	TotalBadges int               `json:"total_badges"`
	Badges      []model.UserBadge `json:"badges"`
}

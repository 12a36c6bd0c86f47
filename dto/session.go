package dto

import (
	"errors"
	"strings"
)

// SessionKind tags the two session flavors carried by the session cookie.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionTemporary
	SessionExternal
)

func (k SessionKind) String() string {
	switch k {
	case SessionTemporary:
		return "temporary"
	case SessionExternal:
		return "external"
	}
	return "none"
}

const tempSessionPrefix = "temp_session_"

// SessionToken is the parsed form of the session cookie. The raw cookie
// string is inspected exactly once, here; everything below the request
// boundary works off the tagged value.
type SessionToken struct {
	Kind SessionKind

	// UserID is set for temporary sessions only.
	UserID string

	// Token is the opaque identity-service token, set for external sessions.
	Token string
}

var ErrNoSession = errors.New("no session token")

// ParseSessionToken classifies a cookie value into a temporary or external
// session token.
func ParseSessionToken(cookieValue string) (SessionToken, error) {
	if cookieValue == "" {
		return SessionToken{Kind: SessionNone}, ErrNoSession
	}

	if rest, ok := strings.CutPrefix(cookieValue, tempSessionPrefix); ok {
		if rest == "" {
			return SessionToken{Kind: SessionNone}, ErrNoSession
		}
		return SessionToken{Kind: SessionTemporary, UserID: rest}, nil
	}

	return SessionToken{Kind: SessionExternal, Token: cookieValue}, nil
}

// TempSessionValue renders the cookie value for a temporary session.
func TempSessionValue(userID string) string {
	return tempSessionPrefix + userID
}

// ==================== SESSION REQUEST/RESPONSE DTOs ====================

type TempLoginRequest struct {
	UserType    string `json:"user_type" validate:"required,oneof=child teacher" example:"child"`
	Name        string `json:"name,omitempty" example:"Asha"`
	AvatarID    string `json:"avatar_id,omitempty" example:"🦊"`
	PhoneNumber string `json:"phone_number,omitempty" example:"+919812345678"`
	Language    string `json:"language,omitempty" validate:"omitempty,oneof=english hindi odia telugu bangla malayalam kannada" example:"english"`
}

func (r TempLoginRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TempLoginResponse struct {
	Success bool   `json:"success" example:"true"`
	UserID  string `json:"userId" example:"0190f1c2-5b7a-7c1e-b7aa-2f3d4e5f6a7b"`
}

type CreateSessionRequest struct {
	Code     string `json:"code" validate:"required" example:"4/0AbCdEfG"`
	UserType string `json:"user_type,omitempty" validate:"omitempty,oneof=child teacher" example:"teacher"`
}

func (r CreateSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SessionResponse struct {
	Success bool `json:"success" example:"true"`
}

type RedirectURLResponse struct {
	RedirectURL string `json:"redirectUrl" example:"https://accounts.google.com/o/oauth2/v2/auth?..."`
}

// IdentityProfile is the identity service's view of the authenticated
// caller: external subject plus the profile fields it vouches for.
type IdentityProfile struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

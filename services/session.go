package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

// SessionService resolves the session cookie to an application user.
// Temporary sessions carry the user id inside the cookie; external
// sessions are opaque tokens that the identity provider resolves.
type SessionService struct {
	appContext.DefaultService
	sqlSvc        *PostgresService
	identitySvc   *IdentityService
	monitoringSvc *MonitoringService
}

const SESSION_SVC = "session_svc"

const (
	tempSessionTTL     = time.Hour
	externalSessionTTL = 60 * 24 * time.Hour
)

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.identitySvc = svc.Service(IDENTITY_SVC).(*IdentityService)
	if s := svc.Service(MONITORING_SVC); s != nil {
		svc.monitoringSvc = s.(*MonitoringService)
	}
	return nil
}

// Resolve maps a parsed session token to the user behind it. A nil user
// with a nil error means the token did not resolve; callers decide whether
// that is a 401.
func (svc *SessionService) Resolve(ctx context.Context, token dto.SessionToken) (*model.User, *dto.IdentityProfile, error) {
	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordSessionResolved(token.Kind.String())
	}

	switch token.Kind {
	case dto.SessionNone:
		return nil, nil, nil

	case dto.SessionTemporary:
		user, err := svc.sqlSvc.GetUser(token.UserID)
		if err != nil {
			// Stale temp cookies pointing at pruned users are expected
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, nil
			}
			return nil, nil, err
		}
		return user, syntheticProfile(user), nil

	case dto.SessionExternal:
		profile, err := svc.identitySvc.GetProfile(ctx, token.Token)
		if err != nil {
			return nil, nil, err
		}
		if profile == nil {
			return nil, nil, nil
		}

		user, err := svc.sqlSvc.GetUserBySubject(profile.Subject)
		if err != nil {
			// Provider knows the token but we have no row yet; treat as
			// unauthenticated until the session exchange creates one.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, profile, nil
			}
			return nil, nil, err
		}
		return user, profile, nil
	}

	return nil, nil, nil
}

// CreateTempUser mints a guest user for cookieless demo access. The
// synthetic subject keeps the unique index on external subjects satisfied.
func (svc *SessionService) CreateTempUser(req *dto.TempLoginRequest) (*model.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	name := req.Name
	if name == "" {
		if userType == shared.RoleTeacher {
			name = "Demo Teacher"
		} else {
			name = "Demo Explorer"
		}
	}

	avatarID := req.AvatarID
	if avatarID == "" {
		if userType == shared.RoleTeacher {
			avatarID = "\U0001F468‍\U0001F3EB"
		} else {
			avatarID = "\U0001F466"
		}
	}

	language := req.Language
	if language == "" {
		language = "english"
	}

	user := &model.User{
		ID:          id.String(),
		Email:       fmt.Sprintf("temp_%s@demo.com", id.String()),
		Name:        name,
		UserType:    userType,
		AvatarID:    avatarID,
		Language:    language,
		Theme:       "light",
		PhoneNumber: req.PhoneNumber,
		GoogleSub:   fmt.Sprintf("temp_%s", id.String()),
	}

	created, err := svc.sqlSvc.CreateUser(user)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":   created.ID,
		"user_type": created.UserType,
	}).Info("Temporary user created")

	return created, nil
}

// EnsureUser guarantees an app user row exists for an external identity.
// Concurrent first logins race through the same insert-or-ignore path and
// converge on one row.
func (svc *SessionService) EnsureUser(profile *dto.IdentityProfile, userType string) (*model.User, error) {
	if userType != shared.RoleChild && userType != shared.RoleTeacher {
		userType = shared.RoleChild
	}

	avatarID := "\U0001F466"
	if userType == shared.RoleTeacher {
		avatarID = "\U0001F468‍\U0001F3EB"
	}

	name := profile.Name
	if name == "" {
		name = profile.Email
	}

	user := &model.User{
		Email:     profile.Email,
		Name:      name,
		UserType:  userType,
		AvatarID:  avatarID,
		Language:  "english",
		Theme:     "light",
		GoogleSub: profile.Subject,
	}

	return svc.sqlSvc.CreateUser(user)
}

// SessionCookie builds the session cookie for the given token value.
// Temporary sessions live one hour, provider sessions sixty days.
func (svc *SessionService) SessionCookie(value string, temporary bool) *fiber.Cookie {
	ttl := externalSessionTTL
	if temporary {
		ttl = tempSessionTTL
	}

	return &fiber.Cookie{
		Name:     shared.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

// ExpiredCookie returns a cookie that clears the session on the client.
func (svc *SessionService) ExpiredCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     shared.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

// RequireSession parses the session cookie once and stores the resolved
// user on the request context. Requests without a resolvable user get 401.
func (svc *SessionService) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := dto.ParseSessionToken(c.Cookies(shared.SessionCookieName))
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		user, profile, err := svc.Resolve(c.UserContext(), token)
		if err != nil {
			log.WithError(err).Error("Session resolution failed")
			return shared.ResponseJSON(c, fiber.StatusInternalServerError, "failed to resolve session", nil)
		}
		if user == nil {
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.CurrentUser, user)
		c.Locals(shared.IdentityProfile, profile)
		return c.Next()
	}
}

func syntheticProfile(user *model.User) *dto.IdentityProfile {
	return &dto.IdentityProfile{
		Subject: user.GoogleSub,
		Email:   user.Email,
		Name:    user.Name,
	}
}

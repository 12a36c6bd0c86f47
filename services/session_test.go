package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

func newSessionService(t *testing.T) (*SessionService, *PostgresService) {
	t.Helper()
	store := newTestStore(t)
	return &SessionService{sqlSvc: store}, store
}

func TestResolveTemporarySession(t *testing.T) {
	svc, store := newSessionService(t)
	user := seedUser(t, store, shared.RoleChild)

	token, err := dto.ParseSessionToken(dto.TempSessionValue(user.ID))
	require.NoError(t, err)

	resolved, profile, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
	require.NotNil(t, profile)
	assert.Equal(t, user.GoogleSub, profile.Subject)
}

func TestResolveStaleTempCookie(t *testing.T) {
	svc, _ := newSessionService(t)

	token, err := dto.ParseSessionToken(dto.TempSessionValue("gone-user"))
	require.NoError(t, err)

	resolved, profile, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Nil(t, profile)
}

func TestResolveNoSession(t *testing.T) {
	svc, _ := newSessionService(t)

	resolved, profile, err := svc.Resolve(context.Background(), dto.SessionToken{Kind: dto.SessionNone})
	require.NoError(t, err)
	assert.Nil(t, resolved)
	assert.Nil(t, profile)
}

func TestCreateTempUserDefaults(t *testing.T) {
	svc, store := newSessionService(t)

	t.Run("Child", func(t *testing.T) {
		user, err := svc.CreateTempUser(&dto.TempLoginRequest{UserType: shared.RoleChild})
		require.NoError(t, err)

		assert.Equal(t, shared.RoleChild, user.UserType)
		assert.Equal(t, "Demo Explorer", user.Name)
		assert.Equal(t, "👦", user.AvatarID)
		assert.Equal(t, "english", user.Language)
		assert.Equal(t, "temp_"+user.ID+"@demo.com", user.Email)
		assert.Equal(t, "temp_"+user.ID, user.GoogleSub)

		stored, err := store.GetUser(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, stored.Email)
	})

	t.Run("TeacherWithOverrides", func(t *testing.T) {
		user, err := svc.CreateTempUser(&dto.TempLoginRequest{
			UserType: shared.RoleTeacher,
			Name:     "Ms. Rao",
			AvatarID: "🦉",
			Language: "telugu",
		})
		require.NoError(t, err)

		assert.Equal(t, shared.RoleTeacher, user.UserType)
		assert.Equal(t, "Ms. Rao", user.Name)
		assert.Equal(t, "🦉", user.AvatarID)
		assert.Equal(t, "telugu", user.Language)
	})
}

func TestEnsureUserConvergesOnSubject(t *testing.T) {
	svc, store := newSessionService(t)

	profile := &dto.IdentityProfile{Subject: "google-1", Email: "t@example.com", Name: "Teacher T"}

	first, err := svc.EnsureUser(profile, shared.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleTeacher, first.UserType)

	// A second login for the same subject lands on the same row even with a
	// different requested role
	second, err := svc.EnsureUser(profile, shared.RoleChild)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, shared.RoleTeacher, second.UserType)

	var count int64
	store.Db().Model(&model.User{}).Where("google_sub = ?", "google-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureUserInvalidRoleDefaultsToChild(t *testing.T) {
	svc, _ := newSessionService(t)

	user, err := svc.EnsureUser(&dto.IdentityProfile{Subject: "g2", Email: "e@example.com"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, shared.RoleChild, user.UserType)
	// Name falls back to email when the provider sends none
	assert.Equal(t, "e@example.com", user.Name)
}

func TestSessionCookieLifetimes(t *testing.T) {
	svc, _ := newSessionService(t)

	temp := svc.SessionCookie("temp_session_x", true)
	assert.Equal(t, shared.SessionCookieName, temp.Name)
	assert.Equal(t, int(time.Hour.Seconds()), temp.MaxAge)
	assert.True(t, temp.HTTPOnly)
	assert.True(t, temp.Secure)
	assert.Equal(t, "/", temp.Path)

	persistent := svc.SessionCookie("opaque-token", false)
	assert.Equal(t, int((60 * 24 * time.Hour).Seconds()), persistent.MaxAge)

	expired := svc.ExpiredCookie()
	assert.Empty(t, expired.Value)
	assert.Negative(t, expired.MaxAge)
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

func TestGetRedirectURLHandler(t *testing.T) {
	identity := &fakeIdentityService{redirectURL: "https://accounts.google.com/o/oauth2/v2/auth"}
	handler := NewAuthHandler(identity, &fakeSessionService{})

	app := newTestApp()
	app.Get("/api/oauth/google/redirect_url", handler.GetRedirectURL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/oauth/google/redirect_url", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.Contains(t, data["redirectUrl"], "accounts.google.com")
}

func TestTempLoginHandler(t *testing.T) {
	user := &model.User{ID: "u1", UserType: shared.RoleChild}
	session := &fakeSessionService{tempUser: user}
	handler := NewAuthHandler(&fakeIdentityService{}, session)

	app := newTestApp()
	app.Post("/api/temp-login", handler.TempLogin)

	t.Run("SetsTempCookieAndReturnsUserID", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/temp-login", dto.TempLoginRequest{UserType: "child"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, true, data["success"])
		assert.Equal(t, "u1", data["userId"])

		cookie := findCookie(resp, shared.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, "temp_session_u1", cookie.Value)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("MissingUserTypeIs400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/temp-login", map[string]string{"name": "X"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidUserTypeIs400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/temp-login", dto.TempLoginRequest{UserType: "admin"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateSessionHandler(t *testing.T) {
	profile := &dto.IdentityProfile{Subject: "g1", Email: "t@example.com", Name: "T"}

	t.Run("SetsPersistentCookie", func(t *testing.T) {
		identity := &fakeIdentityService{exchangeToken: "opaque-1", profile: profile}
		session := &fakeSessionService{ensuredUser: &model.User{ID: "u2", UserType: shared.RoleTeacher}}
		handler := NewAuthHandler(identity, session)

		app := newTestApp()
		app.Post("/api/sessions", handler.CreateSession)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/sessions", dto.CreateSessionRequest{Code: "good", UserType: "teacher"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cookie := findCookie(resp, shared.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Equal(t, "opaque-1", cookie.Value)
		assert.Equal(t, 60*24*3600, cookie.MaxAge)
	})

	t.Run("MissingCodeIs400", func(t *testing.T) {
		handler := NewAuthHandler(&fakeIdentityService{}, &fakeSessionService{})
		app := newTestApp()
		app.Post("/api/sessions", handler.CreateSession)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/sessions", map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("ExchangeFailureIs401", func(t *testing.T) {
		identity := &fakeIdentityService{exchangeErr: assert.AnError}
		handler := NewAuthHandler(identity, &fakeSessionService{})
		app := newTestApp()
		app.Post("/api/sessions", handler.CreateSession)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/sessions", dto.CreateSessionRequest{Code: "bad"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("ExternalTokenIsRevoked", func(t *testing.T) {
		identity := &fakeIdentityService{}
		handler := NewAuthHandler(identity, &fakeSessionService{})

		app := newTestApp()
		app.Get("/api/logout", handler.Logout)

		req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
		req.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: "opaque-xyz"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "opaque-xyz", identity.invalidatedTok)

		cookie := findCookie(resp, shared.SessionCookieName)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
	})

	t.Run("TempSessionSkipsProviderRevocation", func(t *testing.T) {
		identity := &fakeIdentityService{}
		handler := NewAuthHandler(identity, &fakeSessionService{})

		app := newTestApp()
		app.Get("/api/logout", handler.Logout)

		req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
		req.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: "temp_session_u1"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, identity.invalidatedTok)
	})

	t.Run("NoCookieStillSucceeds", func(t *testing.T) {
		handler := NewAuthHandler(&fakeIdentityService{}, &fakeSessionService{})
		app := newTestApp()
		app.Get("/api/logout", handler.Logout)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/logout", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/shared"
)

type AuthHandler struct {
	identitySvc IdentityServiceInterface
	sessionSvc  SessionServiceInterface
}

func NewAuthHandler(identitySvc IdentityServiceInterface, sessionSvc SessionServiceInterface) *AuthHandler {
	return &AuthHandler{
		identitySvc: identitySvc,
		sessionSvc:  sessionSvc,
	}
}

// @Summary Get OAuth Redirect URL
// @Description This endpoint returns the Google OAuth consent URL from the identity provider
// @Tags auth
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.RedirectURLResponse}
// @Router /api/oauth/google/redirect_url [get]
func (h *AuthHandler) GetRedirectURL(c *fiber.Ctx) error {
	url, err := h.identitySvc.GetRedirectURL(c.UserContext())
	if err != nil {
		return shared.NewInternalError(err, "identity service unavailable")
	}

	return shared.ResponseOK(c, dto.RedirectURLResponse{RedirectURL: url})
}

// @Summary Temporary Demo Login
// @Description This endpoint creates a demo user and sets a one-hour temporary session cookie
// @Tags auth
// @Accept  json
// @Produce json
// @Param tempLoginRequest body dto.TempLoginRequest true "Temp login request"
// @Success 200 {object} shared.Response{data=dto.TempLoginResponse}
// @Router /api/temp-login [post]
func (h *AuthHandler) TempLogin(c *fiber.Ctx) error {
	var req dto.TempLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	user, err := h.sessionSvc.CreateTempUser(&req)
	if err != nil {
		return err
	}

	c.Cookie(h.sessionSvc.SessionCookie(dto.TempSessionValue(user.ID), true))

	return shared.ResponseOK(c, dto.TempLoginResponse{
		Success: true,
		UserID:  user.ID,
	})
}

// @Summary Create Session
// @Description This endpoint exchanges an OAuth authorization code for a persistent session cookie
// @Tags auth
// @Accept  json
// @Produce json
// @Param createSessionRequest body dto.CreateSessionRequest true "Create session request"
// @Success 200 {object} shared.Response{data=dto.SessionResponse}
// @Router /api/sessions [post]
func (h *AuthHandler) CreateSession(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	token, err := h.identitySvc.ExchangeCode(c.UserContext(), req.Code)
	if err != nil {
		return shared.NewUnauthorizedError(err, "sign-in failed")
	}

	profile, err := h.identitySvc.GetProfile(c.UserContext(), token)
	if err != nil || profile == nil {
		return shared.NewUnauthorizedError(err, "sign-in failed")
	}

	if _, err := h.sessionSvc.EnsureUser(profile, req.UserType); err != nil {
		return err
	}

	c.Cookie(h.sessionSvc.SessionCookie(token, false))

	return shared.ResponseOK(c, dto.SessionResponse{Success: true})
}

// @Summary Logout
// @Description This endpoint revokes the persistent session upstream and clears the session cookie
// @Tags auth
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.LogoutResponse}
// @Router /api/logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, err := dto.ParseSessionToken(c.Cookies(shared.SessionCookieName))
	if err == nil && token.Kind == dto.SessionExternal {
		h.identitySvc.Invalidate(c.UserContext(), token.Token)
	}

	c.Cookie(h.sessionSvc.ExpiredCookie())

	return shared.ResponseOK(c, dto.LogoutResponse{Success: true})
}

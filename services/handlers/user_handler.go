package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

type UserHandler struct {
	userSvc    UserServiceInterface
	sessionSvc SessionServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface, sessionSvc SessionServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc:    userSvc,
		sessionSvc: sessionSvc,
	}
}

// @Summary Get Current User
// @Description This endpoint resolves the session cookie to the caller's identity and app user
// @Tags user
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CurrentUserResponse}
// @Router /api/users/me [get]
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	token, err := dto.ParseSessionToken(c.Cookies(shared.SessionCookieName))
	if err != nil {
		return shared.ResponseUnauthorized(c)
	}

	user, profile, err := h.sessionSvc.Resolve(c.UserContext(), token)
	if err != nil {
		return shared.NewInternalError(err, "failed to resolve session")
	}
	if user == nil {
		// A temp cookie pointing at a pruned user is a 404, not a 401:
		// the session format was valid, the user is simply gone.
		if token.Kind == dto.SessionTemporary {
			return shared.NewNotFoundError(nil, "user not found")
		}
		return shared.ResponseUnauthorized(c)
	}

	return shared.ResponseOK(c, dto.CurrentUserResponse{
		IdentityUser: *profile,
		AppUser:      user,
	})
}

// @Summary Update Profile
// @Description This endpoint partially updates the caller's profile; omitted fields are kept
// @Tags user
// @Accept  json
// @Produce json
// @Param updateProfileRequest body dto.UpdateProfileRequest true "Profile update request"
// @Success 200 {object} shared.Response{data=model.User}
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	updated, err := h.userSvc.UpdateProfile(user.ID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, updated)
}

// @Summary Get User Badges
// @Description This endpoint lists the badges earned by the caller
// @Tags user
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.UserBadgesResponse}
// @Router /api/users/me/badges [get]
func (h *UserHandler) GetUserBadges(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	badges, err := h.userSvc.GetUserBadges(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, badges)
}

// @Summary Get Badge Catalog
// @Description This endpoint lists all badges and the star totals required to earn them
// @Tags user
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (h *UserHandler) GetBadgeCatalog(c *fiber.Ctx) error {
	badges, err := h.userSvc.GetBadgeCatalog()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, badges)
}

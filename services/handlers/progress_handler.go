package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

type ProgressHandler struct {
	progressSvc ProgressServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc: progressSvc,
	}
}

// @Summary List Progress
// @Description This endpoint returns the caller's own progress records, newest first
// @Tags progress
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.UserProgress}
// @Router /api/progress [get]
func (h *ProgressHandler) ListProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	records, err := h.progressSvc.ListProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, records)
}

// @Summary Record Progress
// @Description This endpoint appends a progress entry for the caller and applies star, coin and badge rewards
// @Tags progress
// @Accept  json
// @Produce json
// @Param recordProgressRequest body dto.RecordProgressRequest true "Record progress request"
// @Success 201 {object} shared.Response{data=model.UserProgress}
// @Router /api/progress [post]
func (h *ProgressHandler) RecordProgress(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)

	var req dto.RecordProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	record, err := h.progressSvc.RecordProgress(user, &req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, record)
}

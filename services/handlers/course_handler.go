package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

type CourseHandler struct {
	courseSvc CourseServiceInterface
	mediaSvc  MediaServiceInterface
}

func NewCourseHandler(courseSvc CourseServiceInterface, mediaSvc MediaServiceInterface) *CourseHandler {
	return &CourseHandler{
		courseSvc: courseSvc,
		mediaSvc:  mediaSvc,
	}
}

// @Summary List Courses
// @Description This endpoint lists courses visible to the caller: teachers get their own catalog including drafts, children get published courses only
// @Tags course
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=[]model.Course}
// @Router /api/courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)

	courses, err := h.courseSvc.ListCourses(user)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, courses)
}

// @Summary Create Course
// @Description This endpoint creates an unpublished course owned by the calling teacher
// @Tags course
// @Accept  json
// @Produce json
// @Param createCourseRequest body dto.CreateCourseRequest true "Create course request"
// @Success 201 {object} shared.Response{data=model.Course}
// @Router /api/courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	course, err := h.courseSvc.CreateCourse(user, &req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, course)
}

// @Summary Publish Course
// @Description This endpoint publishes a draft course owned by the calling teacher
// @Tags course
// @Accept  json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=model.Course}
// @Router /api/courses/{courseId}/publish [post]
func (h *CourseHandler) PublishCourse(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)
	courseID := c.Params("courseId")

	course, err := h.courseSvc.PublishCourse(user, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, course)
}

// @Summary Create Lesson
// @Description This endpoint appends a lesson to a course owned by the calling teacher
// @Tags course
// @Accept  json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param createLessonRequest body dto.CreateLessonRequest true "Create lesson request"
// @Success 201 {object} shared.Response{data=model.Lesson}
// @Router /api/courses/{courseId}/lessons [post]
func (h *CourseHandler) CreateLesson(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)
	courseID := c.Params("courseId")

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	lesson, err := h.courseSvc.CreateLesson(user, courseID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, lesson)
}

// @Summary List Lessons
// @Description This endpoint lists a course's lessons in play order
// @Tags course
// @Accept  json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=[]model.Lesson}
// @Router /api/courses/{courseId}/lessons [get]
func (h *CourseHandler) ListLessons(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)
	courseID := c.Params("courseId")

	lessons, err := h.courseSvc.ListLessons(user, courseID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, lessons)
}

// @Summary Upload Course Thumbnail
// @Description This endpoint stores a thumbnail image for a course owned by the calling teacher
// @Tags course
// @Accept  mpfd
// @Produce json
// @Param courseId path string true "Course ID"
// @Param file formData file true "Thumbnail image (jpeg, png or webp, max 5MB)"
// @Success 200 {object} shared.Response{data=dto.ThumbnailUploadResponse}
// @Router /api/courses/{courseId}/thumbnail [post]
func (h *CourseHandler) UploadThumbnail(c *fiber.Ctx) error {
	user := c.Locals(shared.CurrentUser).(*model.User)
	courseID := c.Params("courseId")

	course, err := h.courseSvc.GetOwnedCourse(user, courseID)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "thumbnail file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "could not read thumbnail file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return shared.NewBadRequestError(err, "could not read thumbnail file")
	}

	contentType := fileHeader.Header.Get("Content-Type")

	url, size, err := h.mediaSvc.UploadCourseThumbnail(course.ID, contentType, data)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, dto.ThumbnailUploadResponse{
		CourseID:     course.ID,
		ThumbnailURL: url,
		Size:         size,
	})
}

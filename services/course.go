package services

import (
	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

// CourseService enforces the visibility rules: teachers operate on their
// own catalog, drafts included; children only ever see published courses.
type CourseService struct {
	appContext.DefaultService
	sqlSvc *PostgresService
}

const COURSE_SVC = "course_svc"

func (svc CourseService) Id() string {
	return COURSE_SVC
}

func (svc *CourseService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CourseService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ListCourses returns the catalog visible to the caller, newest first.
func (svc *CourseService) ListCourses(user *model.User) ([]model.Course, error) {
	if user.IsTeacher() {
		return svc.sqlSvc.GetCoursesByTeacher(user.ID)
	}
	return svc.sqlSvc.GetPublishedCourses()
}

// CreateCourse creates an unpublished course owned by the caller.
// Only teachers may create.
func (svc *CourseService) CreateCourse(user *model.User, req *dto.CreateCourseRequest) (*model.Course, error) {
	if !user.IsTeacher() {
		return nil, shared.NewForbiddenError(nil, "only teachers can create courses")
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		TeacherID:    user.ID,
		Language:     req.Language,
		ThumbnailURL: req.ThumbnailURL,
		IsPublished:  false,
	}

	created, err := svc.sqlSvc.CreateCourse(course)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"course_id":  created.ID,
		"teacher_id": user.ID,
	}).Info("Course created")

	return created, nil
}

// PublishCourse flips a draft to published. Only the owning teacher may
// publish.
func (svc *CourseService) PublishCourse(user *model.User, courseID string) (*model.Course, error) {
	if !user.IsTeacher() {
		return nil, shared.NewForbiddenError(nil, "only teachers can publish courses")
	}

	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != user.ID {
		return nil, shared.NewForbiddenError(nil, "course belongs to another teacher")
	}

	return svc.sqlSvc.SetCoursePublished(courseID, true)
}

// CreateLesson appends a lesson to a course owned by the caller.
func (svc *CourseService) CreateLesson(user *model.User, courseID string, req *dto.CreateLessonRequest) (*model.Lesson, error) {
	if !user.IsTeacher() {
		return nil, shared.NewForbiddenError(nil, "only teachers can create lessons")
	}

	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != user.ID {
		return nil, shared.NewForbiddenError(nil, "course belongs to another teacher")
	}

	pointsReward := req.PointsReward
	if pointsReward == 0 {
		pointsReward = 10
	}

	lesson := &model.Lesson{
		CourseID:     courseID,
		Title:        req.Title,
		Content:      req.Content,
		LessonType:   req.LessonType,
		OrderIndex:   req.OrderIndex,
		PointsReward: pointsReward,
	}

	return svc.sqlSvc.CreateLesson(lesson)
}

// ListLessons returns a course's lessons in order. Children can only read
// lessons of published courses; teachers only of their own.
func (svc *CourseService) ListLessons(user *model.User, courseID string) ([]model.Lesson, error) {
	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	if user.IsTeacher() {
		if course.TeacherID != user.ID {
			return nil, shared.NewForbiddenError(nil, "course belongs to another teacher")
		}
	} else if !course.IsPublished {
		return nil, shared.NewNotFoundError(nil, "course not found")
	}

	return svc.sqlSvc.GetCourseLessons(courseID)
}

// GetOwnedCourse fetches a course and verifies the caller owns it.
func (svc *CourseService) GetOwnedCourse(user *model.User, courseID string) (*model.Course, error) {
	if !user.IsTeacher() {
		return nil, shared.NewForbiddenError(nil, "teachers only")
	}

	course, err := svc.sqlSvc.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != user.ID {
		return nil, shared.NewForbiddenError(nil, "course belongs to another teacher")
	}
	return course, nil
}

func (svc *CourseService) SetThumbnail(courseID, url string) error {
	return svc.sqlSvc.SetCourseThumbnail(courseID, url)
}

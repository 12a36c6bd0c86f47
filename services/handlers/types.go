package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
)

type IdentityServiceInterface interface {
	GetRedirectURL(ctx context.Context) (string, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetProfile(ctx context.Context, token string) (*dto.IdentityProfile, error)
	Invalidate(ctx context.Context, token string)
}

type SessionServiceInterface interface {
	Resolve(ctx context.Context, token dto.SessionToken) (*model.User, *dto.IdentityProfile, error)
	CreateTempUser(req *dto.TempLoginRequest) (*model.User, error)
	EnsureUser(profile *dto.IdentityProfile, userType string) (*model.User, error)
	SessionCookie(value string, temporary bool) *fiber.Cookie
	ExpiredCookie() *fiber.Cookie
}

type UserServiceInterface interface {
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*model.User, error)
	GetUserBadges(userID string) (*dto.UserBadgesResponse, error)
	GetBadgeCatalog() ([]model.Badge, error)
}

type CourseServiceInterface interface {
	ListCourses(user *model.User) ([]model.Course, error)
	CreateCourse(user *model.User, req *dto.CreateCourseRequest) (*model.Course, error)
	PublishCourse(user *model.User, courseID string) (*model.Course, error)
	CreateLesson(user *model.User, courseID string, req *dto.CreateLessonRequest) (*model.Lesson, error)
	ListLessons(user *model.User, courseID string) ([]model.Lesson, error)
	GetOwnedCourse(user *model.User, courseID string) (*model.Course, error)
}

type ProgressServiceInterface interface {
	ListProgress(userID string) ([]model.UserProgress, error)
	RecordProgress(user *model.User, req *dto.RecordProgressRequest) (*model.UserProgress, error)
}

type MediaServiceInterface interface {
	UploadCourseThumbnail(courseID, contentType string, data []byte) (string, int64, error)
}

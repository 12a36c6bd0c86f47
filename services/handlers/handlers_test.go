package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: shared.ErrorHandler,
	})
}

// withUser fakes the session middleware by pinning the resolved user on the
// request context.
func withUser(user *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, user.ID)
		c.Locals(shared.CurrentUser, user)
		return c.Next()
	}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// ==================== FAKE SERVICES ====================

type fakeIdentityService struct {
	redirectURL    string
	redirectErr    error
	exchangeToken  string
	exchangeErr    error
	profile        *dto.IdentityProfile
	profileErr     error
	invalidatedTok string
}

func (f *fakeIdentityService) GetRedirectURL(ctx context.Context) (string, error) {
	return f.redirectURL, f.redirectErr
}

func (f *fakeIdentityService) ExchangeCode(ctx context.Context, code string) (string, error) {
	return f.exchangeToken, f.exchangeErr
}

func (f *fakeIdentityService) GetProfile(ctx context.Context, token string) (*dto.IdentityProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeIdentityService) Invalidate(ctx context.Context, token string) {
	f.invalidatedTok = token
}

type fakeSessionService struct {
	resolveUser    *model.User
	resolveProfile *dto.IdentityProfile
	resolveErr     error
	tempUser       *model.User
	tempErr        error
	ensuredUser    *model.User
	ensuredErr     error
}

func (f *fakeSessionService) Resolve(ctx context.Context, token dto.SessionToken) (*model.User, *dto.IdentityProfile, error) {
	return f.resolveUser, f.resolveProfile, f.resolveErr
}

func (f *fakeSessionService) CreateTempUser(req *dto.TempLoginRequest) (*model.User, error) {
	return f.tempUser, f.tempErr
}

func (f *fakeSessionService) EnsureUser(profile *dto.IdentityProfile, userType string) (*model.User, error) {
	return f.ensuredUser, f.ensuredErr
}

func (f *fakeSessionService) SessionCookie(value string, temporary bool) *fiber.Cookie {
	ttl := 60 * 24 * time.Hour
	if temporary {
		ttl = time.Hour
	}
	return &fiber.Cookie{
		Name:     shared.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

func (f *fakeSessionService) ExpiredCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:   shared.SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
}

type fakeUserService struct {
	updated    *model.User
	updateErr  error
	badges     *dto.UserBadgesResponse
	badgesErr  error
	catalog    []model.Badge
	catalogErr error
}

func (f *fakeUserService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	return f.updated, f.updateErr
}

func (f *fakeUserService) GetUserBadges(userID string) (*dto.UserBadgesResponse, error) {
	return f.badges, f.badgesErr
}

func (f *fakeUserService) GetBadgeCatalog() ([]model.Badge, error) {
	return f.catalog, f.catalogErr
}

type fakeCourseService struct {
	courses    []model.Course
	listErr    error
	created    *model.Course
	createErr  error
	published  *model.Course
	publishErr error
	lesson     *model.Lesson
	lessonErr  error
	lessons    []model.Lesson
	lessonsErr error
	owned      *model.Course
	ownedErr   error
}

func (f *fakeCourseService) ListCourses(user *model.User) ([]model.Course, error) {
	return f.courses, f.listErr
}

func (f *fakeCourseService) CreateCourse(user *model.User, req *dto.CreateCourseRequest) (*model.Course, error) {
	return f.created, f.createErr
}

func (f *fakeCourseService) PublishCourse(user *model.User, courseID string) (*model.Course, error) {
	return f.published, f.publishErr
}

func (f *fakeCourseService) CreateLesson(user *model.User, courseID string, req *dto.CreateLessonRequest) (*model.Lesson, error) {
	return f.lesson, f.lessonErr
}

func (f *fakeCourseService) ListLessons(user *model.User, courseID string) ([]model.Lesson, error) {
	return f.lessons, f.lessonsErr
}

func (f *fakeCourseService) GetOwnedCourse(user *model.User, courseID string) (*model.Course, error) {
	return f.owned, f.ownedErr
}

type fakeProgressService struct {
	records   []model.UserProgress
	listErr   error
	record    *model.UserProgress
	recordErr error
}

func (f *fakeProgressService) ListProgress(userID string) ([]model.UserProgress, error) {
	return f.records, f.listErr
}

func (f *fakeProgressService) RecordProgress(user *model.User, req *dto.RecordProgressRequest) (*model.UserProgress, error) {
	return f.record, f.recordErr
}

type fakeMediaService struct {
	url       string
	size      int64
	uploadErr error
}

func (f *fakeMediaService) UploadCourseThumbnail(courseID, contentType string, data []byte) (string, int64, error) {
	return f.url, f.size, f.uploadErr
}

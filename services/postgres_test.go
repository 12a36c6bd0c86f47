package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

func newTestStore(t *testing.T) *PostgresService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	svc := &PostgresService{db: db}
	require.NoError(t, svc.migrate())

	return svc
}

func seedUser(t *testing.T, store *PostgresService, userType string) *model.User {
	t.Helper()

	user, err := store.CreateUser(&model.User{
		Email:     fmt.Sprintf("%s-%d@example.com", userType, time.Now().UnixNano()),
		Name:      "Test " + userType,
		UserType:  userType,
		Language:  "english",
		Theme:     "light",
		GoogleSub: fmt.Sprintf("sub-%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)
	return user
}

func TestCreateUserUpsertsOnSubject(t *testing.T) {
	store := newTestStore(t)

	first, err := store.CreateUser(&model.User{
		Email:     "asha@example.com",
		Name:      "Asha",
		UserType:  shared.RoleChild,
		GoogleSub: "google-sub-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// Second insert for the same subject must converge on the first row
	second, err := store.CreateUser(&model.User{
		Email:     "asha@example.com",
		Name:      "Asha Again",
		UserType:  shared.RoleChild,
		GoogleSub: "google-sub-1",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha", second.Name)

	var count int64
	store.Db().Model(&model.User{}).Where("google_sub = ?", "google-sub-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetUserBySubject(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store, shared.RoleTeacher)

	found, err := store.GetUserBySubject(user.GoogleSub)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.GetUserBySubject("missing-sub")
	assert.Error(t, err)
}

func TestUpdateUserProfilePartial(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store, shared.RoleChild)

	updated, err := store.UpdateUserProfile(user.ID, map[string]interface{}{
		"name":  "New Name",
		"theme": "dark",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "dark", updated.Theme)
	// Untouched columns keep their values
	assert.Equal(t, user.Language, updated.Language)
	assert.Equal(t, user.AvatarID, updated.AvatarID)
}

func TestUpdateUserProfileMissingUser(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateUserProfile("no-such-user", map[string]interface{}{"name": "X"})
	assert.Error(t, err)
}

func TestAddUserCounters(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store, shared.RoleChild)

	require.NoError(t, store.AddUserCounters(user.ID, 5, 3, 1))
	require.NoError(t, store.AddUserCounters(user.ID, 2, 0, 0))

	reloaded, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.TotalStars)
	assert.Equal(t, 3, reloaded.TotalCoins)
	assert.Equal(t, 1, reloaded.TotalBadges)
}

func TestCourseVisibilityQueries(t *testing.T) {
	store := newTestStore(t)
	teacher := seedUser(t, store, shared.RoleTeacher)
	other := seedUser(t, store, shared.RoleTeacher)

	draft, err := store.CreateCourse(&model.Course{Title: "Draft", TeacherID: teacher.ID})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	published, err := store.CreateCourse(&model.Course{Title: "Published", TeacherID: teacher.ID, IsPublished: true})
	require.NoError(t, err)

	_, err = store.CreateCourse(&model.Course{Title: "Other Teacher Draft", TeacherID: other.ID})
	require.NoError(t, err)

	t.Run("TeacherSeesOwnIncludingDrafts", func(t *testing.T) {
		courses, err := store.GetCoursesByTeacher(teacher.ID)
		require.NoError(t, err)
		require.Len(t, courses, 2)
		// Newest first
		assert.Equal(t, published.ID, courses[0].ID)
		assert.Equal(t, draft.ID, courses[1].ID)
	})

	t.Run("PublishedListExcludesDrafts", func(t *testing.T) {
		courses, err := store.GetPublishedCourses()
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, published.ID, courses[0].ID)
	})
}

func TestSetCoursePublished(t *testing.T) {
	store := newTestStore(t)
	teacher := seedUser(t, store, shared.RoleTeacher)

	course, err := store.CreateCourse(&model.Course{Title: "Draft", TeacherID: teacher.ID})
	require.NoError(t, err)
	assert.False(t, course.IsPublished)

	updated, err := store.SetCoursePublished(course.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	visible, err := store.GetPublishedCourses()
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestLessonOrdering(t *testing.T) {
	store := newTestStore(t)
	teacher := seedUser(t, store, shared.RoleTeacher)
	course, err := store.CreateCourse(&model.Course{Title: "C", TeacherID: teacher.ID})
	require.NoError(t, err)

	_, err = store.CreateLesson(&model.Lesson{CourseID: course.ID, Title: "Second", OrderIndex: 1})
	require.NoError(t, err)
	_, err = store.CreateLesson(&model.Lesson{CourseID: course.ID, Title: "First", OrderIndex: 0})
	require.NoError(t, err)

	lessons, err := store.GetCourseLessons(course.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "First", lessons[0].Title)
	assert.Equal(t, "Second", lessons[1].Title)
}

func TestProgressScopedToUser(t *testing.T) {
	store := newTestStore(t)
	alice := seedUser(t, store, shared.RoleChild)
	bob := seedUser(t, store, shared.RoleChild)

	_, err := store.CreateUserProgress(&model.UserProgress{UserID: alice.ID, LessonID: "l1", CourseID: "c1", StarsEarned: 3})
	require.NoError(t, err)
	_, err = store.CreateUserProgress(&model.UserProgress{UserID: bob.ID, LessonID: "l1", CourseID: "c1", StarsEarned: 5})
	require.NoError(t, err)

	aliceRecords, err := store.GetUserProgress(alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceRecords, 1)
	assert.Equal(t, alice.ID, aliceRecords[0].UserID)
	assert.Equal(t, 3, aliceRecords[0].StarsEarned)
}

func TestAwardBadgeIdempotent(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store, shared.RoleChild)

	badge, err := store.CreateBadge(&model.Badge{Name: "First Steps", StarsRequired: 1})
	require.NoError(t, err)

	isNew, err := store.AwardBadge(user.ID, badge.ID)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.AwardBadge(user.ID, badge.ID)
	require.NoError(t, err)
	assert.False(t, isNew)

	badges, err := store.GetUserBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "First Steps", badges[0].Badge.Name)
}

func TestGetEligibleBadges(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateBadge(&model.Badge{Name: "One", StarsRequired: 1})
	require.NoError(t, err)
	_, err = store.CreateBadge(&model.Badge{Name: "Ten", StarsRequired: 10})
	require.NoError(t, err)
	_, err = store.CreateBadge(&model.Badge{Name: "Hundred", StarsRequired: 100})
	require.NoError(t, err)

	eligible, err := store.GetEligibleBadges(12)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, "One", eligible[0].Name)
	assert.Equal(t, "Ten", eligible[1].Name)
}

func TestRateLimitRoundTrip(t *testing.T) {
	store := newTestStore(t)

	missing, err := store.GetRateLimit("1.2.3.4", "temp_login")
	require.NoError(t, err)
	assert.Nil(t, missing)

	rl := &model.RateLimit{
		Identifier:   "1.2.3.4",
		EndpointType: "temp_login",
		RequestCount: 1,
		WindowStart:  time.Now(),
	}
	require.NoError(t, store.SaveRateLimit(rl))

	found, err := store.GetRateLimit("1.2.3.4", "temp_login")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, found.RequestCount)

	found.RequestCount = 2
	found.UpdatedAt = time.Now()
	require.NoError(t, store.UpdateRateLimit(found))

	reread, err := store.GetRateLimit("1.2.3.4", "temp_login")
	require.NoError(t, err)
	assert.Equal(t, 2, reread.RequestCount)
}

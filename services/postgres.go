package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edugram-labs/edugram-api/model"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "edugram"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err := ds.migrate(); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) migrate() error {
	return ds.db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.UserProgress{},
		&model.Badge{},
		&model.UserBadge{},
		&model.RateLimit{},
	)
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

// CreateUser inserts the user with insert-or-ignore semantics keyed on the
// external subject, then re-reads the winning row. Two concurrent first
// logins for the same subject both land on the same user.
func (ds *PostgresService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_sub"}},
		DoNothing: true,
	}).Create(user).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}

	var winner model.User
	if err := ds.db.Where("google_sub = ?", user.GoogleSub).First(&winner).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &winner, nil
}

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserBySubject(subject string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("google_sub = ?", subject).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

// UpdateUserProfile applies only the given columns and bumps updated_at.
func (ds *PostgresService) UpdateUserProfile(userID string, updates map[string]interface{}) (*model.User, error) {
	updates["updated_at"] = time.Now()

	res := ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, ds.HandleError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ds.HandleError(gorm.ErrRecordNotFound)
	}

	return ds.GetUser(userID)
}

// AddUserCounters increments the gamification totals. Counters only ever go
// up; negative deltas are rejected upstream by DTO validation.
func (ds *PostgresService) AddUserCounters(userID string, stars, coins, badges int) error {
	err := ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"total_stars":  gorm.Expr("total_stars + ?", stars),
		"total_coins":  gorm.Expr("total_coins + ?", coins),
		"total_badges": gorm.Expr("total_badges + ?", badges),
		"updated_at":   time.Now(),
	}).Error
	if err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== COURSE METHODS ====================

func (ds *PostgresService) CreateCourse(course *model.Course) (*model.Course, error) {
	if course.ID == "" {
		id, _ := uuid.NewV7()
		course.ID = id.String()
	}
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	if err := ds.db.Create(course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return course, nil
}

func (ds *PostgresService) GetCourse(courseID string) (*model.Course, error) {
	var course model.Course
	if err := ds.db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &course, nil
}

func (ds *PostgresService) GetCoursesByTeacher(teacherID string) ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *PostgresService) GetPublishedCourses() ([]model.Course, error) {
	var courses []model.Course
	if err := ds.db.Where("is_published = ?", true).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return courses, nil
}

func (ds *PostgresService) SetCoursePublished(courseID string, published bool) (*model.Course, error) {
	err := ds.db.Model(&model.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"is_published": published,
		"updated_at":   time.Now(),
	}).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return ds.GetCourse(courseID)
}

func (ds *PostgresService) SetCourseThumbnail(courseID, thumbnailURL string) error {
	err := ds.db.Model(&model.Course{}).Where("id = ?", courseID).Updates(map[string]interface{}{
		"thumbnail_url": thumbnailURL,
		"updated_at":    time.Now(),
	}).Error
	if err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== LESSON METHODS ====================

func (ds *PostgresService) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	now := time.Now()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lesson, nil
}

func (ds *PostgresService) GetCourseLessons(courseID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("course_id = ?", courseID).
		Order("order_index ASC").Find(&lessons).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return lessons, nil
}

// ==================== PROGRESS METHODS ====================

func (ds *PostgresService) CreateUserProgress(progress *model.UserProgress) (*model.UserProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	now := time.Now()
	progress.CreatedAt = now
	progress.UpdatedAt = now

	if err := ds.db.Create(progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return progress, nil
}

func (ds *PostgresService) GetUserProgress(userID string) ([]model.UserProgress, error) {
	var records []model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

// ==================== BADGE METHODS ====================

func (ds *PostgresService) CreateBadge(badge *model.Badge) (*model.Badge, error) {
	if badge.ID == "" {
		id, _ := uuid.NewV7()
		badge.ID = id.String()
	}
	badge.CreatedAt = time.Now()

	if err := ds.db.Create(badge).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badge, nil
}

func (ds *PostgresService) GetBadges() ([]model.Badge, error) {
	var badges []model.Badge
	if err := ds.db.Order("stars_required ASC").Find(&badges).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badges, nil
}

func (ds *PostgresService) GetEligibleBadges(totalStars int) ([]model.Badge, error) {
	var badges []model.Badge
	if err := ds.db.Where("stars_required <= ?", totalStars).
		Order("stars_required ASC").Find(&badges).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return badges, nil
}

func (ds *PostgresService) GetUserBadges(userID string) ([]model.UserBadge, error) {
	var userBadges []model.UserBadge
	if err := ds.db.Preload("Badge").Where("user_id = ?", userID).
		Order("earned_date DESC").Find(&userBadges).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return userBadges, nil
}

// AwardBadge is idempotent: the unique (user_id, badge_id) index plus
// insert-or-ignore means re-awarding is a no-op. Returns true when a new
// row was written.
func (ds *PostgresService) AwardBadge(userID, badgeID string) (bool, error) {
	id, _ := uuid.NewV7()
	userBadge := &model.UserBadge{
		ID:         id.String(),
		UserID:     userID,
		BadgeID:    badgeID,
		EarnedDate: time.Now(),
		CreatedAt:  time.Now(),
	}

	res := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(userBadge)
	if res.Error != nil {
		return false, ds.HandleError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ==================== RATE LIMIT METHODS ====================

func (ds *PostgresService) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit

	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rateLimit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rateLimit, nil
}

func (ds *PostgresService) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, _ := uuid.NewV7()
		rateLimit.ID = id.String()
	}

	now := time.Now()
	if rateLimit.CreatedAt.IsZero() {
		rateLimit.CreatedAt = now
	}
	rateLimit.UpdatedAt = now

	if err := ds.db.Save(rateLimit).Error; err != nil {
		return err
	}
	return nil
}

func (ds *PostgresService) UpdateRateLimit(rateLimit *model.RateLimit) error {
	return ds.db.Model(rateLimit).Where("id = ?", rateLimit.ID).Updates(map[string]interface{}{
		"request_count": rateLimit.RequestCount,
		"blocked_until": rateLimit.BlockedUntil,
		"updated_at":    rateLimit.UpdatedAt,
	}).Error
}

// CleanupOldRecords removes rate limit rows older than 7 days that are not
// currently blocked.
func (ds *PostgresService) CleanupOldRecords() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	now := time.Now()

	return ds.db.Where("created_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&model.RateLimit{}).Error
}

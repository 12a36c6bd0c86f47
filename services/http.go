package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	docs "github.com/edugram-labs/edugram-api/docs"
	"github.com/edugram-labs/edugram-api/services/handlers"
	"github.com/edugram-labs/edugram-api/shared"
)

type HttpService struct {
	context.DefaultService

	sessionSvc   *SessionService
	rateLimitSvc *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.sessionSvc = svc.Service(SESSION_SVC).(*SessionService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	identitySvc := svc.Service(IDENTITY_SVC).(*IdentityService)
	userSvc := svc.Service(USER_SVC).(*UserService)
	courseSvc := svc.Service(COURSE_SVC).(*CourseService)
	progressSvc := svc.Service(PROGRESS_SVC).(*ProgressService)
	mediaSvc := svc.Service(MEDIA_SVC).(*MediaService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	if monSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		app.Use(MonitoringMiddleware(monSvc))
	}

	app.Use(svc.rateLimitSvc.IPRateLimit())

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	authHandler := handlers.NewAuthHandler(identitySvc, svc.sessionSvc)
	userHandler := handlers.NewUserHandler(userSvc, svc.sessionSvc)
	courseHandler := handlers.NewCourseHandler(courseSvc, mediaSvc)
	progressHandler := handlers.NewProgressHandler(progressSvc)

	requireSession := svc.sessionSvc.RequireSession()

	api := app.Group("/api")

	api.Get("/oauth/google/redirect_url", authHandler.GetRedirectURL)
	api.Post("/temp-login", svc.rateLimitSvc.RateLimit("temp_login"), authHandler.TempLogin)
	api.Post("/sessions", svc.rateLimitSvc.RateLimit("session_exchange"), authHandler.CreateSession)
	api.Get("/logout", authHandler.Logout)

	// /users/me resolves the session itself so a dangling temp cookie can
	// yield 404 instead of the middleware's blanket 401
	api.Get("/users/me", userHandler.GetCurrentUser)
	api.Put("/users/me", requireSession, svc.rateLimitSvc.RateLimit("profile_update"), userHandler.UpdateProfile)
	api.Get("/users/me/badges", requireSession, userHandler.GetUserBadges)
	api.Get("/badges", requireSession, userHandler.GetBadgeCatalog)

	api.Get("/courses", requireSession, courseHandler.ListCourses)
	api.Post("/courses", requireSession, svc.rateLimitSvc.RateLimit("course_create"), courseHandler.CreateCourse)
	api.Post("/courses/:courseId/publish", requireSession, courseHandler.PublishCourse)
	api.Get("/courses/:courseId/lessons", requireSession, courseHandler.ListLessons)
	api.Post("/courses/:courseId/lessons", requireSession, svc.rateLimitSvc.RateLimit("course_create"), courseHandler.CreateLesson)
	api.Post("/courses/:courseId/thumbnail", requireSession, svc.rateLimitSvc.RateLimit("thumbnail_upload"), courseHandler.UploadThumbnail)

	api.Get("/progress", requireSession, progressHandler.ListProgress)
	api.Post("/progress", requireSession, svc.rateLimitSvc.RateLimit("progress_record"), progressHandler.RecordProgress)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if _, ok := shared.GetAppError(err); !ok && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.As(err, &fiberErr) {
		log.WithError(err).Error("Unhandled request error")
	}
	return shared.ErrorHandler(c, err)
}

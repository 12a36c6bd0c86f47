package services

import (
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/shared"
)

// ProgressService owns the per-user progress ledger. Every read and write
// is scoped to the authenticated caller; there is no cross-user access.
type ProgressService struct {
	appContext.DefaultService
	sqlSvc        *PostgresService
	monitoringSvc *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	if s := svc.Service(MONITORING_SVC); s != nil {
		svc.monitoringSvc = s.(*MonitoringService)
	}
	return nil
}

// ListProgress returns the caller's progress records, newest first.
func (svc *ProgressService) ListProgress(userID string) ([]model.UserProgress, error) {
	return svc.sqlSvc.GetUserProgress(userID)
}

// RecordProgress appends a ledger entry for the caller, bumps their star
// and coin totals, and awards any badges the new total unlocks. The course
// id is validated; lesson ids are opaque to the backend.
func (svc *ProgressService) RecordProgress(user *model.User, req *dto.RecordProgressRequest) (*model.UserProgress, error) {
	course, err := svc.sqlSvc.GetCourse(req.CourseID)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "unknown course")
	}
	if !course.IsPublished && course.TeacherID != user.ID {
		return nil, shared.NewBadRequestError(nil, "unknown course")
	}

	progress := &model.UserProgress{
		UserID:      user.ID,
		LessonID:    req.LessonID,
		CourseID:    req.CourseID,
		IsCompleted: req.IsCompleted,
		StarsEarned: req.StarsEarned,
		CoinsEarned: req.CoinsEarned,
	}
	if req.IsCompleted {
		now := time.Now()
		progress.CompletionDate = &now
	}

	created, err := svc.sqlSvc.CreateUserProgress(progress)
	if err != nil {
		return nil, err
	}

	newBadges := 0
	if req.StarsEarned > 0 {
		newBadges, err = svc.awardEligibleBadges(user.ID, user.TotalStars+req.StarsEarned)
		if err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Badge award pass failed")
			newBadges = 0
		}
	}

	if req.StarsEarned > 0 || req.CoinsEarned > 0 || newBadges > 0 {
		if err := svc.sqlSvc.AddUserCounters(user.ID, req.StarsEarned, req.CoinsEarned, newBadges); err != nil {
			return nil, err
		}
	}

	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordProgressWrite()
	}

	log.WithFields(log.Fields{
		"user_id":   user.ID,
		"lesson_id": req.LessonID,
		"stars":     req.StarsEarned,
		"badges":    newBadges,
	}).Info("Progress recorded")

	return created, nil
}

func (svc *ProgressService) awardEligibleBadges(userID string, totalStars int) (int, error) {
	eligible, err := svc.sqlSvc.GetEligibleBadges(totalStars)
	if err != nil {
		return 0, err
	}

	awarded := 0
	for _, badge := range eligible {
		isNew, err := svc.sqlSvc.AwardBadge(userID, badge.ID)
		if err != nil {
			return awarded, err
		}
		if isNew {
			awarded++
		}
	}
	return awarded, nil
}

package services

import (
	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edugram-labs/edugram-api/dto"
	"github.com/edugram-labs/edugram-api/model"
)

type UserService struct {
	appContext.DefaultService
	sqlSvc *PostgresService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *UserService) GetUser(userID string) (*model.User, error) {
	return svc.sqlSvc.GetUser(userID)
}

// UpdateProfile applies only the fields present in the request; omitted
// fields keep their stored values.
func (svc *UserService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*model.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarID != nil {
		updates["avatar_id"] = *req.AvatarID
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}

	if len(updates) == 0 {
		return svc.sqlSvc.GetUser(userID)
	}

	user, err := svc.sqlSvc.UpdateUserProfile(userID, updates)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"fields":  len(updates),
	}).Info("Profile updated")

	return user, nil
}

func (svc *UserService) GetUserBadges(userID string) (*dto.UserBadgesResponse, error) {
	badges, err := svc.sqlSvc.GetUserBadges(userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserBadgesResponse{
		TotalBadges: len(badges),
		Badges:      badges,
	}, nil
}

func (svc *UserService) GetBadgeCatalog() ([]model.Badge, error) {
	return svc.sqlSvc.GetBadges()
}

package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userNotFound    = "user not found"
	profileNotFound = "owner profile not found"
)

// Service manages the equipment owner's company profile.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*DashboardResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	DB  *db.Client
	Now func() time.Time
}

type service struct {
	tx   txRunner
	conn *gorm.DB
	now  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{tx: params.DB, conn: params.DB.DB(), now: now}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	return load(ctx, s.conn, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*DashboardResponse, error) {
	var resp *DashboardResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			return db.MapError(err, userNotFound, "load user")
		}

		account := map[string]any{}
		for column, value := range map[string]*string{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"phone":      req.Phone,
			"location":   req.Location,
		} {
			if value != nil {
				account[column] = strings.TrimSpace(*value)
			}
		}
		if len(account) > 0 {
			account["updated_at"] = s.now().UTC()
			if _, err := userRepo.UpdateFields(ctx, userID, account); err != nil {
				return db.MapError(err, userNotFound, "update user")
			}
		}

		var profile models.EquipmentOwner
		err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return db.MapError(err, profileNotFound, "load owner profile")
		}
		profile.UserID = userID
		if req.CompanyName != nil {
			profile.CompanyName = strings.TrimSpace(*req.CompanyName)
		}
		if req.BusinessLicense != nil {
			profile.BusinessLicense = strings.TrimSpace(*req.BusinessLicense)
		}
		if req.Description != nil {
			profile.Description = strings.TrimSpace(*req.Description)
		}
		if err := tx.WithContext(ctx).Save(&profile).Error; err != nil {
			return db.MapError(err, profileNotFound, "save owner profile")
		}

		resp, err = load(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func load(ctx context.Context, conn *gorm.DB, userID uuid.UUID) (*DashboardResponse, error) {
	user, err := users.NewRepository(conn).FindByID(ctx, userID)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "load user")
	}
	resp := &DashboardResponse{User: users.FromModel(user)}

	var profile models.EquipmentOwner
	err = conn.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		resp.Profile = ProfileFromModel(&profile)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, db.MapError(err, profileNotFound, "load owner profile")
	}

	list, err := equipment.NewRepository(conn).ListByOwner(ctx, userID)
	if err != nil {
		return nil, db.MapError(err, profileNotFound, "list own equipment")
	}
	resp.Equipment = equipment.FromModels(list)
	return resp, nil
}

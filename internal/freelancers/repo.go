package freelancers

import (
	"context"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists job seeker profiles.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserID returns gorm.ErrRecordNotFound when the user has no profile yet.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.JobSeeker, error) {
	var profile models.JobSeeker
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save inserts a new profile or overwrites every column of an existing one.
func (r *Repository) Save(ctx context.Context, profile *models.JobSeeker) error {
	if profile.ID == uuid.Nil {
		return r.db.WithContext(ctx).Create(profile).Error
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

// SetCertificates replaces the certificate list of a user's profile.
func (r *Repository) SetCertificates(ctx context.Context, userID uuid.UUID, certificates []string) error {
	return r.db.WithContext(ctx).
		Model(&models.JobSeeker{}).
		Where("user_id = ?", userID).
		Update("certificates", dbtypes.StringList(certificates)).Error
}

package models

import (
	"time"

	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobSeeker is the freelancer profile attached 1:1 to a user.
type JobSeeker struct {
	ID             uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	Title          string                    `gorm:"column:title;not null;default:''"`
	Experience     string                    `gorm:"column:experience;not null;default:''"`
	ExpectedSalary decimal.NullDecimal       `gorm:"column:expected_salary;type:numeric(12,2)"`
	SalaryCurrency string                    `gorm:"column:salary_currency;not null;default:'USD'"`
	Bio            string                    `gorm:"column:bio;not null;default:''"`
	Availability   enums.ProfileAvailability `gorm:"column:availability;type:text;not null;default:'available'"`
	AvailableFrom  *time.Time                `gorm:"column:available_from;type:date"`
	CVFilePath     *string                   `gorm:"column:cv_file_path"`
	Certificates   dbtypes.StringList        `gorm:"column:certificates;type:jsonb;not null;default:'[]'"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (JobSeeker) TableName() string { return "job_seekers" }

func (j *JobSeeker) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Availability == "" {
		j.Availability = enums.ProfileAvailabilityAvailable
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = "USD"
	}
	if j.Certificates == nil {
		j.Certificates = dbtypes.StringList{}
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentOwner holds the company metadata of an owner-flagged user.
type EquipmentOwner struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName     string    `gorm:"column:company_name;not null;default:''"`
	BusinessLicense string    `gorm:"column:business_license;not null;default:''"`
	Description     string    `gorm:"column:description;not null;default:''"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (EquipmentOwner) TableName() string { return "equipment_owners" }

func (o *EquipmentOwner) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

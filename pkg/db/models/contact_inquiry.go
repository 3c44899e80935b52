package models

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactInquiry is an inbound rental request for a listing.
type ContactInquiry struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EquipmentID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	RequesterName  string              `gorm:"column:requester_name;not null"`
	RequesterEmail string              `gorm:"column:requester_email;not null"`
	RequesterPhone string              `gorm:"column:requester_phone;not null;default:''"`
	Message        string              `gorm:"column:message;not null"`
	Status         enums.InquiryStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (ContactInquiry) TableName() string { return "contact_inquiries" }

func (c *ContactInquiry) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = enums.InquiryStatusPending
	}
	return nil
}

package models

import (
	"time"

	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipment is a rental listing. Contact fields are copied from the owner when
// the listing is created.
type Equipment struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name          string                      `gorm:"column:name;not null"`
	Type          string                      `gorm:"column:type;not null"`
	Location      string                      `gorm:"column:location;not null;default:''"`
	ContactPerson string                      `gorm:"column:contact_person;not null"`
	ContactNumber string                      `gorm:"column:contact_number;not null"`
	ContactEmail  string                      `gorm:"column:contact_email;not null"`
	Availability  enums.EquipmentAvailability `gorm:"column:availability;type:text;not null;default:'available'"`
	Images        dbtypes.StringList          `gorm:"column:images;type:jsonb;not null;default:'[]'"`
	IsActive      bool                        `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Equipment) TableName() string { return "equipment" }

func (e *Equipment) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Availability == "" {
		e.Availability = enums.EquipmentAvailabilityAvailable
	}
	if e.Images == nil {
		e.Images = dbtypes.StringList{}
	}
	return nil
}

package models

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the canonical identity entity.
type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserName         string          `gorm:"column:user_name;type:text;not null;uniqueIndex"`
	Email            string          `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash     string          `gorm:"column:password_hash;not null"`
	FirstName        string          `gorm:"column:first_name;not null;default:''"`
	LastName         string          `gorm:"column:last_name;not null;default:''"`
	Phone            string          `gorm:"column:phone;not null;default:''"`
	Location         string          `gorm:"column:location;not null;default:''"`
	IsFreelancer     bool            `gorm:"column:is_freelancer;not null;default:false"`
	IsEquipmentOwner bool            `gorm:"column:is_equipment_owner;not null;default:false"`
	RolesSelected    bool            `gorm:"column:roles_selected;not null;default:false"`
	UserType         *enums.UserType `gorm:"column:user_type;type:text"`
	ResetToken       *string         `gorm:"column:reset_token"`
	ResetTokenExpiry *time.Time      `gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasBothRoles reports whether the user is both a freelancer and an equipment owner.
func (u User) HasBothRoles() bool {
	return u.IsFreelancer && u.IsEquipmentOwner
}

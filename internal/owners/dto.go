package owners

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/google/uuid"
)

type ProfileDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	CompanyName     string    `json:"companyName"`
	BusinessLicense string    `json:"businessLicense"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ProfileFromModel(p *models.EquipmentOwner) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		BusinessLicense: p.BusinessLicense,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// DashboardResponse is the owner's view: account, company profile and every
// listing including inactive ones.
type DashboardResponse struct {
	User      *users.UserDTO  `json:"user"`
	Profile   *ProfileDTO     `json:"profile"`
	Equipment []equipment.DTO `json:"equipment"`
}

// UpdateProfileRequest edits company details and account contact fields together.
type UpdateProfileRequest struct {
	CompanyName     *string `json:"companyName,omitempty" validate:"omitempty,max=255"`
	BusinessLicense *string `json:"businessLicense,omitempty" validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty"`
	FirstName       *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location        *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

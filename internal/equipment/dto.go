package equipment

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// MaxImages caps the image references stored per listing.
const MaxImages = 5

// DTO is the public shape of a listing.
type DTO struct {
	ID            uuid.UUID                   `json:"id"`
	UserID        uuid.UUID                   `json:"userId"`
	Name          string                      `json:"name"`
	Type          string                      `json:"type"`
	Location      string                      `json:"location"`
	ContactPerson string                      `json:"contactPerson"`
	ContactNumber string                      `json:"contactNumber"`
	ContactEmail  string                      `json:"contactEmail"`
	Availability  enums.EquipmentAvailability `json:"availability"`
	Images        []string                    `json:"images"`
	IsActive      bool                        `json:"isActive"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

func FromModel(e *models.Equipment) *DTO {
	if e == nil {
		return nil
	}
	return &DTO{
		ID:            e.ID,
		UserID:        e.UserID,
		Name:          e.Name,
		Type:          e.Type,
		Location:      e.Location,
		ContactPerson: e.ContactPerson,
		ContactNumber: e.ContactNumber,
		ContactEmail:  e.ContactEmail,
		Availability:  e.Availability,
		Images:        append([]string{}, e.Images...),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromModels(list []models.Equipment) []DTO {
	out := make([]DTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

// CreateRequest lists a new piece of equipment. Blank contact fields default
// to the owner's account details.
type CreateRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Type          string   `json:"type" validate:"required,min=2,max=100"`
	Location      string   `json:"location" validate:"omitempty,max=255"`
	ContactPerson string   `json:"contactPerson" validate:"omitempty,min=2,max=100"`
	ContactNumber string   `json:"contactNumber" validate:"omitempty,min=8,max=20"`
	ContactEmail  string   `json:"contactEmail" validate:"omitempty,email"`
	Availability  string   `json:"availability" validate:"omitempty,oneof=available on-hire"`
	Images        []string `json:"images" validate:"omitempty,max=5,dive,required"`
}

// CreatedResponse is returned after a listing is stored.
type CreatedResponse struct {
	ID           uuid.UUID                   `json:"id"`
	Name         string                      `json:"name"`
	Type         string                      `json:"type"`
	Availability enums.EquipmentAvailability `json:"availability"`
}

// UpdateRequest edits a listing. Contact fields stay locked; see RefreshContact.
type UpdateRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Type         *string  `json:"type,omitempty" validate:"omitempty,min=2,max=100"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Availability *string  `json:"availability,omitempty" validate:"omitempty,oneof=available on-hire"`
	Images       []string `json:"images,omitempty" validate:"omitempty,max=5,dive,required"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// SearchQuery is the public listing filter. Availability "all" or blank
// disables the availability filter.
type SearchQuery struct {
	Search       string
	Location     string
	Availability string
	Type         string
	Limit        int
	Offset       int
}

type SearchFilters struct {
	Search       *string `json:"search"`
	Location     *string `json:"location"`
	Availability string  `json:"availability"`
	Type         *string `json:"type,omitempty"`
}

type SearchResult struct {
	Equipment []DTO         `json:"equipment"`
	Count     int           `json:"count"`
	Filters   SearchFilters `json:"filters"`
}

type LocationsResult struct {
	Locations []string `json:"locations"`
	Count     int      `json:"count"`
}

// Stats summarizes the active catalogue.
type Stats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	OnHire    int64 `json:"onHire"`
	Locations int64 `json:"locations"`
	Types     int64 `json:"types"`
}

// FeaturedDTO is the card shown on the landing page.
type FeaturedDTO struct {
	ID           uuid.UUID                   `json:"id"`
	Name         string                      `json:"name"`
	Type         string                      `json:"type"`
	Location     string                      `json:"location"`
	Availability enums.EquipmentAvailability `json:"availability"`
	Image        *string                     `json:"image"`
}

func featuredFromModel(e *models.Equipment) FeaturedDTO {
	dto := FeaturedDTO{
		ID:           e.ID,
		Name:         e.Name,
		Type:         e.Type,
		Location:     e.Location,
		Availability: e.Availability,
	}
	if len(e.Images) > 0 {
		first := e.Images[0]
		dto.Image = &first
	}
	return dto
}

type ListResult struct {
	Equipment []DTO `json:"equipment"`
	Count     int   `json:"count"`
}

// InquiryDTO is a rental inquiry as seen by the listing owner.
type InquiryDTO struct {
	ID             uuid.UUID           `json:"id"`
	EquipmentID    uuid.UUID           `json:"equipmentId"`
	EquipmentName  string              `json:"equipmentName,omitempty"`
	RequesterName  string              `json:"requesterName"`
	RequesterEmail string              `json:"requesterEmail"`
	RequesterPhone string              `json:"requesterPhone"`
	Message        string              `json:"message"`
	Status         enums.InquiryStatus `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func InquiryFromModel(c *models.ContactInquiry, equipmentName string) *InquiryDTO {
	if c == nil {
		return nil
	}
	return &InquiryDTO{
		ID:             c.ID,
		EquipmentID:    c.EquipmentID,
		EquipmentName:  equipmentName,
		RequesterName:  c.RequesterName,
		RequesterEmail: c.RequesterEmail,
		RequesterPhone: c.RequesterPhone,
		Message:        c.Message,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type InquiryListResult struct {
	Inquiries []InquiryDTO `json:"inquiries"`
	Count     int          `json:"count"`
}

type UpdateInquiryRequest struct {
	Status string `json:"status" validate:"required,oneof=pending responded resolved"`
}

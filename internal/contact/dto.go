package contact

import (
	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/google/uuid"
)

// EquipmentInquiryRequest is a rental inquiry sent from a public listing.
type EquipmentInquiryRequest struct {
	EquipmentID uuid.UUID `json:"equipmentId" validate:"required"`
	Name        string    `json:"name" validate:"required,min=2"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message" validate:"required,min=10"`
}

type EquipmentInquiryResult struct {
	Message string                `json:"message"`
	Inquiry *equipment.InquiryDTO `json:"inquiry"`
}

type SenderInfo struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company"`
}

// FreelancerContactRequest is a recruiter's message to a candidate.
type FreelancerContactRequest struct {
	FreelancerID uuid.UUID  `json:"freelancerId" validate:"required"`
	SenderInfo   SenderInfo `json:"senderInfo" validate:"required"`
	Subject      string     `json:"subject" validate:"required,min=3"`
	Message      string     `json:"message" validate:"required,min=10"`
}

type FreelancerContactResult struct {
	Message      string    `json:"message"`
	FreelancerID uuid.UUID `json:"freelancerId"`
}

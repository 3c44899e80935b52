package notifications

import (
	"fmt"
	"time"
)

// Kind names a transactional email. It doubles as the template file name and
// the metrics label.
type Kind string

const (
	KindWelcome          Kind = "welcome"
	KindRoleSelection    Kind = "role_selection"
	KindPasswordReset    Kind = "password_reset"
	KindPasswordChanged  Kind = "password_changed"
	KindProfileCompleted Kind = "profile_completed"
	KindProfileUpdated   Kind = "profile_updated"
	KindEquipmentListed  Kind = "equipment_listed"
	KindRentalInquiry    Kind = "rental_inquiry"
	KindCandidateContact Kind = "candidate_contact"
)

var allKinds = []Kind{
	KindWelcome,
	KindRoleSelection,
	KindPasswordReset,
	KindPasswordChanged,
	KindProfileCompleted,
	KindProfileUpdated,
	KindEquipmentListed,
	KindRentalInquiry,
	KindCandidateContact,
}

var defaultSubjects = map[Kind]string{
	KindWelcome:          "Welcome to TalentConnect! Your Account is Ready",
	KindRoleSelection:    "Your TalentConnect roles are set",
	KindPasswordReset:    "Your Password Reset Code - TalentConnect",
	KindPasswordChanged:  "Password Successfully Changed - TalentConnect",
	KindProfileCompleted: "Your TalentConnect profile is complete",
	KindProfileUpdated:   "Your TalentConnect profile was updated",
	KindEquipmentListed:  "Equipment Successfully Listed - TalentConnect",
}

// Message is a request to send one email. Subject overrides the kind's default.
type Message struct {
	Kind    Kind
	To      string
	ReplyTo string
	Subject string
	Data    any
}

// Email is a rendered message ready for a Sender.
type Email struct {
	Kind    Kind
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

type WelcomeData struct {
	Name     string
	UserName string
}

type RoleSelectionData struct {
	Name             string
	IsFreelancer     bool
	IsEquipmentOwner bool
	UserType         string
}

type PasswordResetData struct {
	Name             string
	Code             string
	ExpiresInMinutes int
}

type PasswordChangedData struct {
	Name      string
	ChangedAt time.Time
}

type ProfileData struct {
	Name  string
	Title string
}

type EquipmentListedData struct {
	OwnerName     string
	EquipmentName string
	EquipmentType string
	Location      string
	Availability  string
}

type RentalInquiryData struct {
	EquipmentName  string
	ContactPerson  string
	RequesterName  string
	RequesterEmail string
	RequesterPhone string
	Message        string
}

type CandidateContactData struct {
	CandidateName string
	SenderName    string
	SenderEmail   string
	SenderCompany string
	Subject       string
	Message       string
}

// RentalInquirySubject is the subject line sent to a listing contact.
func RentalInquirySubject(equipmentName, requesterName string) string {
	return fmt.Sprintf("Rental Inquiry: %s - from %s", equipmentName, requesterName)
}

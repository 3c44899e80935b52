package freelancers

import (
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// MaxNewCertificates caps the certificate references accepted per update.
const MaxNewCertificates = 5

// MaxExpectedSalary is the largest salary the numeric(12,2) column can hold.
var MaxExpectedSalary = decimal.RequireFromString("9999999999.99")

// ProfileDTO is the public shape of a job seeker profile.
type ProfileDTO struct {
	ID             uuid.UUID                 `json:"id"`
	UserID         uuid.UUID                 `json:"userId"`
	Title          string                    `json:"title"`
	Experience     string                    `json:"experience"`
	ExpectedSalary *decimal.Decimal          `json:"expectedSalary"`
	SalaryCurrency string                    `json:"salaryCurrency"`
	Bio            string                    `json:"bio"`
	Availability   enums.ProfileAvailability `json:"availability"`
	AvailableFrom  *string                   `json:"availableFrom"`
	CVFilePath     *string                   `json:"cvFilePath"`
	Certificates   []string                  `json:"certificates"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

func ProfileFromModel(p *models.JobSeeker) *ProfileDTO {
	if p == nil {
		return nil
	}
	dto := &ProfileDTO{
		ID:             p.ID,
		UserID:         p.UserID,
		Title:          p.Title,
		Experience:     p.Experience,
		SalaryCurrency: p.SalaryCurrency,
		Bio:            p.Bio,
		Availability:   p.Availability,
		CVFilePath:     p.CVFilePath,
		Certificates:   append([]string{}, p.Certificates...),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.ExpectedSalary.Valid {
		salary := p.ExpectedSalary.Decimal
		dto.ExpectedSalary = &salary
	}
	if p.AvailableFrom != nil {
		formatted := p.AvailableFrom.Format(dateLayout)
		dto.AvailableFrom = &formatted
	}
	return dto
}

// DashboardResponse pairs the account with its freelancer profile. Profile is
// nil until one exists.
type DashboardResponse struct {
	User    *users.UserDTO `json:"user"`
	Profile *ProfileDTO    `json:"profile"`
}

// UpdateProfileRequest carries the dashboard edit. Nil fields keep their stored value.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	UserName  *string `json:"userName,omitempty" validate:"omitempty,username"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=255"`

	Title          *string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Experience     *string          `json:"experience,omitempty" validate:"omitempty,max=100"`
	ExpectedSalary *decimal.Decimal `json:"expectedSalary,omitempty"`
	SalaryCurrency *string          `json:"salaryCurrency,omitempty" validate:"omitempty,len=3,alpha"`
	Bio            *string          `json:"bio,omitempty"`
	Availability   *string          `json:"availability,omitempty" validate:"omitempty,oneof=available busy"`
	AvailableFrom  *string          `json:"availableFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`

	CVFilePath           *string  `json:"cvFilePath,omitempty" validate:"omitempty,url"`
	NewCertificates      []string `json:"newCertificates,omitempty" validate:"omitempty,max=5,dive,required,url"`
	ExistingCertificates []string `json:"existingCertificates,omitempty" validate:"omitempty,dive,required"`
	ReplaceCertificates  bool     `json:"replaceCertificates"`
}

// DeleteCertificateRequest names the certificate reference to drop.
type DeleteCertificateRequest struct {
	CertificateURL string `json:"certificateUrl"`
}

type DeleteCertificateResult struct {
	Message      string   `json:"message"`
	Certificates []string `json:"certificates"`
}

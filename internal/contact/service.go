package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/talentconnect-backend/internal/equipment"
	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/internal/search"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	equipmentNotFound  = "equipment not found"
	freelancerNotFound = "freelancer not found"
)

var validate = validator.New()

// Service relays inbound messages from visitors to listing contacts and candidates.
type Service interface {
	EquipmentInquiry(ctx context.Context, req EquipmentInquiryRequest) (*EquipmentInquiryResult, error)
	ContactFreelancer(ctx context.Context, req FreelancerContactRequest) (*FreelancerContactResult, error)
}

type ServiceParams struct {
	DB       *db.Client
	Notifier notifications.Notifier
	Logger   *logger.Logger
}

type service struct {
	equipment   *equipment.Repository
	freelancers *search.Repository
	notifier    notifications.Notifier
	logg        *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		equipment:   equipment.NewRepository(params.DB.DB()),
		freelancers: search.NewRepository(params.DB.DB()),
		notifier:    params.Notifier,
		logg:        params.Logger,
	}, nil
}

func (s *service) EquipmentInquiry(ctx context.Context, req EquipmentInquiryRequest) (*EquipmentInquiryResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if err := checkRequired(map[string]string{"equipmentId": idValue(req.EquipmentID), "name": req.Name, "message": req.Message}, req.Email); err != nil {
		return nil, err
	}

	item, err := s.equipment.FindActiveByID(ctx, req.EquipmentID)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "load equipment")
	}

	inquiry := &models.ContactInquiry{
		EquipmentID:    item.ID,
		RequesterName:  req.Name,
		RequesterEmail: req.Email,
		RequesterPhone: req.Phone,
		Message:        req.Message,
	}
	if err := s.equipment.CreateInquiry(ctx, inquiry); err != nil {
		return nil, db.MapError(err, equipmentNotFound, "create inquiry")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"equipment_id": item.ID.String(), "inquiry_id": inquiry.ID.String()})
	s.logg.Info(logCtx, "contact.equipment_inquiry")

	s.notifier.Notify(ctx, notifications.Message{
		Kind:    notifications.KindRentalInquiry,
		To:      item.ContactEmail,
		ReplyTo: req.Email,
		Subject: notifications.RentalInquirySubject(item.Name, req.Name),
		Data: notifications.RentalInquiryData{
			EquipmentName:  item.Name,
			ContactPerson:  item.ContactPerson,
			RequesterName:  req.Name,
			RequesterEmail: req.Email,
			RequesterPhone: req.Phone,
			Message:        req.Message,
		},
	})

	return &EquipmentInquiryResult{
		Message: "inquiry sent to the equipment owner",
		Inquiry: equipment.InquiryFromModel(inquiry, item.Name),
	}, nil
}

func (s *service) ContactFreelancer(ctx context.Context, req FreelancerContactRequest) (*FreelancerContactResult, error) {
	sender := SenderInfo{
		Name:    strings.TrimSpace(req.SenderInfo.Name),
		Email:   strings.TrimSpace(req.SenderInfo.Email),
		Company: strings.TrimSpace(req.SenderInfo.Company),
	}
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if err := checkRequired(map[string]string{"freelancerId": idValue(req.FreelancerID), "senderInfo.name": sender.Name, "subject": subject, "message": message}, sender.Email); err != nil {
		return nil, err
	}

	candidate, err := s.freelancers.FindByUserID(ctx, req.FreelancerID)
	if err != nil {
		return nil, db.MapError(err, freelancerNotFound, "load freelancer")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"freelancer_id": candidate.UserID.String()})
	s.logg.Info(logCtx, "contact.freelancer_message")

	name := candidate.FirstName
	if name == "" {
		name = candidate.UserName
	}
	s.notifier.Notify(ctx, notifications.Message{
		Kind:    notifications.KindCandidateContact,
		To:      candidate.Email,
		ReplyTo: sender.Email,
		Subject: subject,
		Data: notifications.CandidateContactData{
			CandidateName: name,
			SenderName:    sender.Name,
			SenderEmail:   sender.Email,
			SenderCompany: sender.Company,
			Subject:       subject,
			Message:       message,
		},
	})

	return &FreelancerContactResult{Message: "message sent to the freelancer", FreelancerID: candidate.UserID}, nil
}

func idValue(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

// checkRequired reports every blank field plus a malformed email in one
// validation error.
func checkRequired(fields map[string]string, email string) error {
	details := map[string]any{}
	for name, value := range fields {
		if value == "" {
			details[name] = "is required"
		}
	}
	if email == "" {
		details["email"] = "is required"
	} else if validate.Var(email, "email") != nil {
		details["email"] = "must be a valid email"
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "missing or invalid contact fields").WithDetails(details)
}

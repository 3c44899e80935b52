package freelancers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/media"
	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	userNotFound        = "user not found"
	profileNotFound     = "profile not found"
	certificateNotFound = "certificate not found"
)

// Service manages the freelancer dashboard.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*DashboardResponse, error)
	DeleteCertificate(ctx context.Context, userID uuid.UUID, certificateURL string) (*DeleteCertificateResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	DB       *db.Client
	Media    storage.Store
	Notifier notifications.Notifier
	Logger   *logger.Logger
}

type service struct {
	tx       txRunner
	users    *users.Repository
	profiles *Repository
	media    storage.Store
	notifier notifications.Notifier
	logg     *logger.Logger
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
	store := params.Media
	if store == nil {
		store = storage.Disabled{}
	}
	return &service{
		tx:       params.DB,
		users:    users.NewRepository(params.DB.DB()),
		profiles: NewRepository(params.DB.DB()),
		media:    store,
		notifier: params.Notifier,
		logg:     params.Logger,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "load user")
	}
	resp := &DashboardResponse{User: users.FromModel(user)}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		resp.Profile = ProfileFromModel(profile)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, db.MapError(err, profileNotFound, "load profile")
	}
	return resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*DashboardResponse, error) {
	if len(req.NewCertificates) > MaxNewCertificates {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "at most %d certificates can be added at once", MaxNewCertificates)
	}
	accountFields, err := accountUpdates(req)
	if err != nil {
		return nil, err
	}

	var (
		resp      *DashboardResponse
		completed bool
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		profileRepo := NewRepository(tx)

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			return db.MapError(err, userNotFound, "load user")
		}

		email, _ := accountFields["email"].(string)
		userName, _ := accountFields["user_name"].(string)
		field, err := userRepo.FindConflict(ctx, userID, email, userName)
		if err != nil {
			return db.MapError(err, userNotFound, "check existing user")
		}
		if field != "" {
			return conflictError(field)
		}

		if len(accountFields) > 0 {
			accountFields["updated_at"] = time.Now().UTC()
			if _, err := userRepo.UpdateFields(ctx, userID, accountFields); err != nil {
				if field := users.UniqueViolationField(err); field != "" {
					return conflictError(field)
				}
				if db.IsUniqueViolation(err, "") {
					return pkgerrors.New(pkgerrors.CodeConflict, "username or email already exists")
				}
				return db.MapError(err, userNotFound, "update user")
			}
		}

		profile, err := profileRepo.FindByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return db.MapError(err, profileNotFound, "load profile")
			}
			profile = &models.JobSeeker{UserID: userID}
		}
		hadTitle := strings.TrimSpace(profile.Title) != ""

		if err := applyProfile(profile, req); err != nil {
			return err
		}
		completed = !hadTitle && profile.Title != ""

		if err := profileRepo.Save(ctx, profile); err != nil {
			return db.MapError(err, profileNotFound, "save profile")
		}

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return db.MapError(err, userNotFound, "reload user")
		}
		resp = &DashboardResponse{User: users.FromModel(user), Profile: ProfileFromModel(profile)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := notifications.KindProfileUpdated
	if completed {
		kind = notifications.KindProfileCompleted
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"user_id":      userID.String(),
		"certificates": len(resp.Profile.Certificates),
		"completed":    completed,
	}), "freelancers.profile_updated")

	s.notifier.Notify(ctx, notifications.Message{
		Kind: kind,
		To:   resp.User.Email,
		Data: notifications.ProfileData{Name: displayName(resp.User), Title: resp.Profile.Title},
	})
	return resp, nil
}

func (s *service) DeleteCertificate(ctx context.Context, userID uuid.UUID, certificateURL string) (*DeleteCertificateResult, error) {
	ref := strings.TrimSpace(certificateURL)
	if ref == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "certificate url is required").
			WithDetails(map[string]string{"certificateUrl": "is required"})
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, db.MapError(err, profileNotFound, "load profile")
	}
	remaining, found := RemoveCertificate(profile.Certificates, ref)
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, certificateNotFound)
	}

	if err := s.profiles.SetCertificates(ctx, userID, remaining); err != nil {
		return nil, db.MapError(err, profileNotFound, "update certificates")
	}

	message := "certificate deleted successfully"
	logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": userID.String(), "ref": ref})
	key := storage.ObjectKey(s.media, ref)
	if !media.IsOwnedKey(key, enums.MediaFolderCertificates, userID) {
		s.logg.Info(logCtx, "freelancers.certificate_storage_skipped")
		return &DeleteCertificateResult{Message: message, Certificates: remaining}, nil
	}
	if err := s.media.Delete(ctx, key); err != nil {
		s.logg.Warn(s.logg.WithFields(logCtx, map[string]any{"error": err.Error()}), "freelancers.certificate_storage_delete_failed")
		message = "certificate removed from profile (storage deletion failed)"
	}
	return &DeleteCertificateResult{Message: message, Certificates: remaining}, nil
}

func accountUpdates(req UpdateProfileRequest) (map[string]any, error) {
	fields := map[string]any{}
	set := func(column string, value *string, transform func(string) string) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if transform != nil {
			trimmed = transform(trimmed)
		}
		fields[column] = trimmed
	}
	set("first_name", req.FirstName, nil)
	set("last_name", req.LastName, nil)
	set("phone", req.Phone, nil)
	set("location", req.Location, nil)
	set("email", req.Email, strings.ToLower)
	set("user_name", req.UserName, nil)

	if v, ok := fields["email"]; ok && v == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty").
			WithDetails(map[string]string{"email": "is required"})
	}
	if v, ok := fields["user_name"]; ok && !users.ValidUserName(v.(string)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username must be 3-30 letters, numbers or underscores").
			WithDetails(map[string]string{"userName": "is invalid"})
	}
	return fields, nil
}

func applyProfile(profile *models.JobSeeker, req UpdateProfileRequest) error {
	setString := func(dst *string, value *string) {
		if value != nil {
			*dst = strings.TrimSpace(*value)
		}
	}
	setString(&profile.Title, req.Title)
	setString(&profile.Experience, req.Experience)
	setString(&profile.Bio, req.Bio)

	if req.SalaryCurrency != nil {
		if currency := strings.ToUpper(strings.TrimSpace(*req.SalaryCurrency)); currency != "" {
			profile.SalaryCurrency = currency
		}
	}
	if req.ExpectedSalary != nil {
		salary := req.ExpectedSalary.Round(2)
		if salary.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "expected salary cannot be negative").
				WithDetails(map[string]string{"expectedSalary": "must be >= 0"})
		}
		if salary.GreaterThan(MaxExpectedSalary) {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "expected salary cannot exceed %s", MaxExpectedSalary.StringFixed(2)).
				WithDetails(map[string]string{"expectedSalary": "must be <= " + MaxExpectedSalary.StringFixed(2)})
		}
		profile.ExpectedSalary = decimal.NewNullDecimal(salary)
	}
	if req.Availability != nil {
		availability, err := enums.ParseProfileAvailability(*req.Availability)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "availability must be available or busy").
				WithDetails(map[string]string{"availability": "is invalid"})
		}
		profile.Availability = availability
	}
	if req.AvailableFrom != nil {
		raw := strings.TrimSpace(*req.AvailableFrom)
		if raw == "" {
			profile.AvailableFrom = nil
		} else {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "availableFrom must be a YYYY-MM-DD date").
					WithDetails(map[string]string{"availableFrom": "is invalid"})
			}
			profile.AvailableFrom = &parsed
		}
	}
	if req.CVFilePath != nil {
		if cv := strings.TrimSpace(*req.CVFilePath); cv != "" {
			profile.CVFilePath = &cv
		}
	}

	profile.Certificates = dbtypes.StringList(ReconcileCertificates(
		profile.Certificates,
		req.ExistingCertificates,
		req.NewCertificates,
		req.ReplaceCertificates,
	))
	return nil
}

func displayName(u *users.UserDTO) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

func conflictError(field string) error {
	label := field
	if field == "userName" {
		label = "username"
	}
	return pkgerrors.Newf(pkgerrors.CodeConflict, "another user with this %s already exists", label).
		WithDetails(map[string]any{"field": field})
}

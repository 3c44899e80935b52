package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	pkgAuth "github.com/angelmondragon/talentconnect-backend/pkg/auth"
	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	forgotPasswordMessage     = "if this email exists, a reset code has been sent"
	rolesAlreadySelected      = "roles have already been selected"
)

// Service defines the account lifecycle used by the auth controllers.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	SelectRoles(ctx context.Context, userID uuid.UUID, req SelectRolesRequest) (*SessionResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	DB             *db.Client
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Notifier       notifications.Notifier
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	tx          txRunner
	users       *users.Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	notifier    notifications.Notifier
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
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
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:          params.DB,
		users:       users.NewRepository(params.DB.DB()),
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		notifier:    params.Notifier,
		logg:        params.Logger,
		now:         now,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error) {
	userName := strings.TrimSpace(req.UserName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !users.ValidUserName(userName) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username must be 3-30 letters, numbers or underscores").
			WithDetails(map[string]string{"userName": "is invalid"})
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.User
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		field, err := repo.FindConflict(ctx, uuid.Nil, email, userName)
		if err != nil {
			return db.MapError(err, "user not found", "check existing user")
		}
		if field != "" {
			return conflictError(field)
		}

		created, err = repo.Create(ctx, users.CreateUserDTO{
			UserName:     userName,
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			Phone:        strings.TrimSpace(req.Phone),
			Location:     strings.TrimSpace(req.Location),
		})
		if err != nil {
			if field := users.UniqueViolationField(err); field != "" {
				return conflictError(field)
			}
			if db.IsUniqueViolation(err, "") {
				return conflictError("email")
			}
			return db.MapError(err, "user not found", "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.session(created)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithField(ctx, "user_id", created.ID.String()), "auth.signup")

	s.notifier.Notify(ctx, notifications.Message{
		Kind: notifications.KindWelcome,
		To:   created.Email,
		Data: notifications.WelcomeData{Name: users.DisplayName(created), UserName: created.UserName},
	})
	return resp, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, db.MapError(err, invalidCredentialsMessage, "load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.session(user)
}

func (s *service) SelectRoles(ctx context.Context, userID uuid.UUID, req SelectRolesRequest) (*SessionResponse, error) {
	if !req.IsFreelancer && !req.IsEquipmentOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please select at least one role")
	}
	userType := resolveUserType(req)

	var updated *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		changed, err := repo.MarkRolesSelected(ctx, userID, req.IsFreelancer, req.IsEquipmentOwner, userType)
		if err != nil {
			return db.MapError(err, "user not found", "select roles")
		}
		if !changed {
			if _, err := repo.FindByID(ctx, userID); err != nil {
				return db.MapError(err, "user not found", "load user")
			}
			return pkgerrors.New(pkgerrors.CodeValidation, rolesAlreadySelected)
		}

		if req.IsFreelancer {
			if err := tx.WithContext(ctx).Where("user_id = ?", userID).FirstOrCreate(&models.JobSeeker{UserID: userID}).Error; err != nil {
				return db.MapError(err, "user not found", "create job seeker profile")
			}
		}
		if req.IsEquipmentOwner {
			if err := tx.WithContext(ctx).Where("user_id = ?", userID).FirstOrCreate(&models.EquipmentOwner{UserID: userID}).Error; err != nil {
				return db.MapError(err, "user not found", "create equipment owner profile")
			}
		}

		updated, err = repo.FindByID(ctx, userID)
		if err != nil {
			return db.MapError(err, "user not found", "reload user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.session(updated)
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": userID.String(), "user_type": string(userType)})
	s.logg.Info(logCtx, "auth.roles_selected")

	s.notifier.Notify(ctx, notifications.Message{
		Kind: notifications.KindRoleSelection,
		To:   updated.Email,
		Data: notifications.RoleSelectionData{
			Name:             users.DisplayName(updated),
			IsFreelancer:     updated.IsFreelancer,
			IsEquipmentOwner: updated.IsEquipmentOwner,
			UserType:         string(userType),
		},
	})
	return resp, nil
}

func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	resp := &MessageResponse{Message: forgotPasswordMessage}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, db.MapError(err, "user not found", "load user")
	}

	code, err := security.GenerateResetCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset code")
	}
	ttl := s.passwordCfg.ResetCodeTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := s.users.SetResetToken(ctx, user.ID, code, s.now().UTC().Add(ttl)); err != nil {
		return nil, db.MapError(err, "user not found", "store reset code")
	}

	s.notifier.Notify(ctx, notifications.Message{
		Kind: notifications.KindPasswordReset,
		To:   user.Email,
		Data: notifications.PasswordResetData{
			Name:             users.DisplayName(user),
			Code:             code,
			ExpiresInMinutes: int(ttl / time.Minute),
		},
	})
	return resp, nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	invalid := pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired reset code")
	if len(req.NewPassword) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, db.MapError(err, "user not found", "load user")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	now := s.now().UTC()
	ok, err := s.users.ConsumeResetToken(ctx, user.ID, strings.TrimSpace(req.Code), now, hash)
	if err != nil {
		return nil, db.MapError(err, "user not found", "reset password")
	}
	if !ok {
		return nil, invalid
	}

	s.notifier.Notify(ctx, notifications.Message{
		Kind: notifications.KindPasswordChanged,
		To:   user.Email,
		Data: notifications.PasswordChangedData{Name: users.DisplayName(user), ChangedAt: now},
	})
	return &MessageResponse{Message: "password has been reset successfully"}, nil
}

func (s *service) session(user *models.User) (*SessionResponse, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), PayloadFor(user))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &SessionResponse{
		Token:                 token,
		User:                  users.FromModel(user),
		RequiresRoleSelection: !user.RolesSelected,
	}, nil
}

// PayloadFor maps a user row to the token claims.
func PayloadFor(user *models.User) pkgAuth.AccessTokenPayload {
	return pkgAuth.AccessTokenPayload{
		UserID:           user.ID,
		Email:            user.Email,
		UserType:         user.UserType,
		IsFreelancer:     user.IsFreelancer,
		IsEquipmentOwner: user.IsEquipmentOwner,
		RolesSelected:    user.RolesSelected,
	}
}

func resolveUserType(req SelectRolesRequest) enums.UserType {
	switch {
	case req.IsFreelancer && !req.IsEquipmentOwner:
		return enums.UserTypeJobSeeker
	case req.IsEquipmentOwner && !req.IsFreelancer:
		return enums.UserTypeEquipmentOwner
	}
	if primary, err := enums.ParseUserType(req.PrimaryRole); err == nil {
		return primary
	}
	return enums.UserTypeJobSeeker
}

func conflictError(field string) error {
	label := field
	if field == "userName" {
		label = "username"
	}
	return pkgerrors.Newf(pkgerrors.CodeConflict, "user with this %s already exists", label).
		WithDetails(map[string]any{"field": field})
}

package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/angelmondragon/talentconnect-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	userNotFound     = "user not found"
	listDefaultLimit = 100
	searchLimit      = 50
	minSearchLength  = 2
)

// Service covers the account directory and self-service account edits.
type Service interface {
	List(ctx context.Context, page pagination.Params) (*ListResult, error)
	Stats(ctx context.Context) (*Stats, error)
	Search(ctx context.Context, q string, userType string) (*SearchResult, error)
	ListByType(ctx context.Context, userType string) (*TypeResult, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req UpdateRequest) (*UserDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	Now            func() time.Time
}

type service struct {
	tx          txRunner
	repo        *Repository
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:          params.DB,
		repo:        NewRepository(params.DB.DB()),
		passwordCfg: params.PasswordConfig,
		now:         now,
	}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) (*ListResult, error) {
	page = pagination.Normalize(page, listDefaultLimit)
	list, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "list users")
	}
	dtos := FromModels(list)
	return &ListResult{Users: dtos, Count: len(dtos)}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		return nil, db.MapError(err, userNotFound, "user statistics")
	}
	return &stats, nil
}

func (s *service) Search(ctx context.Context, q string, userType string) (*SearchResult, error) {
	term := strings.TrimSpace(q)
	if len(term) < minSearchLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term must be at least 2 characters")
	}

	var filter *enums.UserType
	if ut, err := enums.ParseUserType(userType); err == nil {
		filter = &ut
	}

	list, err := s.repo.Search(ctx, term, filter, searchLimit)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "search users")
	}
	dtos := FromModels(list)
	return &SearchResult{Users: dtos, Count: len(dtos), SearchTerm: term}, nil
}

func (s *service) ListByType(ctx context.Context, userType string) (*TypeResult, error) {
	ut, err := enums.ParseUserType(userType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid user type")
	}
	list, err := s.repo.ListByType(ctx, ut)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "list users by type")
	}
	dtos := FromModels(list)
	return &TypeResult{Users: dtos, Count: len(dtos), UserType: ut}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "load user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, req UpdateRequest) (*UserDTO, error) {
	if actorID != id {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only update your own account")
	}

	fields := map[string]any{}
	setTrimmed := func(column string, value *string) {
		if value == nil {
			return
		}
		if trimmed := strings.TrimSpace(*value); trimmed != "" {
			fields[column] = trimmed
		}
	}
	setTrimmed("first_name", req.FirstName)
	setTrimmed("last_name", req.LastName)
	setTrimmed("phone", req.Phone)
	setTrimmed("location", req.Location)

	if req.Password != nil && *req.Password != "" {
		hash, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	fields["updated_at"] = s.now().UTC()

	var updated *UserDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		found, err := repo.UpdateFields(ctx, id, fields)
		if err != nil {
			return db.MapError(err, userNotFound, "update user")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, userNotFound)
		}
		user, err := repo.FindByID(ctx, id)
		if err != nil {
			return db.MapError(err, userNotFound, "reload user")
		}
		updated = FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID != id {
		return pkgerrors.New(pkgerrors.CodeForbidden, "you can only delete your own account")
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		found, err := NewRepository(tx).DeleteCascade(ctx, id)
		if err != nil {
			return db.MapError(err, userNotFound, "delete user")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, userNotFound)
		}
		return nil
	})
}

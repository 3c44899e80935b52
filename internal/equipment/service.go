package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/internal/locations"
	"github.com/angelmondragon/talentconnect-backend/internal/notifications"
	"github.com/angelmondragon/talentconnect-backend/internal/users"
	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/talentconnect-backend/pkg/errors"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	equipmentNotFound = "equipment not found"
	inquiryNotFound   = "inquiry not found"
	userNotFound      = "user not found"

	searchDefaultLimit   = 50
	listDefaultLimit     = 20
	featuredDefaultLimit = 3
	availabilityAll      = "all"
)

var validate = validator.New()

// Service covers the public catalogue and the owner's listing management.
type Service interface {
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	List(ctx context.Context, q SearchQuery) (*ListResult, error)
	Locations(ctx context.Context) (*LocationsResult, error)
	Stats(ctx context.Context) (*Stats, error)
	Details(ctx context.Context, id uuid.UUID) (*DTO, error)
	Featured(ctx context.Context, limit int) ([]FeaturedDTO, error)

	Add(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*CreatedResponse, error)
	Mine(ctx context.Context, ownerID uuid.UUID) (*ListResult, error)
	MineByID(ctx context.Context, ownerID, id uuid.UUID) (*DTO, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateRequest) (*DTO, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID, permanent bool) error
	RefreshContact(ctx context.Context, ownerID, id uuid.UUID) (*DTO, error)
	Inquiries(ctx context.Context, ownerID uuid.UUID) (*InquiryListResult, error)
	UpdateInquiry(ctx context.Context, ownerID, id uuid.UUID, req UpdateInquiryRequest) (*InquiryDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	DB        *db.Client
	Locations *locations.Hierarchy
	Notifier  notifications.Notifier
	Logger    *logger.Logger
	Now       func() time.Time
}

type service struct {
	tx        txRunner
	repo      *Repository
	users     *users.Repository
	locations *locations.Hierarchy
	notifier  notifications.Notifier
	logg      *logger.Logger
	now       func() time.Time
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
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:        params.DB,
		repo:      NewRepository(params.DB.DB()),
		users:     users.NewRepository(params.DB.DB()),
		locations: params.Locations,
		notifier:  params.Notifier,
		logg:      params.Logger,
		now:       now,
	}, nil
}

func (s *service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	list, err := s.search(ctx, q, searchDefaultLimit)
	if err != nil {
		return nil, err
	}
	dtos := FromModels(list)
	return &SearchResult{Equipment: dtos, Count: len(dtos), Filters: echoFilters(q)}, nil
}

func (s *service) List(ctx context.Context, q SearchQuery) (*ListResult, error) {
	list, err := s.search(ctx, q, listDefaultLimit)
	if err != nil {
		return nil, err
	}
	dtos := FromModels(list)
	return &ListResult{Equipment: dtos, Count: len(dtos)}, nil
}

func (s *service) search(ctx context.Context, q SearchQuery, defaultLimit int) ([]models.Equipment, error) {
	f := Filter{
		Search: strings.TrimSpace(q.Search),
		Type:   strings.TrimSpace(q.Type),
	}
	f.LocationClause, f.LocationArgs = locations.Filter(s.locations, "location", q.Location)
	if availability, ok := availabilityFilter(q.Availability); ok {
		f.Availability = &availability
	}

	page := pagination.Normalize(pagination.Params{Limit: q.Limit, Offset: q.Offset}, defaultLimit)
	list, err := s.repo.Search(ctx, f, page)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "search equipment")
	}
	return list, nil
}

func (s *service) Locations(ctx context.Context) (*LocationsResult, error) {
	list, err := s.repo.Locations(ctx)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "list equipment locations")
	}
	if list == nil {
		list = []string{}
	}
	return &LocationsResult{Locations: list, Count: len(list)}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "equipment statistics")
	}
	return &stats, nil
}

func (s *service) Details(ctx context.Context, id uuid.UUID) (*DTO, error) {
	e, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "load equipment")
	}
	return FromModel(e), nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]FeaturedDTO, error) {
	if limit <= 0 {
		limit = featuredDefaultLimit
	}
	limit = pagination.NormalizeLimit(limit)
	list, err := s.repo.Featured(ctx, limit)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "featured equipment")
	}
	out := make([]FeaturedDTO, 0, len(list))
	for i := range list {
		out = append(out, featuredFromModel(&list[i]))
	}
	return out, nil
}

func (s *service) Add(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*CreatedResponse, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, db.MapError(err, userNotFound, "load owner")
	}
	if !owner.IsEquipmentOwner {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "equipment owner role required")
	}

	e, err := buildEquipment(owner, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, db.MapError(err, equipmentNotFound, "create equipment")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"user_id": ownerID.String(), "equipment_id": e.ID.String()})
	s.logg.Info(logCtx, "equipment.listed")

	s.notifier.Notify(ctx, notifications.Message{
		Kind: notifications.KindEquipmentListed,
		To:   owner.Email,
		Data: notifications.EquipmentListedData{
			OwnerName:     users.DisplayName(owner),
			EquipmentName: e.Name,
			EquipmentType: e.Type,
			Location:      e.Location,
			Availability:  string(e.Availability),
		},
	})
	return &CreatedResponse{ID: e.ID, Name: e.Name, Type: e.Type, Availability: e.Availability}, nil
}

func (s *service) Mine(ctx context.Context, ownerID uuid.UUID) (*ListResult, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "list own equipment")
	}
	dtos := FromModels(list)
	return &ListResult{Equipment: dtos, Count: len(dtos)}, nil
}

func (s *service) MineByID(ctx context.Context, ownerID, id uuid.UUID) (*DTO, error) {
	e, err := s.owned(ctx, s.repo, ownerID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(e), nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateRequest) (*DTO, error) {
	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Equipment
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if _, err := s.owned(ctx, repo, ownerID, id); err != nil {
			return err
		}
		if len(fields) > 0 {
			fields["updated_at"] = s.now().UTC()
			if _, err := repo.UpdateFields(ctx, id, ownerID, fields); err != nil {
				return db.MapError(err, equipmentNotFound, "update equipment")
			}
		}
		updated, err = repo.FindByID(ctx, id)
		if err != nil {
			return db.MapError(err, equipmentNotFound, "reload equipment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID, permanent bool) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if _, err := s.owned(ctx, repo, ownerID, id); err != nil {
			return err
		}
		if permanent {
			if _, err := repo.HardDelete(ctx, id, ownerID); err != nil {
				return db.MapError(err, equipmentNotFound, "delete equipment")
			}
			return nil
		}
		fields := map[string]any{"is_active": false, "updated_at": s.now().UTC()}
		if _, err := repo.UpdateFields(ctx, id, ownerID, fields); err != nil {
			return db.MapError(err, equipmentNotFound, "deactivate equipment")
		}
		return nil
	})
}

func (s *service) RefreshContact(ctx context.Context, ownerID, id uuid.UUID) (*DTO, error) {
	var refreshed *models.Equipment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if _, err := s.owned(ctx, repo, ownerID, id); err != nil {
			return err
		}
		owner, err := users.NewRepository(tx).FindByID(ctx, ownerID)
		if err != nil {
			return db.MapError(err, userNotFound, "load owner")
		}

		fields := map[string]any{"updated_at": s.now().UTC()}
		if name := users.FullName(owner); name != "" {
			fields["contact_person"] = name
		}
		if phone := strings.TrimSpace(owner.Phone); phone != "" {
			fields["contact_number"] = phone
		}
		fields["contact_email"] = strings.ToLower(owner.Email)
		if _, err := repo.UpdateFields(ctx, id, ownerID, fields); err != nil {
			return db.MapError(err, equipmentNotFound, "refresh contact")
		}
		refreshed, err = repo.FindByID(ctx, id)
		if err != nil {
			return db.MapError(err, equipmentNotFound, "reload equipment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(refreshed), nil
}

func (s *service) Inquiries(ctx context.Context, ownerID uuid.UUID) (*InquiryListResult, error) {
	rows, err := s.repo.InquiriesForOwner(ctx, ownerID)
	if err != nil {
		return nil, db.MapError(err, inquiryNotFound, "list inquiries")
	}
	out := make([]InquiryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *InquiryFromModel(&rows[i].ContactInquiry, rows[i].EquipmentName))
	}
	return &InquiryListResult{Inquiries: out, Count: len(out)}, nil
}

func (s *service) UpdateInquiry(ctx context.Context, ownerID, id uuid.UUID, req UpdateInquiryRequest) (*InquiryDTO, error) {
	next, err := enums.ParseInquiryStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be pending, responded or resolved").
			WithDetails(map[string]string{"status": "is invalid"})
	}

	var out *InquiryDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		row, err := repo.FindInquiryForOwner(ctx, id, ownerID)
		if err != nil {
			return db.MapError(err, inquiryNotFound, "load inquiry")
		}
		current := row.Status
		if !current.CanTransitionTo(next) {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "cannot move inquiry from %s to %s", current, next)
		}
		now := s.now().UTC()
		ok, err := repo.SetInquiryStatus(ctx, id, current, next, now)
		if err != nil {
			return db.MapError(err, inquiryNotFound, "update inquiry")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "inquiry was modified concurrently")
		}
		row.Status = next
		row.UpdatedAt = now
		out = InquiryFromModel(&row.ContactInquiry, row.EquipmentName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// owned loads a listing and checks that ownerID owns it.
func (s *service) owned(ctx context.Context, repo *Repository, ownerID, id uuid.UUID) (*models.Equipment, error) {
	e, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.MapError(err, equipmentNotFound, "load equipment")
	}
	if e.UserID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only manage your own equipment")
	}
	return e, nil
}

func buildEquipment(owner *models.User, req CreateRequest) (*models.Equipment, error) {
	e := &models.Equipment{
		UserID:        owner.ID,
		Name:          strings.TrimSpace(req.Name),
		Type:          strings.TrimSpace(req.Type),
		Location:      strings.TrimSpace(req.Location),
		ContactPerson: firstNonEmpty(req.ContactPerson, users.FullName(owner)),
		ContactNumber: firstNonEmpty(req.ContactNumber, owner.Phone),
		ContactEmail:  strings.ToLower(firstNonEmpty(req.ContactEmail, owner.Email)),
		Availability:  enums.EquipmentAvailabilityAvailable,
		IsActive:      true,
	}
	if e.Location == "" {
		e.Location = strings.TrimSpace(owner.Location)
	}

	details := map[string]string{}
	if len(e.Name) < 2 {
		details["name"] = "must be at least 2 characters"
	}
	if len(e.Type) < 2 {
		details["type"] = "must be at least 2 characters"
	}
	if len(e.ContactPerson) < 2 {
		details["contactPerson"] = "must be at least 2 characters"
	}
	if len(e.ContactNumber) < 8 {
		details["contactNumber"] = "must be at least 8 characters"
	}
	if validate.Var(e.ContactEmail, "required,email") != nil {
		details["contactEmail"] = "must be a valid email"
	}
	if strings.TrimSpace(req.Availability) != "" {
		availability, err := enums.ParseEquipmentAvailability(req.Availability)
		if err != nil {
			details["availability"] = "must be available or on-hire"
		} else {
			e.Availability = availability
		}
	}
	images, err := normalizeImages(req.Images)
	if err != nil {
		details["images"] = err.Error()
	}
	e.Images = images

	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid equipment listing").WithDetails(details)
	}
	return e, nil
}

func updateFields(req UpdateRequest) (map[string]any, error) {
	fields := map[string]any{}
	details := map[string]string{}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); len(name) >= 2 {
			fields["name"] = name
		} else {
			details["name"] = "must be at least 2 characters"
		}
	}
	if req.Type != nil {
		if typ := strings.TrimSpace(*req.Type); len(typ) >= 2 {
			fields["type"] = typ
		} else {
			details["type"] = "must be at least 2 characters"
		}
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Availability != nil {
		availability, err := enums.ParseEquipmentAvailability(*req.Availability)
		if err != nil {
			details["availability"] = "must be available or on-hire"
		} else {
			fields["availability"] = availability
		}
	}
	if req.Images != nil {
		images, err := normalizeImages(req.Images)
		if err != nil {
			details["images"] = err.Error()
		} else {
			fields["images"] = images
		}
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid equipment update").WithDetails(details)
	}
	return fields, nil
}

func normalizeImages(refs []string) (dbtypes.StringList, error) {
	out := make(dbtypes.StringList, 0, len(refs))
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			out = append(out, ref)
		}
	}
	if len(out) > MaxImages {
		return out, errors.New("at most 5 images are allowed")
	}
	return out, nil
}

func availabilityFilter(raw string) (enums.EquipmentAvailability, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, availabilityAll) {
		return "", false
	}
	availability, err := enums.ParseEquipmentAvailability(raw)
	if err != nil {
		return "", false
	}
	return availability, true
}

func echoFilters(q SearchQuery) SearchFilters {
	f := SearchFilters{Availability: availabilityAll}
	if v := strings.TrimSpace(q.Search); v != "" {
		f.Search = &v
	}
	if v := strings.TrimSpace(q.Location); v != "" {
		f.Location = &v
	}
	if v := strings.TrimSpace(q.Type); v != "" {
		f.Type = &v
	}
	if availability, ok := availabilityFilter(q.Availability); ok {
		f.Availability = string(availability)
	}
	return f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

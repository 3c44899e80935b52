package equipment

import (
	"context"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows equipment queries. LocationClause is a pre-rendered condition
// from the location hierarchy.
type Filter struct {
	Search         string
	Type           string
	Availability   *enums.EquipmentAvailability
	LocationClause string
	LocationArgs   []any
}

// Repository persists listings and their inquiries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *models.Equipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// FindByID loads a listing regardless of its active flag.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	var e models.Equipment
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	var e models.Equipment
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByOwner includes inactive listings.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error) {
	var list []models.Equipment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Search returns active listings matching f, newest first.
func (r *Repository) Search(ctx context.Context, f Filter, page pagination.Params) ([]models.Equipment, error) {
	query := r.db.WithContext(ctx).Model(&models.Equipment{}).Where("is_active = ?", true)
	if clause, args := db.AnyLike([]string{"name", "type"}, nonEmpty(f.Search)); clause != "" {
		query = query.Where(clause, args...)
	}
	if clause, args := db.AnyLike([]string{"type"}, nonEmpty(f.Type)); clause != "" {
		query = query.Where(clause, args...)
	}
	if f.LocationClause != "" {
		query = query.Where(f.LocationClause, f.LocationArgs...)
	}
	if f.Availability != nil {
		query = query.Where("availability = ?", *f.Availability)
	}

	var list []models.Equipment
	err := query.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset).Find(&list).Error
	return list, err
}

// Featured returns available active listings, most recently updated first.
func (r *Repository) Featured(ctx context.Context, limit int) ([]models.Equipment, error) {
	var list []models.Equipment
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND availability = ?", true, enums.EquipmentAvailabilityAvailable).
		Order("updated_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Locations lists the distinct non-empty locations of active listings.
func (r *Repository) Locations(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("is_active = ? AND location <> ?", true, "").
		Distinct("location").
		Order("location ASC").
		Pluck("location", &out).Error
	return out, err
}

func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN availability = ? THEN 1 ELSE 0 END), 0) AS available,
			COALESCE(SUM(CASE WHEN availability = ? THEN 1 ELSE 0 END), 0) AS on_hire,
			COUNT(DISTINCT NULLIF(location, '')) AS locations,
			COUNT(DISTINCT type) AS types`,
			enums.EquipmentAvailabilityAvailable, enums.EquipmentAvailabilityOnHire).
		Where("is_active = ?", true).
		Scan(&stats).Error
	return stats, err
}

// UpdateFields applies a column map to a listing owned by userID. It reports
// whether a row matched.
func (r *Repository) UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HardDelete removes a listing and its inquiries.
func (r *Repository) HardDelete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	conn := r.db.WithContext(ctx)
	if err := conn.Where("equipment_id = ?", id).Delete(&models.ContactInquiry{}).Error; err != nil {
		return false, err
	}
	res := conn.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Equipment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) CreateInquiry(ctx context.Context, inquiry *models.ContactInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// InquiryRow is an inquiry joined with its listing name.
type InquiryRow struct {
	models.ContactInquiry
	EquipmentName string `gorm:"column:equipment_name"`
}

// InquiriesForOwner lists inquiries across every listing of userID, newest first.
func (r *Repository) InquiriesForOwner(ctx context.Context, userID uuid.UUID) ([]InquiryRow, error) {
	var rows []InquiryRow
	err := r.db.WithContext(ctx).
		Table("contact_inquiries AS ci").
		Select("ci.*, e.name AS equipment_name").
		Joins("JOIN equipment e ON e.id = ci.equipment_id").
		Where("e.user_id = ?", userID).
		Order("ci.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// FindInquiryForOwner loads one inquiry when its listing belongs to userID.
func (r *Repository) FindInquiryForOwner(ctx context.Context, id, userID uuid.UUID) (*InquiryRow, error) {
	var rows []InquiryRow
	err := r.db.WithContext(ctx).
		Table("contact_inquiries AS ci").
		Select("ci.*, e.name AS equipment_name").
		Joins("JOIN equipment e ON e.id = ci.equipment_id").
		Where("ci.id = ? AND e.user_id = ?", id, userID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// SetInquiryStatus moves an inquiry from one status to the next. It matches
// nothing when the stored status changed concurrently.
func (r *Repository) SetInquiryStatus(ctx context.Context, id uuid.UUID, from, to enums.InquiryStatus, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ContactInquiry{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func nonEmpty(term string) []string {
	if term == "" {
		return nil
	}
	return []string{term}
}

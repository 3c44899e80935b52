package search

import (
	"context"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	dbtypes "github.com/angelmondragon/talentconnect-backend/pkg/db/types"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const candidateColumns = `u.id AS user_id, u.first_name, u.last_name, u.user_name, u.email, u.phone, u.location,
	u.created_at AS user_created_at, js.title, js.experience, js.expected_salary, js.salary_currency, js.bio,
	js.availability, js.available_from, js.cv_file_path, js.certificates, js.updated_at AS profile_updated_at`

// CandidateRow is a freelancer account joined with its profile.
type CandidateRow struct {
	UserID           uuid.UUID `gorm:"column:user_id"`
	FirstName        string
	LastName         string
	UserName         string
	Email            string
	Phone            string
	Location         string
	UserCreatedAt    time.Time `gorm:"column:user_created_at"`
	Title            string
	Experience       string
	ExpectedSalary   decimal.NullDecimal
	SalaryCurrency   string
	Bio              string
	Availability     enums.ProfileAvailability
	AvailableFrom    *time.Time
	CVFilePath       *string `gorm:"column:cv_file_path"`
	Certificates     dbtypes.StringList
	ProfileUpdatedAt time.Time `gorm:"column:profile_updated_at"`
}

// Filter narrows freelancer queries. Text terms match as case-insensitive
// substrings over TextColumns; LocationClause comes from the location hierarchy.
type Filter struct {
	Text           string
	TextColumns    []string
	Experience     string
	Availability   *enums.ProfileAvailability
	LocationClause string
	LocationArgs   []any
}

// Repository reads freelancer accounts joined with their profiles.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users AS u").
		Joins("JOIN job_seekers js ON js.user_id = u.id").
		Where("u.is_freelancer = ?", true)
}

// Find returns freelancers matching f ordered by account creation, newest first.
func (r *Repository) Find(ctx context.Context, f Filter, page pagination.Params) ([]CandidateRow, error) {
	query := r.base(ctx).Select(candidateColumns)
	if f.Text != "" {
		if clause, args := db.AnyLike(f.TextColumns, []string{f.Text}); clause != "" {
			query = query.Where(clause, args...)
		}
	}
	if f.LocationClause != "" {
		query = query.Where(f.LocationClause, f.LocationArgs...)
	}
	if f.Experience != "" {
		query = query.Where("js.experience = ?", f.Experience)
	}
	if f.Availability != nil {
		query = query.Where("js.availability = ?", *f.Availability)
	}

	var rows []CandidateRow
	err := query.Order("u.created_at DESC").Limit(page.Limit).Offset(page.Offset).Scan(&rows).Error
	return rows, err
}

// FindByUserID returns gorm.ErrRecordNotFound when the user is not a
// freelancer with a profile.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*CandidateRow, error) {
	var rows []CandidateRow
	err := r.base(ctx).Select(candidateColumns).Where("u.id = ?", userID).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// Featured returns available freelancers, most recently updated profile first.
func (r *Repository) Featured(ctx context.Context, limit int) ([]CandidateRow, error) {
	var rows []CandidateRow
	err := r.base(ctx).
		Select(candidateColumns).
		Where("js.availability = ?", enums.ProfileAvailabilityAvailable).
		Order("js.updated_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.base(ctx).
		Select(`COUNT(DISTINCT u.id) AS total_candidates,
			COUNT(DISTINCT CASE WHEN js.cv_file_path IS NOT NULL AND js.cv_file_path <> '' THEN u.id END) AS candidates_with_cv`).
		Scan(&stats).Error
	return stats, err
}

// TitledProfiles returns the title and bio of every freelancer with a title.
func (r *Repository) TitledProfiles(ctx context.Context) ([]TitleBio, error) {
	var rows []TitleBio
	err := r.base(ctx).
		Select("js.title AS title, js.bio AS bio").
		Where("js.title <> ?", "").
		Order("u.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

package users

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/angelmondragon/talentconnect-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches the email case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindConflict returns the first field ("email" or "userName") already used by
// another account, or "" when both are free. excludeID may be uuid.Nil.
func (r *Repository) FindConflict(ctx context.Context, excludeID uuid.UUID, email, userName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	userName = strings.ToLower(strings.TrimSpace(userName))

	if email != "" {
		taken, err := r.exists(ctx, excludeID, "LOWER(email) = ?", email)
		if err != nil {
			return "", err
		}
		if taken {
			return "email", nil
		}
	}
	if userName != "" {
		taken, err := r.exists(ctx, excludeID, "LOWER(user_name) = ?", userName)
		if err != nil {
			return "", err
		}
		if taken {
			return "userName", nil
		}
	}
	return "", nil
}

// UniqueViolationField names the account field behind a unique violation on
// users, or returns "" when err is not one. Postgres reports the index name;
// SQLite reports the column.
func UniqueViolationField(err error) string {
	switch {
	case db.IsUniqueViolation(err, "idx_users_email_lower"), db.IsUniqueViolation(err, "users.email"):
		return "email"
	case db.IsUniqueViolation(err, "idx_users_user_name_lower"), db.IsUniqueViolation(err, "users.user_name"):
		return "userName"
	}
	return ""
}

func (r *Repository) exists(ctx context.Context, excludeID uuid.UUID, clause string, value string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where(clause, value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// List returns users newest first.
func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.User, error) {
	var list []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&list).Error
	return list, err
}

// Search matches q against names, email and username.
func (r *Repository) Search(ctx context.Context, q string, userType *enums.UserType, limit int) ([]models.User, error) {
	clause, args := db.AnyLike([]string{"first_name", "last_name", "email", "user_name"}, []string{q})
	query := r.db.WithContext(ctx).Where(clause, args...)
	if userType != nil {
		query = query.Where("user_type = ?", *userType)
	}
	var list []models.User
	err := query.Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListByType returns users whose discriminator equals userType.
func (r *Repository) ListByType(ctx context.Context, userType enums.UserType) ([]models.User, error) {
	var list []models.User
	err := r.db.WithContext(ctx).
		Where("user_type = ?", userType).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Stats counts accounts relative to now (UTC days).
func (r *Repository) Stats(ctx context.Context, now time.Time) (Stats, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	weekAgo := today.AddDate(0, 0, -7)

	var stats Stats
	counts := []struct {
		dst   *int64
		where string
		args  []any
	}{
		{&stats.TotalUsers, "", nil},
		{&stats.TotalFreelancers, "is_freelancer = ?", []any{true}},
		{&stats.TotalEquipmentOwners, "is_equipment_owner = ?", []any{true}},
		{&stats.BothRoles, "is_freelancer = ? AND is_equipment_owner = ?", []any{true, true}},
		{&stats.PendingRoleSelection, "roles_selected = ?", []any{false}},
		{&stats.NewUsersToday, "created_at >= ?", []any{today}},
		{&stats.NewUsersThisWeek, "created_at >= ?", []any{weekAgo}},
	}
	for _, c := range counts {
		query := r.db.WithContext(ctx).Model(&models.User{})
		if c.where != "" {
			query = query.Where(c.where, c.args...)
		}
		if err := query.Count(c.dst).Error; err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}

// UpdateFields applies a column map to one user. It reports whether the row exists.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkRolesSelected flips the one-time role flags. It affects no row when the
// user is missing or has already selected roles.
func (r *Repository) MarkRolesSelected(ctx context.Context, id uuid.UUID, isFreelancer, isEquipmentOwner bool, userType enums.UserType) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND roles_selected = ?", id, false).
		Updates(map[string]any{
			"is_freelancer":      isFreelancer,
			"is_equipment_owner": isEquipmentOwner,
			"user_type":          string(userType),
			"roles_selected":     true,
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetResetToken stores a reset code and its expiry.
func (r *Repository) SetResetToken(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"reset_token": code, "reset_token_expiry": expiresAt}).Error
}

// ConsumeResetToken replaces the password and clears the code in one statement,
// matching only while the code is unexpired.
func (r *Repository) ConsumeResetToken(ctx context.Context, id uuid.UUID, code string, now time.Time, passwordHash string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND reset_token = ? AND reset_token_expiry > ?", id, code, now).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        gorm.Expr("NULL"),
			"reset_token_expiry": gorm.Expr("NULL"),
			"updated_at":         now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteCascade removes a user with their profiles, equipment and inquiries.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	conn := r.db.WithContext(ctx)
	equipmentIDs := conn.Model(&models.Equipment{}).Select("id").Where("user_id = ?", id)
	if err := conn.Where("equipment_id IN (?)", equipmentIDs).Delete(&models.ContactInquiry{}).Error; err != nil {
		return false, err
	}
	for _, dependent := range []any{&models.Equipment{}, &models.JobSeeker{}, &models.EquipmentOwner{}} {
		if err := conn.Where("user_id = ?", id).Delete(dependent).Error; err != nil {
			return false, err
		}
	}
	res := conn.Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

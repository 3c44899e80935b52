package users

import (
	"regexp"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits credentials and reset codes.
type UserDTO struct {
	ID               uuid.UUID       `json:"id"`
	UserName         string          `json:"userName"`
	Email            string          `json:"email"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Phone            string          `json:"phone"`
	Location         string          `json:"location"`
	UserType         *enums.UserType `json:"userType"`
	IsFreelancer     bool            `json:"isFreelancer"`
	IsEquipmentOwner bool            `json:"isEquipmentOwner"`
	RolesSelected    bool            `json:"rolesSelected"`
	HasBothRoles     bool            `json:"hasBothRoles"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:               u.ID,
		UserName:         u.UserName,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Location:         u.Location,
		UserType:         u.UserType,
		IsFreelancer:     u.IsFreelancer,
		IsEquipmentOwner: u.IsEquipmentOwner,
		RolesSelected:    u.RolesSelected,
		HasBothRoles:     u.HasBothRoles(),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// ValidUserName reports whether name is 3-30 letters, digits or underscores.
func ValidUserName(name string) bool {
	return userNamePattern.MatchString(name)
}

// DisplayName prefers the first name and falls back to the username.
func DisplayName(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

// FullName joins first and last name, falling back to the username.
func FullName(u *models.User) string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.UserName
	}
	return name
}

// CreateUserDTO holds the data required to persist a new account.
type CreateUserDTO struct {
	UserName     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Location     string
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		UserName:     c.UserName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Location:     c.Location,
	}
}

// UpdateRequest is the self-service account update. Empty fields are ignored.
type UpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// Stats aggregates account counts.
type Stats struct {
	TotalUsers           int64 `json:"totalUsers"`
	TotalFreelancers     int64 `json:"totalFreelancers"`
	TotalEquipmentOwners int64 `json:"totalEquipmentOwners"`
	BothRoles            int64 `json:"bothRoles"`
	PendingRoleSelection int64 `json:"pendingRoleSelection"`
	NewUsersToday        int64 `json:"newUsersToday"`
	NewUsersThisWeek     int64 `json:"newUsersThisWeek"`
}

type ListResult struct {
	Users []UserDTO `json:"users"`
	Count int       `json:"count"`
}

type SearchResult struct {
	Users      []UserDTO `json:"users"`
	Count      int       `json:"count"`
	SearchTerm string    `json:"searchTerm"`
}

type TypeResult struct {
	Users    []UserDTO      `json:"users"`
	Count    int            `json:"count"`
	UserType enums.UserType `json:"userType"`
}

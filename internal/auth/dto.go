package auth

import "github.com/angelmondragon/talentconnect-backend/internal/users"

// SignupRequest creates an account with no roles.
type SignupRequest struct {
	UserName  string `json:"userName" validate:"required,min=3,max=30,username"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SelectRolesRequest is the one-time role choice.
type SelectRolesRequest struct {
	IsFreelancer     bool   `json:"isFreelancer"`
	IsEquipmentOwner bool   `json:"isEquipmentOwner"`
	PrimaryRole      string `json:"primaryRole,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// SessionResponse is returned by signup, login and role selection.
type SessionResponse struct {
	Token                 string         `json:"token"`
	User                  *users.UserDTO `json:"user"`
	RequiresRoleSelection bool           `json:"requiresRoleSelection"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

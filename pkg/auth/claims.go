package auth

import (
	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID           uuid.UUID
	Email            string
	UserType         *enums.UserType
	IsFreelancer     bool
	IsEquipmentOwner bool
	RolesSelected    bool
	JTI              string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID           uuid.UUID       `json:"userId"`
	Email            string          `json:"email"`
	UserType         *enums.UserType `json:"userType"`
	IsFreelancer     bool            `json:"isFreelancer"`
	IsEquipmentOwner bool            `json:"isEquipmentOwner"`
	RolesSelected    bool            `json:"rolesSelected"`
	jwt.RegisteredClaims
}

// ActorRole summarizes the role claims for logging.
func (c *AccessTokenClaims) ActorRole() string {
	switch {
	case c == nil || !c.RolesSelected:
		return "pending"
	case c.IsFreelancer && c.IsEquipmentOwner:
		return "both"
	case c.IsFreelancer:
		return string(enums.UserTypeJobSeeker)
	case c.IsEquipmentOwner:
		return string(enums.UserTypeEquipmentOwner)
	default:
		return "none"
	}
}

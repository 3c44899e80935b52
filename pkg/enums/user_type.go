package enums

import (
	"fmt"
	"strings"
)

// UserType is the display discriminator derived at role selection.
type UserType string

const (
	UserTypeJobSeeker      UserType = "jobseeker"
	UserTypeEquipmentOwner UserType = "equipment_owner"
)

var validUserTypes = []UserType{
	UserTypeJobSeeker,
	UserTypeEquipmentOwner,
}

// IsValid reports whether the value matches a known user type.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserType converts the raw string to UserType. "freelancer" is accepted as
// an alias for the job seeker discriminator.
func ParseUserType(value string) (UserType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "freelancer" {
		return UserTypeJobSeeker, nil
	}
	for _, candidate := range validUserTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}

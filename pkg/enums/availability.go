package enums

import (
	"fmt"
	"strings"
)

// ProfileAvailability describes whether a freelancer can take work.
type ProfileAvailability string

const (
	ProfileAvailabilityAvailable ProfileAvailability = "available"
	ProfileAvailabilityBusy      ProfileAvailability = "busy"
)

var validProfileAvailabilities = []ProfileAvailability{
	ProfileAvailabilityAvailable,
	ProfileAvailabilityBusy,
}

func (a ProfileAvailability) IsValid() bool {
	for _, candidate := range validProfileAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

func ParseProfileAvailability(value string) (ProfileAvailability, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProfileAvailabilities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability %q", value)
}

// EquipmentAvailability describes whether a listing can be rented right now.
type EquipmentAvailability string

const (
	EquipmentAvailabilityAvailable EquipmentAvailability = "available"
	EquipmentAvailabilityOnHire    EquipmentAvailability = "on-hire"
)

var validEquipmentAvailabilities = []EquipmentAvailability{
	EquipmentAvailabilityAvailable,
	EquipmentAvailabilityOnHire,
}

func (a EquipmentAvailability) IsValid() bool {
	for _, candidate := range validEquipmentAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseEquipmentAvailability converts the raw string to EquipmentAvailability.
func ParseEquipmentAvailability(value string) (EquipmentAvailability, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validEquipmentAvailabilities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid equipment availability %q", value)
}

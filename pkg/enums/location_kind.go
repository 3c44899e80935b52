package enums

import "fmt"

// LocationKind is the level of a node in the location hierarchy.
type LocationKind string

const (
	LocationKindCountry LocationKind = "country"
	LocationKindState   LocationKind = "state"
	LocationKindRegion  LocationKind = "region"
	LocationKindCity    LocationKind = "city"
)

var validLocationKinds = []LocationKind{
	LocationKindCountry,
	LocationKindState,
	LocationKindRegion,
	LocationKindCity,
}

func (k LocationKind) IsValid() bool {
	for _, candidate := range validLocationKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func ParseLocationKind(value string) (LocationKind, error) {
	for _, candidate := range validLocationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location kind %q", value)
}

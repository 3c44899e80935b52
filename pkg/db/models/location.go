package models

import "github.com/angelmondragon/talentconnect-backend/pkg/enums"

// Location is a node of the country/state/city reference hierarchy.
type Location struct {
	ID       int64              `gorm:"primaryKey;autoIncrement"`
	Name     string             `gorm:"column:name;not null;uniqueIndex"`
	Kind     enums.LocationKind `gorm:"column:kind;type:text;not null"`
	ParentID *int64             `gorm:"column:parent_id;index"`
	Position int                `gorm:"column:position;not null;default:0"`
}

func (Location) TableName() string { return "locations" }

// LocationAlias is an alternative spelling or synonym of a location.
type LocationAlias struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	LocationID int64  `gorm:"column:location_id;not null;uniqueIndex:idx_location_alias"`
	Alias      string `gorm:"column:alias;not null;uniqueIndex:idx_location_alias"`
	Position   int    `gorm:"column:position;not null;default:0"`
}

func (LocationAlias) TableName() string { return "location_aliases" }

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&User{},
		&JobSeeker{},
		&EquipmentOwner{},
		&Equipment{},
		&ContactInquiry{},
		&Location{},
		&LocationAlias{},
	}
}

package locations

import (
	"context"
	"fmt"

	"github.com/angelmondragon/talentconnect-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads and seeds the location reference tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Count returns the number of stored locations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Location{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// All returns every location and alias row.
func (r *Repository) All(ctx context.Context) ([]models.Location, []models.LocationAlias, error) {
	var rows []models.Location
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("list locations: %w", err)
	}
	var aliases []models.LocationAlias
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&aliases).Error; err != nil {
		return nil, nil, fmt.Errorf("list location aliases: %w", err)
	}
	return rows, aliases, nil
}

// InsertTree writes nodes depth-first, letting the database assign ids.
func (r *Repository) InsertTree(ctx context.Context, nodes []SeedNode) (int, error) {
	inserted := 0
	var walk func(list []SeedNode, parent *int64) error
	walk = func(list []SeedNode, parent *int64) error {
		for i, node := range list {
			row := models.Location{Name: node.Name, Kind: node.Kind, ParentID: parent, Position: i}
			if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
				return fmt.Errorf("insert location %q: %w", node.Name, err)
			}
			inserted++
			for j, alias := range node.Aliases {
				aliasRow := models.LocationAlias{LocationID: row.ID, Alias: alias, Position: j}
				if err := r.db.WithContext(ctx).Create(&aliasRow).Error; err != nil {
					return fmt.Errorf("insert alias %q: %w", alias, err)
				}
			}
			id := row.ID
			if err := walk(node.Children, &id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(nodes, nil); err != nil {
		return 0, err
	}
	return inserted, nil
}

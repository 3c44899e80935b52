package locations

import (
	"context"
	"fmt"

	"github.com/angelmondragon/talentconnect-backend/pkg/db"
	"github.com/angelmondragon/talentconnect-backend/pkg/logger"
	"gorm.io/gorm"
)

// Seed inserts the embedded hierarchy when the locations table is empty.
func Seed(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	nodes, err := DefaultSeed()
	if err != nil {
		return err
	}
	return client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		total, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count locations: %w", err)
		}
		if total > 0 {
			return nil
		}
		inserted, err := repo.InsertTree(ctx, nodes)
		if err != nil {
			return err
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "locations", inserted), "locations.seeded")
		}
		return nil
	})
}

// Load reads the stored hierarchy. An empty table falls back to the embedded
// seed so filters keep working before the first seed.
func Load(ctx context.Context, client *db.Client, logg *logger.Logger) (*Hierarchy, error) {
	rows, aliases, err := NewRepository(client.DB()).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		nodes, err := DefaultSeed()
		if err != nil {
			return nil, err
		}
		if logg != nil {
			logg.Warn(ctx, "locations.table_empty_using_embedded_seed")
		}
		return FromSeed(nodes), nil
	}
	h := NewHierarchy(rows, aliases)
	if logg != nil {
		logg.Info(logg.WithField(ctx, "locations", h.Len()), "locations.loaded")
	}
	return h, nil
}

package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ecotrace/ecotrace-core/internal/store/schema"
)

// partialIndexes are uniqueness rules gorm struct tags cannot express.
// They hold the store's two strongest invariants at the database level:
// at most one earned credit entry per item, and at most one open
// assignment per item.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_carbon_credits_earned_item
		ON carbon_credits (ewaste_item_id)
		WHERE transaction_type = 'earned' AND ewaste_item_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ewaste_assignments_open_item
		ON ewaste_assignments (item_id)
		WHERE status IN ('pending', 'active', 'accepted')`,
}

// Migrate creates or updates the database schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&schema.Profile{},
		&schema.Organization{},
		&schema.Item{},
		&schema.TrackingEvent{},
		&schema.Assignment{},
		&schema.QRToken{},
		&schema.CarbonCredit{},
		&schema.AdminLog{},
		&schema.Campaign{},
		&schema.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}

	return nil
}

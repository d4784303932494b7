package repository

import (
	"qsite/internal/status/domain"

	"gorm.io/gorm"
)

// Migrate create status tables and the one-shared-status-per-user index
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Status{}, &domain.Star{}); err != nil {
		return err
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_statuses_one_shared
		ON statuses (user_id) WHERE shared_to_profile`).Error
}

package repository

import (
	"qsite/internal/messaging/domain"

	"gorm.io/gorm"
)

// Migrate create / update messaging tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Conversation{},
		&domain.Message{},
		&domain.ReadState{},
		&domain.Block{},
		&domain.Report{},
	)
}

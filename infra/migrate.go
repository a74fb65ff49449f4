package infra

import (
	"github.com/yieldvault/yieldvault/infra/repository"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the ledger schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(repository.AllModels()...)
}

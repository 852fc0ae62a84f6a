package db

import (
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Catalog
		&types.Course{},
		&types.Topic{},
		&types.TopicContent{},

		// Progress
		&types.TopicProgress{},
	)
}

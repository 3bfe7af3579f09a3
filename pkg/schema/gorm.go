package schema

import (
	"gorm.io/gorm"
)

// Migrate runs GORM AutoMigrate to create or update the feature tables
// with the given prefix.
func Migrate(db *gorm.DB, prefix string) error {
	for _, m := range AllModels() {
		err := db.Table(Table(prefix, m.TableName())).AutoMigrate(m)
		if err != nil {
			return err
		}
	}
	return nil
}

package migrations

import (
	"fmt"

	"github.com/devtrack/engine/internal/models"
	"gorm.io/gorm"
)

// Models returns all models that need migration, parents first.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.Feature{},
		&models.Bug{},
		&models.Improvement{},
		&models.Activity{},
	}
}

// Run executes all database migrations.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return runCustomMigrations(db)
}

// Reset drops every table and migrates from scratch.
func Reset(db *gorm.DB) error {
	m := Models()
	// Children first so foreign keys never block the drop.
	for i := len(m) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(m[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return Run(db)
}

// runCustomMigrations handles data fixes AutoMigrate can't express.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		backfillEmptyLists,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// backfillEmptyLists replaces NULL or blank JSON list columns with "[]".
func backfillEmptyLists(db *gorm.DB) error {
	columns := []struct{ table, column string }{
		{"projects", "setup_steps"},
		{"features", "tags"},
		{"bugs", "tags"},
		{"improvements", "tags"},
	}
	for _, c := range columns {
		stmt := fmt.Sprintf("UPDATE %s SET %s = '[]' WHERE %s IS NULL OR %s = ''", c.table, c.column, c.column, c.column)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("backfill %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

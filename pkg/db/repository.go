// pkg/db/repository.go
package db

import (
	"strconv"

	"github.com/irondsc/tg-habit-tracker/pkg/config"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Export DB variable
var DB *gorm.DB

const defaultSQLitePath = "habits.db"

func InitDB(cfg config.DatabaseConfig) error {
	gormLogger, gormErr := newGormLogger(config.AppConfig.Logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", config.AppConfig.Logging.GormLevel, "error", gormErr)
	}

	var err error
	DB, err = gorm.Open(openDialector(cfg), &gorm.Config{Logger: gormLogger})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}
	if err := DB.AutoMigrate(&Habit{}, &ConversationState{}); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	if err := migrateLegacyHabitColumns(DB); err != nil {
		logger.Error("failed to migrate legacy habit columns", "error", err)
		return err
	}
	return nil
}

func openDialector(cfg config.DatabaseConfig) gorm.Dialector {
	if cfg.Host != "" {
		dsn := "host=" + cfg.Host +
			" user=" + cfg.User +
			" password=" + cfg.Password +
			" dbname=" + cfg.DBName +
			" port=" + strconv.Itoa(cfg.Port) +
			" sslmode=" + cfg.SSLMode
		return postgres.Open(dsn)
	}
	path := cfg.Path
	if path == "" {
		path = defaultSQLitePath
	}
	return sqlite.Open(path)
}

// migrateLegacyHabitColumns brings pre-archiving habit tables up to the
// current schema. Adding a column that already exists is a no-op, so the
// pass is safe to run on every startup.
func migrateLegacyHabitColumns(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	migrator := db.Migrator()
	for _, column := range []string{"archived", "blocked"} {
		if migrator.HasColumn(&Habit{}, column) {
			continue
		}
		if err := migrator.AddColumn(&Habit{}, column); err != nil {
			return err
		}
	}
	return nil
}

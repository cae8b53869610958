package models

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Dialect string
	DSN     string
	Debug   bool
}

// InitDB opens the connection for the configured dialect. Driver errors are
// translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Dialect {
	case "", DialectMySQL:
		dialector = mysql.Open(config.DSN)
	case DialectPostgres:
		dialector = postgres.Open(config.DSN)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", config.Dialect)
	}

	level := logger.Warn
	if config.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates all tables and the active slot index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&File{},
		&User{},
		&RefreshToken{},
		&Appointment{},
		&Notification{},
	)
	if err != nil {
		return err
	}
	return migrateActiveSlotIndex(db)
}

const activeSlotIndex = "idx_appointments_active_slot"

// migrateActiveSlotIndex enforces at most one non-canceled appointment per
// (provider_id, date). Postgres gets a partial unique index; MySQL has no
// partial indexes, so a generated column that is NULL for canceled rows
// takes part in the unique key instead.
func migrateActiveSlotIndex(db *gorm.DB) error {
	m := db.Migrator()
	switch db.Dialector.Name() {
	case DialectPostgres:
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + activeSlotIndex +
			` ON appointments (provider_id, "date") WHERE canceled_at IS NULL`).Error
	case DialectMySQL:
		if !m.HasColumn(&Appointment{}, "active_slot") {
			err := db.Exec("ALTER TABLE appointments ADD COLUMN active_slot TINYINT " +
				"GENERATED ALWAYS AS (IF(canceled_at IS NULL, 1, NULL)) STORED").Error
			if err != nil {
				return fmt.Errorf("add active_slot column: %w", err)
			}
		}
		if !m.HasIndex(&Appointment{}, activeSlotIndex) {
			err := db.Exec("CREATE UNIQUE INDEX " + activeSlotIndex +
				" ON appointments (provider_id, `date`, active_slot)").Error
			if err != nil {
				return fmt.Errorf("create %s: %w", activeSlotIndex, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("no active slot index for dialect %q", db.Dialector.Name())
	}
}

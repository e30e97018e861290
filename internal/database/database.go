package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
)

// models lists every entity managed by migrations and Reset.
var models = []any{
	&entities.Book{},
}

var ErrDSNRequired = errors.New("postgres driver requires DATABASE_DSN")

// BookNameIndex is the unique index backing duplicate-name rejection.
const BookNameIndex = "idx_books_name"

// SchemaStatus reports which parts of the books schema are present.
type SchemaStatus struct {
	BooksTable      bool
	UniqueNameIndex bool
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a SQLite database at dbPath.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.Database{Driver: config.DriverSQLite, Path: dbPath, LogLevel: "warn"})
}

// Open connects using the configured driver and migrates the schema.
func Open(cfg config.Database) (*Database, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}
	if err := database.migrate(); err != nil {
		return nil, err
	}

	log.Printf("Database initialized successfully (%s)", describe(cfg))

	return database, nil
}

func newDialector(cfg config.Database) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, ErrDSNRequired
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// describe avoids logging Postgres credentials.
func describe(cfg config.Database) string {
	if strings.EqualFold(cfg.Driver, config.DriverPostgres) {
		return "postgres"
	}
	return "sqlite at " + cfg.Path
}

func (d *Database) migrate() error {
	if err := d.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops every table and recreates the schema. All rows are lost.
func (d *Database) Reset() error {
	if err := d.DB.Migrator().DropTable(models...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	log.Printf("Dropped %d table(s)", len(models))
	return d.migrate()
}

// Schema inspects the live schema. Without the unique index duplicate names
// would no longer be rejected, so callers treat its absence as a fault.
func (d *Database) Schema() SchemaStatus {
	migrator := d.DB.Migrator()
	book := &entities.Book{}
	return SchemaStatus{
		BooksTable:      migrator.HasTable(book),
		UniqueNameIndex: migrator.HasIndex(book, BookNameIndex),
	}
}

// Ping checks connectivity of the underlying connection pool.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

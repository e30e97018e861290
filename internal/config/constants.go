package config

const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./library.db"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

package cli

import (
	"errors"
	"flag"
	"strings"

	"github.com/mrlokans/library/internal/config"
)

// ErrDBFlagRequiresSQLite is returned when -db is passed while
// DATABASE_DRIVER selects a server database.
var ErrDBFlagRequiresSQLite = errors.New("-db only applies to the sqlite driver; use DATABASE_DSN for postgres")

const dbFlagUsage = "Path to the SQLite database file (sqlite driver only)"

func checkDBFlag(fs *flag.FlagSet, db config.Database) error {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "db" {
			set = true
		}
	})

	driver := strings.ToLower(strings.TrimSpace(db.Driver))
	if set && driver != "" && driver != config.DriverSQLite {
		return ErrDBFlagRequiresSQLite
	}
	return nil
}

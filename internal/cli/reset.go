package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
)

type ResetCommand struct {
	Database config.Database
	Confirm  bool
}

func NewResetCommand() *ResetCommand {
	return &ResetCommand{Database: config.NewConfig().Database}
}

func (cmd *ResetCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)

	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, dbFlagUsage)
	fs.BoolVar(&cmd.Confirm, "yes", false, "Confirm that all books should be deleted")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s reset -yes [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Drop and recreate all tables. Every book is deleted.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := checkDBFlag(fs, cmd.Database); err != nil {
		return err
	}

	if !cmd.Confirm {
		fs.Usage()
		return fmt.Errorf("refusing to reset without -yes")
	}

	return nil
}

func (cmd *ResetCommand) Run() error {
	db, err := database.Open(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		return err
	}

	fmt.Println("Database reset complete")
	return nil
}

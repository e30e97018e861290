package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

// SeedFile is the YAML layout accepted by the seed command:
//
//	books:
//	  - name: Dune
//	    author: Frank Herbert
//	    year_published: 1965
//	    book_type: Novel
//	    status: available   # optional
type SeedFile struct {
	Books []SeedBook `yaml:"books"`
}

type SeedBook struct {
	Name          string `yaml:"name"`
	Author        string `yaml:"author"`
	YearPublished int    `yaml:"year_published"`
	BookType      string `yaml:"book_type"`
	Status        string `yaml:"status"`

	// TypeErrors lists fields whose YAML value had the wrong kind, e.g. a
	// number for name. Such a record is never inserted.
	TypeErrors []string `yaml:"-"`
}

// UnmarshalYAML checks the tag of every scalar instead of letting yaml.v3
// coerce `name: 1984` into the string "1984".
func (b *SeedBook) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name          yaml.Node `yaml:"name"`
		Author        yaml.Node `yaml:"author"`
		YearPublished yaml.Node `yaml:"year_published"`
		BookType      yaml.Node `yaml:"book_type"`
		Status        yaml.Node `yaml:"status"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*b = SeedBook{}
	b.Name = b.text("name", &raw.Name)
	b.Author = b.text("author", &raw.Author)
	b.YearPublished = b.year("year_published", &raw.YearPublished)
	b.BookType = b.text("book_type", &raw.BookType)
	b.Status = b.text("status", &raw.Status)
	return nil
}

func (b *SeedBook) text(field string, n *yaml.Node) string {
	if isAbsent(n) {
		return ""
	}
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		return n.Value
	}
	b.TypeErrors = append(b.TypeErrors, field+" must be a string")
	return ""
}

func (b *SeedBook) year(field string, n *yaml.Node) int {
	if isAbsent(n) {
		return 0
	}
	var v int
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!int" {
		if err := n.Decode(&v); err == nil {
			return v
		}
	}
	b.TypeErrors = append(b.TypeErrors, field+" must be an integer")
	return 0
}

// isAbsent treats a missing key and an explicit null alike; validation
// rejects both as required.
func isAbsent(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// SeedResult summarises a seed run.
type SeedResult struct {
	Created    int
	Duplicates int
	Invalid    int
	Failures   []string
}

// BookCreator is the part of the books repository used for seeding.
type BookCreator interface {
	CreateBook(book *entities.Book) error
}

type SeedCommand struct {
	File     string
	Database config.Database
	Verbose  bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Database: config.NewConfig().Database}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.File, "file", "", "YAML file with books to load (required)")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, dbFlagUsage)
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every rejected record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load books from a YAML file. Invalid and duplicate records are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -file ./books.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file ./books.yaml -db ./library.db -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := checkDBFlag(fs, cmd.Database); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	seed, err := LoadSeedFile(cmd.File)
	if err != nil {
		return err
	}

	db, err := database.Open(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	result := Seed(books.NewRepository(db.DB), seed.Books)

	fmt.Printf("\n=== Seed Results ===\n")
	fmt.Printf("Books created: %d\n", result.Created)
	fmt.Printf("Duplicates skipped: %d\n", result.Duplicates)
	fmt.Printf("Invalid records skipped: %d\n", result.Invalid)
	if cmd.Verbose {
		for _, failure := range result.Failures {
			fmt.Printf("  - %s\n", failure)
		}
	}

	return nil
}

// LoadSeedFile reads and parses a YAML seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Seed inserts each record independently; one bad record does not stop the run.
func Seed(store BookCreator, records []SeedBook) SeedResult {
	var result SeedResult
	for i, record := range records {
		if len(record.TypeErrors) > 0 {
			result.Invalid++
			result.Failures = append(result.Failures, fmt.Sprintf("record %d (%q): %s",
				i+1, record.Name, strings.Join(record.TypeErrors, "; ")))
			continue
		}

		book := &entities.Book{
			Name:          record.Name,
			Author:        record.Author,
			YearPublished: record.YearPublished,
			BookType:      record.BookType,
			Status:        record.Status,
		}

		err := store.CreateBook(book)
		switch {
		case err == nil:
			result.Created++
			continue
		case errors.Is(err, books.ErrDuplicateName):
			result.Duplicates++
		default:
			result.Invalid++
		}
		result.Failures = append(result.Failures, fmt.Sprintf("record %d (%q): %v", i+1, record.Name, err))
	}
	return result
}

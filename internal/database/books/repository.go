// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	err := repo.CreateBook(&entities.Book{Name: "Dune", ...})
//	book, err := repo.GetBookByName("Dune")
package books

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateName = errors.New("a book with this name already exists")
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book. Validation errors from the entity hook are
// returned unchanged; a name collision returns ErrDuplicateName.
func (r *Repository) CreateBook(book *entities.Book) error {
	err := r.db.Create(book).Error
	if err == nil {
		log.Printf("Created book %q (id=%d)", book.Name, book.ID)
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, book.Name)
	}
	return err
}

// GetBookByName returns the first book with the given name.
func (r *Repository) GetBookByName(name string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("name = ?", name).First(&book).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &book, nil
}

// GetBookByID retrieves a book by its primary key.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &book, nil
}

// GetAllBooks returns every book ordered by name.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("name ASC").Find(&books).Error
	return books, err
}

func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// DeleteBook removes a book permanently so its name can be reused.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	log.Printf("Deleted book id=%d", id)
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookNotFound
	}
	return err
}

// isUniqueViolation covers dialects whose errors gorm does not translate.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

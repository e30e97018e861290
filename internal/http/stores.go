package http

import "github.com/mrlokans/library/internal/entities"

// BookStore is the persistence surface used by BooksController and the
// health endpoint.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByName(name string) (*entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	CountBooks() (int64, error)
	DeleteBook(id uint) error
}

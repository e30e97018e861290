package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

// CreateBookRequest uses pointers so that JSON null and a missing key are
// both seen as absent and rejected by validation.
type CreateBookRequest struct {
	Name          *string `json:"name"`
	Author        *string `json:"author"`
	YearPublished *int    `json:"year_published"`
	BookType      *string `json:"book_type"`
	Status        *string `json:"status"`
}

func (r CreateBookRequest) toBook() *entities.Book {
	book := &entities.Book{}
	if r.Name != nil {
		book.Name = *r.Name
	}
	if r.Author != nil {
		book.Author = *r.Author
	}
	if r.YearPublished != nil {
		book.YearPublished = *r.YearPublished
	}
	if r.BookType != nil {
		book.BookType = *r.BookType
	}
	if r.Status != nil {
		book.Status = *r.Status
	}
	return book
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book := req.toBook()
	if err := controller.store.CreateBook(book); err != nil {
		var verr *entities.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(c, http.StatusUnprocessableEntity, CodeValidationFailed, "invalid book", verr.Fields)
		case errors.Is(err, books.ErrDuplicateName):
			respondError(c, http.StatusConflict, CodeDuplicateName, books.ErrDuplicateName.Error(), nil)
		default:
			respondInternalError(c, err, "create book")
		}
		return
	}

	respondCreated(c, book)
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	all, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": all, "count": len(all)})
}

func (controller *BooksController) GetBookByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		respondBadRequest(c, "name query parameter is required")
		return
	}

	book, err := controller.store.GetBookByName(name)
	if err != nil {
		controller.respondLookupError(c, err, "get book by name")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBookByID(id)
	if err != nil {
		controller.respondLookupError(c, err, "get book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.DeleteBook(id); err != nil {
		controller.respondLookupError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}

func (controller *BooksController) respondLookupError(c *gin.Context, err error, context string) {
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	respondInternalError(c, err, context)
}

// respondBindError distinguishes oversized bodies and wrongly typed fields
// from otherwise malformed JSON.
func respondBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		respondError(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body too large", nil)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		respondError(c, http.StatusBadRequest, CodeInvalidJSON, "invalid field type", []entities.FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: "must be of type " + typeErr.Type.String(),
		}})
		return
	}

	respondError(c, http.StatusBadRequest, CodeInvalidJSON, "invalid request body", nil)
}

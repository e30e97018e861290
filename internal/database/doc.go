// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, driver selection, migrations, Reset
//	└── books/           # Book CRUD operations
//
// # Usage
//
//	db, err := database.Open(cfg.Database)
//	booksRepo := books.NewRepository(db.DB)
//
//	err = booksRepo.CreateBook(&entities.Book{...})
//	book, err := booksRepo.GetBookByName("Dune")
//
// Constraint violations surface on commit: validation runs in the entity's
// BeforeSave hook and uniqueness is enforced by the database index, with
// TranslateError mapping it to gorm.ErrDuplicatedKey.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in the models list in database.go
//  5. Add compile-time interface check in internal/interfaces
package database

package entities

import (
	"time"

	"gorm.io/gorm"
)

// DefaultBookStatus is applied to books created without an explicit status.
const DefaultBookStatus = "available"

// Column widths. They double as validation limits so oversized values are
// rejected before reaching the database.
const (
	MaxNameLength     = 64
	MaxAuthorLength   = 64
	MaxBookTypeLength = 20
	MaxStatusLength   = 20
)

// Book is a catalogue record. Name is unique across the store; every text
// field is length-limited and restricted to safe characters by Validate.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;size:64;not null" json:"name" validate:"required,max=64,safetext"`
	Author        string    `gorm:"size:64;not null" json:"author" validate:"required,max=64,safetext"`
	YearPublished int       `gorm:"not null" json:"year_published" validate:"required,min=1,notfuture"`
	BookType      string    `gorm:"size:20;not null" json:"book_type" validate:"required,max=20,safetext"`
	Status        string    `gorm:"size:20;not null;default:available" json:"status" validate:"required,max=20,safetext"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApplyDefaults fills optional fields that were left empty.
func (b *Book) ApplyDefaults() {
	if b.Status == "" {
		b.Status = DefaultBookStatus
	}
}

// BeforeSave runs on every create and update, so no invalid row reaches the
// database regardless of which code path writes it.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	b.ApplyDefaults()
	return b.Validate()
}

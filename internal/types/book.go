package types

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Book struct {
	ID            string                      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Title         string                      `gorm:"not null;column:title" json:"title"`
	Description   *string                     `gorm:"type:text;column:description" json:"description,omitempty"`
	AverageRating float64                     `gorm:"column:average_rating;default:0" json:"average_rating"`
	PublishedYear *int                        `gorm:"column:published_year" json:"published_year,omitempty"`
	NumberOfPages *int                        `gorm:"column:number_of_pages" json:"number_of_pages,omitempty"`
	Subjects      datatypes.JSONSlice[string] `gorm:"column:subjects" json:"subjects"`
	AuthorID      *string                     `gorm:"type:uuid;column:author_id" json:"author_id,omitempty"`
	GenreID       *string                     `gorm:"type:uuid;column:genre_id" json:"genre_id,omitempty"`
	Author        *Author                     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genre         *Genre                      `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GenreName returns the genre label, or "" when the book has none.
func (b *Book) GenreName() string {
	if b.Genre == nil {
		return ""
	}
	return b.Genre.Name
}

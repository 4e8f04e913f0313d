package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Rating    int       `gorm:"not null;column:rating" json:"rating"`
	Comment   string    `gorm:"type:text;column:comment" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
	BookID    string    `gorm:"type:uuid;not null;column:book_id" json:"book_id"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

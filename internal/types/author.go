package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID   string `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name string `gorm:"not null;column:name" json:"name"`
	Bio  string `gorm:"type:text;column:bio" json:"bio,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

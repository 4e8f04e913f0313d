package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Genre struct {
	ID   string `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name string `gorm:"not null;column:name" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is immutable reference data; recipe operations only read it.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name            string    `gorm:"size:200;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name  string    `gorm:"size:200;not null" json:"name"`
	Color string    `gorm:"size:7;not null" json:"color"`
	Slug  string    `gorm:"size:200;not null;uniqueIndex" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

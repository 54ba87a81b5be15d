package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:nombre;not null;size:150;uniqueIndex:idx_categories_nombre" json:"nombre"`
	Description string    `gorm:"column:descripcion;not null;type:text" json:"descripcion"`
	CreatedAt   time.Time `gorm:"column:creado" json:"creado"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

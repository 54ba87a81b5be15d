package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement is a site-wide notice, visible while StartsAt <= now <= EndsAt.
type Announcement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:titulo;not null;size:255" json:"titulo"`
	Content   string    `gorm:"column:contenido;not null;type:text" json:"contenido"`
	ImageURL  *string   `gorm:"column:imagen_url;size:1024" json:"imagenUrl,omitempty"`
	StartsAt  time.Time `gorm:"column:fecha_inicio;not null;index" json:"fechaInicio"`
	EndsAt    time.Time `gorm:"column:fecha_final;not null;index" json:"fechaFinal"`
	CreatedAt time.Time `gorm:"column:creado" json:"creado"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Active reports whether the announcement is visible at t.
func (a *Announcement) Active(t time.Time) bool {
	return !t.Before(a.StartsAt) && !t.After(a.EndsAt)
}

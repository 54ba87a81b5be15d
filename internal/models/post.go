package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a forum article. Deleting a post cascades to its comments and
// ratings; reports keep a null post reference.
type Post struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"column:titulo;not null;size:255" json:"titulo"`
	Content    string    `gorm:"column:contenido;not null;type:text" json:"contenido"`
	PdfURL     *string   `gorm:"column:pdf_url;size:1024" json:"pdfUrl,omitempty"`
	ImageURL   *string   `gorm:"column:imagen_url;size:1024" json:"imagenUrl,omitempty"`
	AuthorID   uuid.UUID `gorm:"column:autor_id;type:uuid;not null;index" json:"autor_id"`
	CategoryID uuid.UUID `gorm:"column:categoria_id;type:uuid;not null;index" json:"categoria_id"`
	CreatedAt  time.Time `gorm:"column:creado;index" json:"creado"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Category   Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

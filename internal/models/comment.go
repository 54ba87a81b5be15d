package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"column:contenido;not null;type:text" json:"contenido"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  uuid.UUID `gorm:"column:autor_id;type:uuid;not null;index" json:"autor_id"`
	CreatedAt time.Time `gorm:"column:creado" json:"creado"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

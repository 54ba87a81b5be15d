package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportPending  = "pendiente"
	ReportReviewed = "revisado"
	ReportRejected = "rechazado"
)

// Report is a user's complaint about a post. PostID becomes NULL once
// the post is removed, and the (user, post) index keeps one report per
// pair while the post exists.
type Report struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reports_user_post,priority:1" json:"user_id"`
	PostID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reports_user_post,priority:2;index" json:"post_id"`
	Reason    string     `gorm:"column:motivo;not null;size:1000" json:"motivo"`
	Status    string     `gorm:"column:estado;not null;default:'pendiente';size:20;index" json:"estado"`
	CreatedAt time.Time  `gorm:"column:fecha_creacion" json:"fechaCreacion"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post      *Post      `gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "administrador"
	RoleModerator = "moderador"
	RoleMember    = "miembro"
)

// Roles is the closed set of values accepted for User.Role.
var Roles = []string{RoleAdmin, RoleModerator, RoleMember}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nombre;not null;size:100" json:"nombre"`
	Surname   string    `gorm:"column:apellido;not null;size:100" json:"apellido"`
	Email     string    `gorm:"not null;size:255;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `gorm:"column:celular;not null;size:50" json:"celular"`
	Country   string    `gorm:"column:pais;not null;size:100" json:"pais"`
	City      string    `gorm:"column:ciudad;not null;size:100" json:"ciudad"`
	Sector    string    `gorm:"column:rubro;not null;size:100" json:"rubro"`
	Role      string    `gorm:"column:rol;size:20;not null;default:'miembro'" json:"rol"`
	CreatedAt time.Time `gorm:"column:creado" json:"creado"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

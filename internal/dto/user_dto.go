package dto

import (
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Name     string `json:"nombre" validate:"required,max=100"`
	Surname  string `json:"apellido" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"celular" validate:"required,max=50"`
	Country  string `json:"pais" validate:"required,max=100"`
	City     string `json:"ciudad" validate:"required,max=100"`
	Sector   string `json:"rubro" validate:"required,max=100"`
	// Role is accepted on the wire but never trusted.
	Role string `json:"rol"`
}

type UpdateUserInput struct {
	Name     *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Surname  *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Phone    *string `json:"celular" validate:"omitempty,max=50"`
	Country  *string `json:"pais" validate:"omitempty,max=100"`
	City     *string `json:"ciudad" validate:"omitempty,max=100"`
	Sector   *string `json:"rubro" validate:"omitempty,max=100"`
}

type AuthInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UserView never carries the password hash.
type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Email   string `json:"email"`
	Phone   string `json:"celular"`
	Country string `json:"pais"`
	City    string `json:"ciudad"`
	Sector  string `json:"rubro"`
	Role    string `json:"rol"`
	Created string `json:"creado"`
}

func NewUserView(u *models.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:      formatID(u.ID),
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Phone:   u.Phone,
		Country: u.Country,
		City:    u.City,
		Sector:  u.Sector,
		Role:    u.Role,
		Created: FormatTime(u.CreatedAt),
	}
}

// loadedUser returns a view for an association, or nil when it was not loaded.
func loadedUser(u models.User) *UserView {
	if u.ID == uuid.Nil {
		return nil
	}
	return NewUserView(&u)
}

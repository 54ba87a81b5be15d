package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errEmailTaken = newError(ErrConflict, "El email ya está registrado")

// AuthService registers users, issues credentials and reconstructs the
// caller identity from them. It keeps no session state.
type AuthService struct {
	users    repository.UserRepository
	cfg      *config.Config
	validate *validation.Validator
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, cfg *config.Config, v *validation.Validator) *AuthService {
	return &AuthService{users: users, cfg: cfg, validate: v, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.UserView, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, errEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, upstream("Error al registrar el usuario", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, upstream("Error al registrar el usuario", fmt.Errorf("failed to hash password: %w", err))
	}

	role := models.RoleMember
	if s.cfg.IsAdminEmail(in.Email) {
		role = models.RoleAdmin
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(in.Name),
		Surname:  strings.TrimSpace(in.Surname),
		Email:    in.Email,
		Password: string(hash),
		Phone:    strings.TrimSpace(in.Phone),
		Country:  strings.TrimSpace(in.Country),
		City:     strings.TrimSpace(in.City),
		Sector:   strings.TrimSpace(in.Sector),
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, upstream("Error al registrar el usuario", err)
	}

	slog.Info("user registered", "user_id", user.ID.String(), "role", role)
	return dto.NewUserView(&user), nil
}

func (s *AuthService) Authenticate(ctx context.Context, in dto.AuthInput) (*dto.TokenResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, lookupError(err, "El usuario no existe", "Error al autenticar el usuario")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, newError(ErrInvalidCredentials, "El password es incorrecto")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, upstream("Error al autenticar el usuario", err)
	}
	return &dto.TokenResponse{Token: token}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"email":    user.Email,
		"nombre":   user.Name,
		"apellido": user.Surname,
		"rol":      user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ResolveCaller verifies a raw credential (with or without the Bearer
// prefix) and returns the caller it encodes. Any failure yields nil.
func (s *AuthService) ResolveCaller(raw string) *auth.Caller {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		slog.Debug("credential rejected", "error", err)
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return CallerFromClaims(claims)
}

// CallerFromClaims maps verified token claims onto a Caller. It returns nil
// when the claims do not describe a valid identity.
func CallerFromClaims(claims jwt.MapClaims) *auth.Caller {
	rawID, _ := claims["id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}
	role, _ := claims["rol"].(string)
	if !models.ValidRole(role) {
		return nil
	}
	email, _ := claims["email"].(string)
	name, _ := claims["nombre"].(string)
	surname, _ := claims["apellido"].(string)
	return &auth.Caller{ID: id, Email: email, Name: name, Surname: surname, Role: role}
}

// Me returns the caller's stored profile.
func (s *AuthService) Me(ctx context.Context, caller *auth.Caller) (*dto.UserView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, lookupError(err, "Usuario no encontrado", "Error al obtener el usuario")
	}
	return dto.NewUserView(user), nil
}

func (s *AuthService) ListUsers(ctx context.Context, caller *auth.Caller) ([]*dto.UserView, error) {
	if err := denied(policy.CanModerate(caller), "No autorizado"); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, upstream("Error al obtener los usuarios", err)
	}
	out := make([]*dto.UserView, len(users))
	for i := range users {
		out[i] = dto.NewUserView(&users[i])
	}
	return out, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller *auth.Caller, rawID string, in dto.UpdateUserInput) (*dto.UserView, error) {
	if caller == nil {
		return nil, errNotAuthenticated
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindProfile, id), "No tiene permiso para actualizar este perfil"); err != nil {
		return nil, err
	}
	if in.Email != nil {
		normalized := normalizeEmail(*in.Email)
		in.Email = &normalized
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Usuario no encontrado", "Error al actualizar el usuario")
	}

	if in.Email != nil && *in.Email != user.Email {
		if existing, err := s.users.FindByEmail(ctx, *in.Email); err == nil && existing.ID != user.ID {
			return nil, errEmailTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, upstream("Error al actualizar el usuario", err)
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, upstream("Error al actualizar el usuario", err)
		}
		user.Password = string(hash)
	}
	applyString(&user.Name, in.Name)
	applyString(&user.Surname, in.Surname)
	applyString(&user.Phone, in.Phone)
	applyString(&user.Country, in.Country)
	applyString(&user.City, in.City)
	applyString(&user.Sector, in.Sector)

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errEmailTaken
		}
		return nil, upstream("Error al actualizar el usuario", err)
	}
	return dto.NewUserView(user), nil
}

// ChangeRole lets an administrator set another user's role.
func (s *AuthService) ChangeRole(ctx context.Context, caller *auth.Caller, rawID, role string) (*dto.UserView, error) {
	if err := denied(policy.CanAdminister(caller), "Acceso denegado. Solo los administradores pueden cambiar roles."); err != nil {
		if caller != nil {
			slog.Warn("role change denied", "user_id", caller.ID.String(), "target", rawID)
		}
		return nil, err
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if caller.ID == id {
		return nil, newError(ErrForbidden, "No puedes cambiar tu propio rol.")
	}
	if !models.ValidRole(role) {
		return nil, newError(ErrInvalidInput, "Rol no válido. Los roles permitidos son: "+strings.Join(models.Roles, ", ")+".")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Usuario no encontrado", "Error al actualizar el rol")
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return nil, upstream("Error al actualizar el rol", err)
	}
	slog.Info("user role changed", "user_id", caller.ID.String(), "target", id.String(), "role", role)
	return dto.NewUserView(user), nil
}

// applyString overwrites dst with the trimmed value of src when src is set.
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

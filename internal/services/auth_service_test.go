package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) dto.RegisterInput {
	return dto.RegisterInput{
		Name:     "Luis",
		Surname:  "Gómez",
		Password: "secreto1",
		Email:    email,
		Phone:    "555-0101",
		Country:  "Perú",
		City:     "Lima",
		Sector:   "Tecnología",
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	u, err := h.auth.Register(ctx, registerInput("Luis@Foro.test"))
	require.NoError(t, err)
	assert.Equal(t, "luis@foro.test", u.Email)
	assert.Equal(t, models.RoleMember, u.Role)
	assert.NotEmpty(t, u.ID)

	_, err = h.auth.Register(ctx, registerInput(" luis@foro.test "))
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "El email ya está registrado", err.Error())
}

func TestRegister_RoleIsNotTrusted(t *testing.T) {
	h := newHarness(t)
	in := registerInput("mallory@foro.test")
	in.Role = models.RoleAdmin

	u, err := h.auth.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, u.Role)
}

func TestRegister_AdminBootstrap(t *testing.T) {
	h := newHarness(t)
	u, err := h.auth.Register(context.Background(), registerInput("root@foro.test"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestRegister_InvalidInput(t *testing.T) {
	h := newHarness(t)
	in := registerInput("corto@foro.test")
	in.Password = "123"

	_, err := h.auth.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = registerInput("no-es-email")
	_, err = h.auth.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered, err := h.auth.Register(ctx, registerInput("luis@foro.test"))
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := h.auth.Authenticate(ctx, dto.AuthInput{Email: "nadie@foro.test", Password: "secreto1"})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "El usuario no existe", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := h.auth.Authenticate(ctx, dto.AuthInput{Email: "luis@foro.test", Password: "otra-clave"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, "El password es incorrecto", err.Error())
	})

	t.Run("success", func(t *testing.T) {
		tok, err := h.auth.Authenticate(ctx, dto.AuthInput{Email: "LUIS@foro.test", Password: "secreto1"})
		require.NoError(t, err)
		require.NotEmpty(t, tok.Token)

		for _, raw := range []string{tok.Token, "Bearer " + tok.Token} {
			caller := h.auth.ResolveCaller(raw)
			require.NotNil(t, caller)
			assert.Equal(t, registered.ID, caller.ID.String())
			assert.Equal(t, "luis@foro.test", caller.Email)
			assert.Equal(t, "Luis", caller.Name)
			assert.Equal(t, "Gómez", caller.Surname)
			assert.Equal(t, models.RoleMember, caller.Role)
		}
	})
}

func TestResolveCaller_Rejects(t *testing.T) {
	h := newHarness(t)
	id := uuid.NewString()
	claims := func(exp time.Time) jwt.MapClaims {
		return jwt.MapClaims{"id": id, "email": "a@foro.test", "rol": models.RoleMember, "exp": exp.Unix()}
	}
	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, c jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}
	secret := []byte(h.cfg.JWTSecret)
	future := time.Now().Add(time.Hour)

	require.NotNil(t, h.auth.ResolveCaller(sign(t, jwt.SigningMethodHS256, secret, claims(future))))

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"bearer only":  "Bearer ",
		"expired":      sign(t, jwt.SigningMethodHS256, secret, claims(time.Now().Add(-time.Minute))),
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), claims(future)),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, secret, claims(future)),
		"alg none":     sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims(future)),
		"no expiry":    sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": id, "rol": models.RoleMember}),
		"bad id":       sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": "x", "rol": models.RoleMember, "exp": future.Unix()}),
		"bad role":     sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"id": id, "rol": "root", "exp": future.Unix()}),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, h.auth.ResolveCaller(raw))
		})
	}
}

func TestChangeRole(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	admin := h.user(t, models.RoleAdmin)
	member := h.user(t, models.RoleMember)
	target := h.user(t, models.RoleMember)

	_, err := h.auth.ChangeRole(ctx, nil, target.ID.String(), models.RoleModerator)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = h.auth.ChangeRole(ctx, member, target.ID.String(), models.RoleModerator)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = h.auth.ChangeRole(ctx, admin, admin.ID.String(), models.RoleMember)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "No puedes cambiar tu propio rol.", err.Error())

	_, err = h.auth.ChangeRole(ctx, admin, target.ID.String(), "superusuario")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = h.auth.ChangeRole(ctx, admin, uuid.NewString(), models.RoleModerator)
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := h.auth.ChangeRole(ctx, admin, target.ID.String(), models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, u.Role)

	me, err := h.auth.Me(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, me.Role)
}

func TestMeAndListUsers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	member := h.user(t, models.RoleMember)
	moderator := h.user(t, models.RoleModerator)

	_, err := h.auth.Me(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	me, err := h.auth.Me(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, member.ID.String(), me.ID)

	_, err = h.auth.ListUsers(ctx, member)
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := h.auth.ListUsers(ctx, moderator)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.auth.Register(ctx, registerInput("luis@foro.test"))
	require.NoError(t, err)
	luis := h.auth.ResolveCaller(mustToken(t, h, "luis@foro.test", "secreto1"))
	require.NotNil(t, luis)
	other := h.user(t, models.RoleMember)
	admin := h.user(t, models.RoleAdmin)

	city := "Cusco"
	_, err = h.auth.UpdateProfile(ctx, other, luis.ID.String(), dto.UpdateUserInput{City: &city})
	assert.ErrorIs(t, err, ErrForbidden)

	u, err := h.auth.UpdateProfile(ctx, admin, luis.ID.String(), dto.UpdateUserInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Cusco", u.City)

	taken := other.Email
	_, err = h.auth.UpdateProfile(ctx, luis, luis.ID.String(), dto.UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	pw := "nuevo-secreto"
	_, err = h.auth.UpdateProfile(ctx, luis, luis.ID.String(), dto.UpdateUserInput{Password: &pw})
	require.NoError(t, err)
	mustToken(t, h, "luis@foro.test", "nuevo-secreto")
}

func mustToken(t *testing.T, h *harness, email, password string) string {
	t.Helper()
	tok, err := h.auth.Authenticate(context.Background(), dto.AuthInput{Email: email, Password: password})
	require.NoError(t, err)
	return tok.Token
}

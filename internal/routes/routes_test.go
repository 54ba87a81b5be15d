package routes

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocal(dir, "http://localhost:4000")
	require.NoError(t, err)

	app := fiber.New()
	Setup(app, &config.Config{JWTSecret: "test-secret"}, Handlers{
		Health: handlers.NewHealthHandler(func() error { return nil }),
		Upload: handlers.NewUploadHandler(local),
		GraphQL: func(c *fiber.Ctx) error {
			if auth.FromLocals(c) == nil {
				return c.SendString("anonymous")
			}
			return c.SendString("caller")
		},
		FilesDir: local.Dir(),
	})
	return app, dir
}

func TestSetup_Routes(t *testing.T) {
	app, dir := newApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hola"), 0o644))

	tests := []struct {
		method, path string
		status       int
	}{
		{"GET", "/api/health", fiber.StatusOK},
		{"GET", "/graphql?query={__typename}", fiber.StatusOK},
		{"POST", "/graphql", fiber.StatusOK},
		{"GET", "/metrics", fiber.StatusOK},
		{"GET", "/files/a.txt", fiber.StatusOK},
		{"POST", "/upload", fiber.StatusBadRequest},
		{"GET", "/nope", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSetup_GraphQLWithoutTokenIsAnonymous(t *testing.T) {
	app, _ := newApp(t)
	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

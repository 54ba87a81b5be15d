package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository/repotest"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store *repository.Store
	db    *repotest.DB
	cfg   *config.Config

	auth          *AuthService
	categories    *CategoryService
	posts         *PostService
	comments      *CommentService
	ratings       *RatingService
	reports       *ReportService
	notifications *NotificationService
	announcements *AnnouncementService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, db := repotest.NewStore()
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		AdminEmails: []string{"root@foro.test"},
	}
	v := validation.New()
	return &harness{
		store:         store,
		db:            db,
		cfg:           cfg,
		auth:          NewAuthService(store.Users, cfg, v),
		categories:    NewCategoryService(store, v),
		posts:         NewPostService(store, v),
		comments:      NewCommentService(store, v),
		ratings:       NewRatingService(store, v),
		reports:       NewReportService(store, v),
		notifications: NewNotificationService(store),
		announcements: NewAnnouncementService(store, v),
	}
}

// user stores a user directly, skipping password hashing.
func (h *harness) user(t *testing.T, role string) *auth.Caller {
	t.Helper()
	u := models.User{
		ID:      uuid.New(),
		Name:    "Ana",
		Surname: "Pérez",
		Email:   uuid.NewString() + "@foro.test",
		Phone:   "555-0100",
		Country: "Chile",
		City:    "Santiago",
		Sector:  "Educación",
		Role:    role,
	}
	require.NoError(t, h.store.Users.Create(context.Background(), &u))
	return &auth.Caller{ID: u.ID, Email: u.Email, Name: u.Name, Surname: u.Surname, Role: role}
}

func (h *harness) category(t *testing.T, name string) *dto.CategoryView {
	t.Helper()
	admin := h.user(t, models.RoleAdmin)
	cat, err := h.categories.Create(context.Background(), admin, dto.CategoryInput{Name: name, Description: "Temas de " + name})
	require.NoError(t, err)
	return cat
}

func (h *harness) post(t *testing.T, author *auth.Caller, categoryID string) *dto.PostView {
	t.Helper()
	p, err := h.posts.Create(context.Background(), author, dto.PostInput{
		Title:      "Primer post",
		Content:    "Contenido del post",
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

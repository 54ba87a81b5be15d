// Package repository holds the typed store accessors for every forum
// entity. The GORM implementations live next to the interfaces; repotest
// provides an in-memory implementation for tests.
package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, u *models.User) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Save(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostFilter narrows List. A nil field means no constraint.
type PostFilter struct {
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
}

// PostRepository returns posts with Author and Category loaded.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, error)
	Save(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingRepository returns ratings with User and Post loaded.
type RatingRepository interface {
	Create(ctx context.Context, r *models.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rating, error)
	FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*models.Rating, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Rating, error)
	Save(ctx context.Context, r *models.Rating) error
}

// CommentRepository returns comments with Post (and its author) and Author loaded.
type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	Save(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Resolution describes the atomic outcome of reviewing a report.
type Resolution struct {
	Status       string
	DeletePostID *uuid.UUID
	Notification *models.Notification
}

// ReportRepository returns reports with User and Post loaded; either may be
// nil when the referenced row no longer exists.
type ReportRepository interface {
	Create(ctx context.Context, r *models.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Report, error)
	List(ctx context.Context) ([]models.Report, error)
	// Resolve applies the status change, the optional post deletion and the
	// notification insert in one transaction. It fails with ErrStale if the
	// report is no longer pending.
	Resolve(ctx context.Context, reportID uuid.UUID, res Resolution) error
}

// NotificationRepository returns notifications with User loaded.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	Save(ctx context.Context, n *models.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error)
	ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error)
	Save(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes announcements whose end date is strictly before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store bundles every repository so services can be built from one value.
type Store struct {
	Users         UserRepository
	Categories    CategoryRepository
	Posts         PostRepository
	Ratings       RatingRepository
	Comments      CommentRepository
	Reports       ReportRepository
	Notifications NotificationRepository
	Announcements AnnouncementRepository
}

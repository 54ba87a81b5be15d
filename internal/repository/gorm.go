package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewStore builds GORM-backed repositories sharing db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:         &userRepo{db: db},
		Categories:    &categoryRepo{db: db},
		Posts:         &postRepo{db: db},
		Ratings:       &ratingRepo{db: db},
		Comments:      &commentRepo{db: db},
		Reports:       &reportRepo{db: db},
		Notifications: &notificationRepo{db: db},
		Announcements: &announcementRepo{db: db},
	}
}

// deleteByID deletes one row of model by primary key and reports
// ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Users

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("creado ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *userRepo) Save(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

// Categories

type categoryRepo struct{ db *gorm.DB }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("nombre = ?", name).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("nombre ASC").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (r *categoryRepo) Save(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Category{}, id)
}

// Posts

type postRepo struct{ db *gorm.DB }

func (r *postRepo) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Author").Preload("Category")
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Category").Create(p).Error; err != nil {
		return translate(err)
	}
	return r.reload(ctx, p)
}

func (r *postRepo) reload(ctx context.Context, p *models.Post) error {
	return translate(r.withRefs(ctx).First(p, "id = ?", p.ID).Error)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	if err := r.withRefs(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *postRepo) List(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	q := r.withRefs(ctx)
	if filter.CategoryID != nil {
		q = q.Where("categoria_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		q = q.Where("autor_id = ?", *filter.AuthorID)
	}
	var posts []models.Post
	if err := q.Order("creado DESC").Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *postRepo) Save(ctx context.Context, p *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Category").Save(p).Error; err != nil {
		return translate(err)
	}
	return r.reload(ctx, p)
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Post{}, id)
}

// Ratings

type ratingRepo struct{ db *gorm.DB }

func (r *ratingRepo) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Post")
}

func (r *ratingRepo) Create(ctx context.Context, rt *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit("User", "Post").Create(rt).Error; err != nil {
		return translate(err)
	}
	return translate(r.withRefs(ctx).First(rt, "id = ?", rt.ID).Error)
}

func (r *ratingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Rating, error) {
	var rt models.Rating
	if err := r.withRefs(ctx).First(&rt, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (r *ratingRepo) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*models.Rating, error) {
	var rt models.Rating
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&rt).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (r *ratingRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.withRefs(ctx).Where("post_id = ?", postID).Order("creado ASC").Find(&ratings).Error; err != nil {
		return nil, translate(err)
	}
	return ratings, nil
}

func (r *ratingRepo) Save(ctx context.Context, rt *models.Rating) error {
	if err := r.db.WithContext(ctx).Omit("User", "Post").Save(rt).Error; err != nil {
		return translate(err)
	}
	return translate(r.withRefs(ctx).First(rt, "id = ?", rt.ID).Error)
}

// Comments

type commentRepo struct{ db *gorm.DB }

func (r *commentRepo) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Post.Author").Preload("Author")
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Post", "Author").Create(c).Error; err != nil {
		return translate(err)
	}
	return translate(r.withRefs(ctx).First(c, "id = ?", c.ID).Error)
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var c models.Comment
	if err := r.withRefs(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.withRefs(ctx).Where("post_id = ?", postID).Order("creado ASC").Find(&comments).Error; err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (r *commentRepo) Save(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Post", "Author").Save(c).Error; err != nil {
		return translate(err)
	}
	return translate(r.withRefs(ctx).First(c, "id = ?", c.ID).Error)
}

func (r *commentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Comment{}, id)
}

// Reports

type reportRepo struct{ db *gorm.DB }

func (r *reportRepo) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Post")
}

func (r *reportRepo) Create(ctx context.Context, rp *models.Report) error {
	if err := r.db.WithContext(ctx).Omit("User", "Post").Create(rp).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *reportRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var rp models.Report
	if err := r.withRefs(ctx).First(&rp, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rp, nil
}

func (r *reportRepo) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Report, error) {
	var rp models.Report
	if err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&rp).Error; err != nil {
		return nil, translate(err)
	}
	return &rp, nil
}

func (r *reportRepo) List(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := r.withRefs(ctx).Order("fecha_creacion DESC").Find(&reports).Error; err != nil {
		return nil, translate(err)
	}
	return reports, nil
}

func (r *reportRepo) Resolve(ctx context.Context, reportID uuid.UUID, res Resolution) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update: only a pending report may transition.
		result := tx.Model(&models.Report{}).
			Where("id = ? AND estado = ?", reportID, models.ReportPending).
			Update("estado", res.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStale
		}
		if res.DeletePostID != nil {
			if err := tx.Where("id = ?", *res.DeletePostID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}
		if res.Notification != nil {
			if err := tx.Omit("User").Create(res.Notification).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// Notifications

type notificationRepo struct{ db *gorm.DB }

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(n).Error)
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).Preload("User").First(&n, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("fecha_creacion DESC").
		Find(&notifications).Error; err != nil {
		return nil, translate(err)
	}
	return notifications, nil
}

func (r *notificationRepo) Save(ctx context.Context, n *models.Notification) error {
	return translate(r.db.WithContext(ctx).Omit("User").Save(n).Error)
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Notification{}, id)
}

// Announcements

type announcementRepo struct{ db *gorm.DB }

func (r *announcementRepo) Create(ctx context.Context, a *models.Announcement) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *announcementRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *announcementRepo) ListActive(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := r.db.WithContext(ctx).
		Where("fecha_inicio <= ? AND fecha_final >= ?", now, now).
		Order("fecha_inicio DESC").
		Find(&announcements).Error; err != nil {
		return nil, translate(err)
	}
	return announcements, nil
}

func (r *announcementRepo) Save(ctx context.Context, a *models.Announcement) error {
	return translate(r.db.WithContext(ctx).Save(a).Error)
}

func (r *announcementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Announcement{}, id)
}

func (r *announcementRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("fecha_final < ?", now).Delete(&models.Announcement{})
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

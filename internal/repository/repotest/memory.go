// Package repotest provides an in-memory repository.Store for tests. It
// mirrors the behavior of the GORM store that services rely on: unique
// indexes, reference loading, cascading deletes and transactional report
// resolution.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/google/uuid"
)

// DB is the shared in-memory state behind every repository of a Store.
type DB struct {
	mu            sync.Mutex
	now           func() time.Time
	users         map[uuid.UUID]models.User
	categories    map[uuid.UUID]models.Category
	posts         map[uuid.UUID]models.Post
	ratings       map[uuid.UUID]models.Rating
	comments      map[uuid.UUID]models.Comment
	reports       map[uuid.UUID]models.Report
	notifications map[uuid.UUID]models.Notification
	announcements map[uuid.UUID]models.Announcement

	// FailPostDelete makes the next post deletion inside Resolve fail so
	// tests can observe the rollback.
	FailPostDelete error
}

func NewDB() *DB {
	return &DB{
		now:           time.Now,
		users:         map[uuid.UUID]models.User{},
		categories:    map[uuid.UUID]models.Category{},
		posts:         map[uuid.UUID]models.Post{},
		ratings:       map[uuid.UUID]models.Rating{},
		comments:      map[uuid.UUID]models.Comment{},
		reports:       map[uuid.UUID]models.Report{},
		notifications: map[uuid.UUID]models.Notification{},
		announcements: map[uuid.UUID]models.Announcement{},
	}
}

// NewStore returns a Store backed by a fresh DB, plus the DB for inspection.
func NewStore() (*repository.Store, *DB) {
	db := NewDB()
	return db.Store(), db
}

func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Users:         userRepo{db},
		Categories:    categoryRepo{db},
		Posts:         postRepo{db},
		Ratings:       ratingRepo{db},
		Comments:      commentRepo{db},
		Reports:       reportRepo{db},
		Notifications: notificationRepo{db},
		Announcements: announcementRepo{db},
	}
}

// Counts used by assertions.

func (db *DB) PostCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.posts)
}

func (db *DB) NotificationsFor(userID uuid.UUID) []models.Notification {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Notification
	for _, n := range db.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (db *DB) AnnouncementCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.announcements)
}

func (db *DB) stamp(t *time.Time) {
	if t.IsZero() {
		*t = db.now().UTC()
	}
}

// deletePostLocked removes a post and applies the FK actions of the schema.
func (db *DB) deletePostLocked(id uuid.UUID) {
	delete(db.posts, id)
	for rid, r := range db.ratings {
		if r.PostID == id {
			delete(db.ratings, rid)
		}
	}
	for cid, c := range db.comments {
		if c.PostID == id {
			delete(db.comments, cid)
		}
	}
	for rid, r := range db.reports {
		if r.PostID != nil && *r.PostID == id {
			r.PostID = nil
			db.reports[rid] = r
		}
	}
}

func (db *DB) postWithRefsLocked(p models.Post) models.Post {
	p.Author = db.users[p.AuthorID]
	p.Category = db.categories[p.CategoryID]
	return p
}

// Users

type userRepo struct{ db *DB }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	r.db.stamp(&u.CreatedAt)
	r.db.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) List(_ context.Context) ([]models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r userRepo) Save(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, existing := range r.db.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	r.db.users[u.ID] = *u
	return nil
}

// Categories

type categoryRepo struct{ db *DB }

func (r categoryRepo) Create(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.db.stamp(&c.CreatedAt)
	r.db.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r categoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r categoryRepo) List(_ context.Context) ([]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categoryRepo) Save(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, existing := range r.db.categories {
		if id != c.ID && existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	r.db.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.categories[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range r.db.posts {
		if p.CategoryID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.db.categories, id)
	return nil
}

// Posts

type postRepo struct{ db *DB }

func (r postRepo) Create(_ context.Context, p *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[p.AuthorID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return repository.ErrReferenced
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.db.stamp(&p.CreatedAt)
	r.db.posts[p.ID] = *p
	*p = r.db.postWithRefsLocked(*p)
	return nil
}

func (r postRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.db.postWithRefsLocked(p)
	return &p, nil
}

func (r postRepo) List(_ context.Context, filter repository.PostFilter) ([]models.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Post
	for _, p := range r.db.posts {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		out = append(out, r.db.postWithRefsLocked(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r postRepo) Save(_ context.Context, p *models.Post) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.db.categories[p.CategoryID]; !ok {
		return repository.ErrReferenced
	}
	stored := *p
	stored.Author, stored.Category = models.User{}, models.Category{}
	r.db.posts[p.ID] = stored
	*p = r.db.postWithRefsLocked(stored)
	return nil
}

func (r postRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[id]; !ok {
		return repository.ErrNotFound
	}
	r.db.deletePostLocked(id)
	return nil
}

// Ratings

type ratingRepo struct{ db *DB }

func (r ratingRepo) withRefsLocked(rt models.Rating) models.Rating {
	rt.User = r.db.users[rt.UserID]
	rt.Post = r.db.posts[rt.PostID]
	return rt
}

func (r ratingRepo) Create(_ context.Context, rt *models.Rating) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[rt.PostID]; !ok {
		return repository.ErrReferenced
	}
	for _, existing := range r.db.ratings {
		if existing.PostID == rt.PostID && existing.UserID == rt.UserID {
			return repository.ErrDuplicate
		}
	}
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	r.db.stamp(&rt.CreatedAt)
	r.db.ratings[rt.ID] = *rt
	*rt = r.withRefsLocked(*rt)
	return nil
}

func (r ratingRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rt, ok := r.db.ratings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rt = r.withRefsLocked(rt)
	return &rt, nil
}

func (r ratingRepo) FindByPostAndUser(_ context.Context, postID, userID uuid.UUID) (*models.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, rt := range r.db.ratings {
		if rt.PostID == postID && rt.UserID == userID {
			return &rt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r ratingRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]models.Rating, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Rating
	for _, rt := range r.db.ratings {
		if rt.PostID == postID {
			out = append(out, r.withRefsLocked(rt))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r ratingRepo) Save(_ context.Context, rt *models.Rating) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.ratings[rt.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *rt
	stored.User, stored.Post = models.User{}, models.Post{}
	r.db.ratings[rt.ID] = stored
	*rt = r.withRefsLocked(stored)
	return nil
}

// Comments

type commentRepo struct{ db *DB }

func (r commentRepo) withRefsLocked(c models.Comment) models.Comment {
	c.Post = r.db.postWithRefsLocked(r.db.posts[c.PostID])
	c.Author = r.db.users[c.AuthorID]
	return c
}

func (r commentRepo) Create(_ context.Context, c *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.posts[c.PostID]; !ok {
		return repository.ErrReferenced
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.db.stamp(&c.CreatedAt)
	r.db.comments[c.ID] = *c
	*c = r.withRefsLocked(*c)
	return nil
}

func (r commentRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = r.withRefsLocked(c)
	return &c, nil
}

func (r commentRepo) ListByPost(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Comment
	for _, c := range r.db.comments {
		if c.PostID == postID {
			out = append(out, r.withRefsLocked(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r commentRepo) Save(_ context.Context, c *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *c
	stored.Post, stored.Author = models.Post{}, models.User{}
	r.db.comments[c.ID] = stored
	*c = r.withRefsLocked(stored)
	return nil
}

func (r commentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.comments, id)
	return nil
}

// Reports

type reportRepo struct{ db *DB }

func (r reportRepo) withRefsLocked(rp models.Report) models.Report {
	rp.User, rp.Post = nil, nil
	if u, ok := r.db.users[rp.UserID]; ok {
		rp.User = &u
	}
	if rp.PostID != nil {
		if p, ok := r.db.posts[*rp.PostID]; ok {
			p = r.db.postWithRefsLocked(p)
			rp.Post = &p
		}
	}
	return rp
}

func (r reportRepo) Create(_ context.Context, rp *models.Report) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if rp.PostID != nil {
		if _, ok := r.db.posts[*rp.PostID]; !ok {
			return repository.ErrReferenced
		}
		for _, existing := range r.db.reports {
			if existing.UserID == rp.UserID && existing.PostID != nil && *existing.PostID == *rp.PostID {
				return repository.ErrDuplicate
			}
		}
	}
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}
	if rp.Status == "" {
		rp.Status = models.ReportPending
	}
	r.db.stamp(&rp.CreatedAt)
	r.db.reports[rp.ID] = *rp
	return nil
}

func (r reportRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rp, ok := r.db.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rp = r.withRefsLocked(rp)
	return &rp, nil
}

func (r reportRepo) FindByUserAndPost(_ context.Context, userID, postID uuid.UUID) (*models.Report, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, rp := range r.db.reports {
		if rp.UserID == userID && rp.PostID != nil && *rp.PostID == postID {
			return &rp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r reportRepo) List(_ context.Context) ([]models.Report, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Report, 0, len(r.db.reports))
	for _, rp := range r.db.reports {
		out = append(out, r.withRefsLocked(rp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Resolve mutates copies and commits them only when every step succeeded.
func (r reportRepo) Resolve(_ context.Context, reportID uuid.UUID, res repository.Resolution) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rp, ok := r.db.reports[reportID]
	if !ok || rp.Status != models.ReportPending {
		return repository.ErrStale
	}
	if res.DeletePostID != nil && r.db.FailPostDelete != nil {
		err := r.db.FailPostDelete
		r.db.FailPostDelete = nil
		return err
	}
	rp.Status = res.Status
	rp.UpdatedAt = r.db.now().UTC()
	r.db.reports[reportID] = rp
	if res.DeletePostID != nil {
		r.db.deletePostLocked(*res.DeletePostID)
	}
	if res.Notification != nil {
		n := *res.Notification
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		r.db.stamp(&n.CreatedAt)
		r.db.notifications[n.ID] = n
	}
	return nil
}

// Notifications

type notificationRepo struct{ db *DB }

func (r notificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.db.stamp(&n.CreatedAt)
	r.db.notifications[n.ID] = *n
	return nil
}

func (r notificationRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n, ok := r.db.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	n.User = r.db.users[n.UserID]
	return &n, nil
}

func (r notificationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Notification
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			n.User = r.db.users[n.UserID]
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r notificationRepo) Save(_ context.Context, n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.notifications[n.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *n
	stored.User = models.User{}
	r.db.notifications[n.ID] = stored
	return nil
}

func (r notificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.notifications, id)
	return nil
}

// Announcements

type announcementRepo struct{ db *DB }

func (r announcementRepo) Create(_ context.Context, a *models.Announcement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.db.stamp(&a.CreatedAt)
	r.db.announcements[a.ID] = *a
	return nil
}

func (r announcementRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Announcement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r announcementRepo) ListActive(_ context.Context, now time.Time) ([]models.Announcement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Announcement
	for _, a := range r.db.announcements {
		if a.Active(now) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r announcementRepo) Save(_ context.Context, a *models.Announcement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.announcements[a.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.announcements[a.ID] = *a
	return nil
}

func (r announcementRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.announcements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.announcements, id)
	return nil
}

func (r announcementRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, a := range r.db.announcements {
		if a.EndsAt.Before(now) {
			delete(r.db.announcements, id)
			n++
		}
	}
	return n, nil
}

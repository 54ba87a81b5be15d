package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	admin := h.user(t, models.RoleAdmin)
	moderator := h.user(t, models.RoleModerator)

	_, err := h.categories.Create(ctx, nil, dto.CategoryInput{Name: "Ciencia", Description: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = h.categories.Create(ctx, moderator, dto.CategoryInput{Name: "Ciencia", Description: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	cat, err := h.categories.Create(ctx, admin, dto.CategoryInput{Name: " Ciencia ", Description: "Debates científicos"})
	require.NoError(t, err)
	assert.Equal(t, "Ciencia", cat.Name)

	_, err = h.categories.Create(ctx, admin, dto.CategoryInput{Name: "Ciencia", Description: "otra"})
	assert.ErrorIs(t, err, ErrConflict)

	desc := "Ciencia y tecnología"
	updated, err := h.categories.Update(ctx, admin, cat.ID, dto.CategoryUpdateInput{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)

	got, err := h.categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, desc, got.Description)

	h.post(t, h.user(t, models.RoleMember), cat.ID)
	_, err = h.categories.Delete(ctx, admin, cat.ID)
	assert.ErrorIs(t, err, ErrConflict)

	empty := h.category(t, "Vacía")
	msg, err := h.categories.Delete(ctx, admin, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, "Categoría eliminada exitosamente", msg)

	_, err = h.categories.Delete(ctx, admin, empty.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := h.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPostService_Create(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, models.RoleMember)

	_, err := h.posts.Create(ctx, nil, dto.PostInput{Title: "t", Content: "c", CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = h.posts.Create(ctx, author, dto.PostInput{Title: "t", Content: "c", CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.posts.Create(ctx, author, dto.PostInput{Title: "", Content: "c", CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	cat := h.category(t, "General")
	p := h.post(t, author, cat.ID)
	require.NotNil(t, p.Author)
	assert.Equal(t, author.ID.String(), p.Author.ID)
	require.NotNil(t, p.Category)
	assert.Equal(t, cat.ID, p.Category.ID)
	assert.Zero(t, p.AverageRating)
	assert.Zero(t, p.RatingCount)
}

func TestPostService_ListAndMine(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	ana := h.user(t, models.RoleMember)
	beto := h.user(t, models.RoleMember)
	general := h.category(t, "General")
	ciencia := h.category(t, "Ciencia")

	h.post(t, ana, general.ID)
	h.post(t, ana, ciencia.ID)
	h.post(t, beto, general.ID)

	all, err := h.posts.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCat, err := h.posts.List(ctx, &ciencia.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, ciencia.ID, byCat[0].Category.ID)

	mine, err := h.posts.Mine(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = h.posts.Mine(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPostService_OwnershipRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, models.RoleMember)
	stranger := h.user(t, models.RoleMember)
	admin := h.user(t, models.RoleAdmin)
	p := h.post(t, author, h.category(t, "General").ID)

	title := "Editado"
	_, err := h.posts.Update(ctx, stranger, p.ID, dto.PostUpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = h.posts.Update(ctx, admin, p.ID, dto.PostUpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = h.posts.Update(ctx, author, uuid.NewString(), dto.PostUpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := h.posts.Update(ctx, author, p.ID, dto.PostUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Editado", updated.Title)
	assert.Equal(t, p.Content, updated.Content)

	_, err = h.posts.Delete(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	msg, err := h.posts.Delete(ctx, author, p.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, p.ID)

	_, err = h.posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, models.RoleMember)
	stranger := h.user(t, models.RoleMember)
	p := h.post(t, author, h.category(t, "General").ID)

	_, err := h.comments.Create(ctx, author, dto.CommentInput{Content: "hola", PostID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := h.comments.Create(ctx, stranger, dto.CommentInput{Content: "hola", PostID: p.ID, AuthorID: author.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, c.Author)
	assert.Equal(t, stranger.ID.String(), c.Author.ID)
	require.NotNil(t, c.Post)
	assert.Equal(t, p.ID, c.Post.ID)

	text := "editado"
	_, err = h.comments.Update(ctx, author, c.ID, dto.CommentUpdateInput{Content: &text})
	assert.ErrorIs(t, err, ErrForbidden)
	updated, err := h.comments.Update(ctx, stranger, c.ID, dto.CommentUpdateInput{Content: &text})
	require.NoError(t, err)
	assert.Equal(t, "editado", updated.Content)

	list, err := h.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = h.comments.Delete(ctx, author, c.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = h.comments.Delete(ctx, stranger, c.ID)
	require.NoError(t, err)
	_, err = h.comments.Delete(ctx, stranger, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	author := h.user(t, models.RoleMember)
	ana := h.user(t, models.RoleMember)
	beto := h.user(t, models.RoleMember)
	p := h.post(t, author, h.category(t, "General").ID)

	first, err := h.ratings.Create(ctx, ana, dto.RatingInput{PostID: p.ID, Score: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Score)

	_, err = h.ratings.Create(ctx, ana, dto.RatingInput{PostID: p.ID, Score: 4})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Ya has puntuado esta publicación", err.Error())

	_, err = h.ratings.Create(ctx, beto, dto.RatingInput{PostID: p.ID, Score: 5})
	require.NoError(t, err)

	got, err := h.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
	assert.Equal(t, 2, got.RatingCount)

	for _, score := range []int{0, 6} {
		_, err = h.ratings.Create(ctx, author, dto.RatingInput{PostID: p.ID, Score: score})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	_, err = h.ratings.Create(ctx, author, dto.RatingInput{PostID: uuid.NewString(), Score: 2})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.ratings.Update(ctx, beto, dto.RatingUpdateInput{RatingID: first.ID, Score: 1})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = h.ratings.Update(ctx, ana, dto.RatingUpdateInput{RatingID: uuid.NewString(), Score: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	updated, err := h.ratings.Update(ctx, ana, dto.RatingUpdateInput{RatingID: first.ID, Score: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Score)

	list, err := h.ratings.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

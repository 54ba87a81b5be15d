package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
)

const postNotFound = "Post no encontrado"

type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	ratings    repository.RatingRepository
	validate   *validation.Validator
}

func NewPostService(store *repository.Store, v *validation.Validator) *PostService {
	return &PostService{
		posts:      store.Posts,
		categories: store.Categories,
		ratings:    store.Ratings,
		validate:   v,
	}
}

// view attaches the rating aggregate, computed from the post's ratings.
func (s *PostService) view(ctx context.Context, p *models.Post) (*dto.PostView, error) {
	ratings, err := s.ratings.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewPostView(p, dto.Summarize(ratings)), nil
}

func (s *PostService) views(ctx context.Context, posts []models.Post) ([]*dto.PostView, error) {
	out := make([]*dto.PostView, 0, len(posts))
	for i := range posts {
		v, err := s.view(ctx, &posts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// List returns every post, optionally narrowed to one category.
func (s *PostService) List(ctx context.Context, rawCategoryID *string) ([]*dto.PostView, error) {
	var filter repository.PostFilter
	if rawCategoryID != nil && *rawCategoryID != "" {
		id, err := parseID(*rawCategoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &id
	}
	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, upstream("Error al obtener los posts", err)
	}
	out, err := s.views(ctx, posts)
	if err != nil {
		return nil, upstream("Error al obtener los posts", err)
	}
	return out, nil
}

func (s *PostService) Mine(ctx context.Context, caller *auth.Caller) ([]*dto.PostView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	posts, err := s.posts.List(ctx, repository.PostFilter{AuthorID: &caller.ID})
	if err != nil {
		return nil, upstream("Error al obtener los posts", err)
	}
	out, err := s.views(ctx, posts)
	if err != nil {
		return nil, upstream("Error al obtener los posts", err)
	}
	return out, nil
}

func (s *PostService) Get(ctx context.Context, rawID string) (*dto.PostView, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, postNotFound, "Error al obtener el post")
	}
	v, err := s.view(ctx, post)
	if err != nil {
		return nil, upstream("Error al obtener el post", err)
	}
	return v, nil
}

func (s *PostService) Create(ctx context.Context, caller *auth.Caller, in dto.PostInput) (*dto.PostView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	categoryID := uuid.MustParse(in.CategoryID)
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, lookupError(err, "Categoría no encontrada", "Error al crear el post")
	}

	post := models.Post{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		PdfURL:     in.PdfURL,
		ImageURL:   in.ImageURL,
		AuthorID:   caller.ID,
		CategoryID: categoryID,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, newError(ErrNotFound, "Categoría no encontrada")
		}
		return nil, upstream("Error al crear el post", err)
	}
	return dto.NewPostView(&post, dto.RatingSummary{}), nil
}

func (s *PostService) Update(ctx context.Context, caller *auth.Caller, rawID string, in dto.PostUpdateInput) (*dto.PostView, error) {
	if caller == nil {
		return nil, errNotAuthenticated
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, postNotFound, "Error al actualizar el post")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindPost, post.AuthorID), "No tiene permiso para actualizar este post"); err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		categoryID := uuid.MustParse(*in.CategoryID)
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, lookupError(err, "Categoría no encontrada", "Error al actualizar el post")
		}
		post.CategoryID = categoryID
	}
	applyString(&post.Title, in.Title)
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.PdfURL != nil {
		post.PdfURL = in.PdfURL
	}
	if in.ImageURL != nil {
		post.ImageURL = in.ImageURL
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, upstream("Error al actualizar el post", err)
	}
	v, err := s.view(ctx, post)
	if err != nil {
		return nil, upstream("Error al actualizar el post", err)
	}
	return v, nil
}

// Delete removes a post together with its ratings and comments.
func (s *PostService) Delete(ctx context.Context, caller *auth.Caller, rawID string) (string, error) {
	if caller == nil {
		return "", errNotAuthenticated
	}
	id, err := parseID(rawID)
	if err != nil {
		return "", err
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return "", lookupError(err, postNotFound, "Error al eliminar el post")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindPost, post.AuthorID), "No tiene permiso para eliminar este post"); err != nil {
		return "", err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return "", lookupError(err, postNotFound, "Error al eliminar el post")
	}
	return fmt.Sprintf("Post con ID: %s ha sido eliminado exitosamente", id), nil
}

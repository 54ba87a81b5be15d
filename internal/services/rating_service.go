package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
)

var errAlreadyRated = newError(ErrConflict, "Ya has puntuado esta publicación")

type RatingService struct {
	ratings  repository.RatingRepository
	posts    repository.PostRepository
	validate *validation.Validator
}

func NewRatingService(store *repository.Store, v *validation.Validator) *RatingService {
	return &RatingService{ratings: store.Ratings, posts: store.Posts, validate: v}
}

func (s *RatingService) ListByPost(ctx context.Context, rawPostID string) ([]*dto.RatingView, error) {
	postID, err := parseID(rawPostID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByPost(ctx, postID)
	if err != nil {
		return nil, upstream("Error al obtener las puntuaciones", err)
	}
	out := make([]*dto.RatingView, len(ratings))
	for i := range ratings {
		out[i] = dto.NewRatingView(&ratings[i])
	}
	return out, nil
}

// Create records the caller's single rating for a post.
func (s *RatingService) Create(ctx context.Context, caller *auth.Caller, in dto.RatingInput) (*dto.RatingView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	postID := uuid.MustParse(in.PostID)
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, lookupError(err, "Publicación no encontrada", "Error al crear la puntuación")
	}

	if _, err := s.ratings.FindByPostAndUser(ctx, postID, caller.ID); err == nil {
		return nil, errAlreadyRated
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, upstream("Error al crear la puntuación", err)
	}

	rating := models.Rating{ID: uuid.New(), PostID: postID, UserID: caller.ID, Score: in.Score}
	if err := s.ratings.Create(ctx, &rating); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, errAlreadyRated
		case errors.Is(err, repository.ErrReferenced):
			return nil, newError(ErrNotFound, "Publicación no encontrada")
		}
		return nil, upstream("Error al crear la puntuación", err)
	}
	return s.reload(ctx, rating.ID, "Error al crear la puntuación")
}

func (s *RatingService) Update(ctx context.Context, caller *auth.Caller, in dto.RatingUpdateInput) (*dto.RatingView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	rating, err := s.ratings.FindByID(ctx, uuid.MustParse(in.RatingID))
	if err != nil {
		return nil, lookupError(err, "La puntuación no existe", "Error al actualizar la puntuación")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindRating, rating.UserID), "No tiene permiso para modificar esta puntuación"); err != nil {
		return nil, err
	}
	rating.Score = in.Score
	if err := s.ratings.Save(ctx, rating); err != nil {
		return nil, upstream("Error al actualizar la puntuación", err)
	}
	return s.reload(ctx, rating.ID, "Error al actualizar la puntuación")
}

func (s *RatingService) reload(ctx context.Context, id uuid.UUID, failMsg string) (*dto.RatingView, error) {
	rating, err := s.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "La puntuación no existe", failMsg)
	}
	return dto.NewRatingView(rating), nil
}

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

const commentNotFound = "Comentario no encontrado"

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	validate *validation.Validator
}

func NewCommentService(store *repository.Store, v *validation.Validator) *CommentService {
	return &CommentService{comments: store.Comments, posts: store.Posts, validate: v}
}

func (s *CommentService) ListByPost(ctx context.Context, rawPostID string) ([]*dto.CommentView, error) {
	postID, err := parseID(rawPostID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, upstream("Error al obtener los comentarios", err)
	}
	out := make([]*dto.CommentView, len(comments))
	for i := range comments {
		out[i] = dto.NewCommentView(&comments[i])
	}
	return out, nil
}

// Create always attributes the comment to the caller.
func (s *CommentService) Create(ctx context.Context, caller *auth.Caller, in dto.CommentInput) (*dto.CommentView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	postID := uuid.MustParse(in.PostID)
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, lookupError(err, postNotFound, "Error al crear el comentario")
	}

	comment := models.Comment{ID: uuid.New(), Content: in.Content, PostID: postID, AuthorID: caller.ID}
	if err := s.comments.Create(ctx, &comment); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, newError(ErrNotFound, postNotFound)
		}
		return nil, upstream("Error al crear el comentario", err)
	}
	return s.reload(ctx, comment.ID, "Error al crear el comentario")
}

func (s *CommentService) Update(ctx context.Context, caller *auth.Caller, rawID string, in dto.CommentUpdateInput) (*dto.CommentView, error) {
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
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, commentNotFound, "Error al actualizar el comentario")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindComment, comment.AuthorID), "No tiene permiso para actualizar este comentario"); err != nil {
		return nil, err
	}
	if in.Content != nil {
		comment.Content = *in.Content
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, upstream("Error al actualizar el comentario", err)
	}
	return s.reload(ctx, comment.ID, "Error al actualizar el comentario")
}

func (s *CommentService) Delete(ctx context.Context, caller *auth.Caller, rawID string) (string, error) {
	if caller == nil {
		return "", errNotAuthenticated
	}
	id, err := parseID(rawID)
	if err != nil {
		return "", err
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return "", lookupError(err, commentNotFound, "Error al eliminar el comentario")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindComment, comment.AuthorID), "No tiene permiso para eliminar este comentario"); err != nil {
		return "", err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return "", lookupError(err, commentNotFound, "Error al eliminar el comentario")
	}
	return "Comentario eliminado exitosamente", nil
}

func (s *CommentService) reload(ctx context.Context, id uuid.UUID, failMsg string) (*dto.CommentView, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, commentNotFound, failMsg)
	}
	return dto.NewCommentView(comment), nil
}

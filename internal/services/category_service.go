package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
)

var errCategoryTaken = newError(ErrConflict, "Ya existe una categoría con ese nombre")

type CategoryService struct {
	categories repository.CategoryRepository
	validate   *validation.Validator
}

func NewCategoryService(store *repository.Store, v *validation.Validator) *CategoryService {
	return &CategoryService{categories: store.Categories, validate: v}
}

func (s *CategoryService) List(ctx context.Context) ([]*dto.CategoryView, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, upstream("Error al obtener las categorías", err)
	}
	out := make([]*dto.CategoryView, len(cats))
	for i := range cats {
		out[i] = dto.NewCategoryView(&cats[i])
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, rawID string) (*dto.CategoryView, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Categoría no encontrada", "Error al obtener la categoría")
	}
	return dto.NewCategoryView(cat), nil
}

func (s *CategoryService) Create(ctx context.Context, caller *auth.Caller, in dto.CategoryInput) (*dto.CategoryView, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindCategory, uuid.Nil), "No autorizado"); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	if err := s.ensureNameFree(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	cat := models.Category{ID: uuid.New(), Name: in.Name, Description: strings.TrimSpace(in.Description)}
	if err := s.categories.Create(ctx, &cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCategoryTaken
		}
		return nil, upstream("Error al crear la categoría", err)
	}
	return dto.NewCategoryView(&cat), nil
}

func (s *CategoryService) Update(ctx context.Context, caller *auth.Caller, rawID string, in dto.CategoryUpdateInput) (*dto.CategoryView, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindCategory, uuid.Nil), "No autorizado"); err != nil {
		return nil, err
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Categoría no encontrada", "Error al actualizar la categoría")
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != cat.Name {
			if err := s.ensureNameFree(ctx, name, cat.ID); err != nil {
				return nil, err
			}
		}
		cat.Name = name
	}
	applyString(&cat.Description, in.Description)

	if err := s.categories.Save(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCategoryTaken
		}
		return nil, upstream("Error al actualizar la categoría", err)
	}
	return dto.NewCategoryView(cat), nil
}

// Delete refuses to remove a category that still has posts.
func (s *CategoryService) Delete(ctx context.Context, caller *auth.Caller, rawID string) (string, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindCategory, uuid.Nil), "No autorizado"); err != nil {
		return "", err
	}
	id, err := parseID(rawID)
	if err != nil {
		return "", err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return "", newError(ErrNotFound, "Categoría no encontrada")
		case errors.Is(err, repository.ErrReferenced):
			return "", newError(ErrConflict, "La categoría tiene publicaciones asociadas")
		}
		return "", upstream("Error al eliminar la categoría", err)
	}
	return "Categoría eliminada exitosamente", nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categories.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != self:
		return errCategoryTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return upstream("Error al guardar la categoría", err)
	}
	return nil
}

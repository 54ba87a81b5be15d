package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
)

const announcementNotFound = "Anuncio no encontrado"

type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	validate      *validation.Validator
	now           func() time.Time
}

func NewAnnouncementService(store *repository.Store, v *validation.Validator) *AnnouncementService {
	return &AnnouncementService{announcements: store.Announcements, validate: v, now: time.Now}
}

// ListActive returns the announcements whose window contains the current time.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]*dto.AnnouncementView, error) {
	items, err := s.announcements.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, upstream("Error al obtener los anuncios", err)
	}
	out := make([]*dto.AnnouncementView, len(items))
	for i := range items {
		out[i] = dto.NewAnnouncementView(&items[i])
	}
	return out, nil
}

func (s *AnnouncementService) Create(ctx context.Context, caller *auth.Caller, in dto.AnnouncementInput) (*dto.AnnouncementView, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindAnnouncement, uuid.Nil), "No autorizado"); err != nil {
		return nil, err
	}
	a := models.Announcement{ID: uuid.New()}
	if err := s.apply(&a, in); err != nil {
		return nil, err
	}
	if err := s.announcements.Create(ctx, &a); err != nil {
		return nil, upstream("Error al crear el anuncio", err)
	}
	return dto.NewAnnouncementView(&a), nil
}

func (s *AnnouncementService) Update(ctx context.Context, caller *auth.Caller, rawID string, in dto.AnnouncementInput) (*dto.AnnouncementView, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindAnnouncement, uuid.Nil), "No autorizado"); err != nil {
		return nil, err
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.announcements.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, announcementNotFound, "Error al actualizar el anuncio")
	}
	if err := s.apply(a, in); err != nil {
		return nil, err
	}
	if err := s.announcements.Save(ctx, a); err != nil {
		return nil, lookupError(err, announcementNotFound, "Error al actualizar el anuncio")
	}
	return dto.NewAnnouncementView(a), nil
}

func (s *AnnouncementService) Delete(ctx context.Context, caller *auth.Caller, rawID string) (string, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindAnnouncement, uuid.Nil), "No autorizado"); err != nil {
		return "", err
	}
	id, err := parseID(rawID)
	if err != nil {
		return "", err
	}
	if err := s.announcements.Delete(ctx, id); err != nil {
		return "", lookupError(err, announcementNotFound, "Error al eliminar el anuncio")
	}
	return "Anuncio eliminado exitosamente", nil
}

// SweepExpired deletes every announcement that ended before now. Running it
// again removes nothing new.
func (s *AnnouncementService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.announcements.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, upstream("Error al eliminar los anuncios expirados", err)
	}
	if n > 0 {
		slog.Info("expired announcements removed", "count", n)
	}
	return n, nil
}

func (s *AnnouncementService) apply(a *models.Announcement, in dto.AnnouncementInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Validate(in); err != nil {
		return invalid(err)
	}
	start, err := dto.ParseTime(in.StartsAt)
	if err != nil {
		return newError(ErrInvalidInput, "fechaInicio no es una fecha válida")
	}
	end, err := dto.ParseTime(in.EndsAt)
	if err != nil {
		return newError(ErrInvalidInput, "fechaFinal no es una fecha válida")
	}
	if end.Before(start) {
		return newError(ErrInvalidInput, "La fecha final no puede ser anterior a la fecha de inicio")
	}
	a.Title = in.Title
	a.Content = in.Content
	a.ImageURL = in.ImageURL
	a.StartsAt = start
	a.EndsAt = end
	return nil
}

package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
)

const notificationNotFound = "Notificación no encontrada"

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(store *repository.Store) *NotificationService {
	return &NotificationService{notifications: store.Notifications}
}

func (s *NotificationService) List(ctx context.Context, caller *auth.Caller) ([]*dto.NotificationView, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	items, err := s.notifications.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, upstream("Error al obtener las notificaciones", err)
	}
	out := make([]*dto.NotificationView, len(items))
	for i := range items {
		out[i] = dto.NewNotificationView(&items[i])
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, caller *auth.Caller, rawID string) (*dto.NotificationView, error) {
	n, err := s.owned(ctx, caller, rawID, "No autorizado")
	if err != nil {
		return nil, err
	}
	n.Read = true
	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, upstream("Error al actualizar la notificación", err)
	}
	return dto.NewNotificationView(n), nil
}

func (s *NotificationService) Delete(ctx context.Context, caller *auth.Caller, rawID string) (string, error) {
	n, err := s.owned(ctx, caller, rawID, "No tiene permiso para eliminar esta notificación")
	if err != nil {
		return "", err
	}
	if err := s.notifications.Delete(ctx, n.ID); err != nil {
		return "", lookupError(err, notificationNotFound, "Error al eliminar la notificación")
	}
	return "Notificación eliminada exitosamente", nil
}

// owned loads a notification and checks that it belongs to the caller.
func (s *NotificationService) owned(ctx context.Context, caller *auth.Caller, rawID, forbidden string) (*models.Notification, error) {
	if caller == nil {
		return nil, errNotAuthenticated
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, notificationNotFound, "Error al obtener la notificación")
	}
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindNotification, n.UserID), forbidden); err != nil {
		return nil, err
	}
	return n, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/policy"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/validation"
	"github.com/google/uuid"
)

const (
	reviewedNotice = "El reporte ha sido revisado y se procedió a eliminar la publicación"
	rejectedNotice = "El reporte ha sido rechazado"
)

var (
	errAlreadyReported = newError(ErrConflict, "Ya has reportado esta publicación.")
	errReportClosed    = newError(ErrConflict, "El reporte ya fue procesado")
)

// ReportService runs the moderation workflow:
// pendiente -> revisado (post removed, reporter notified) or
// pendiente -> rechazado (reporter notified).
type ReportService struct {
	reports  repository.ReportRepository
	posts    repository.PostRepository
	validate *validation.Validator
}

func NewReportService(store *repository.Store, v *validation.Validator) *ReportService {
	return &ReportService{reports: store.Reports, posts: store.Posts, validate: v}
}

func (s *ReportService) Report(ctx context.Context, caller *auth.Caller, in dto.ReportInput) (*dto.ReportResponse, error) {
	if err := denied(policy.RequireAuthenticated(caller), ""); err != nil {
		return nil, err
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}
	postID := uuid.MustParse(in.PostID)
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, lookupError(err, "Publicación no encontrada", "Error al reportar la publicación")
	}

	if _, err := s.reports.FindByUserAndPost(ctx, caller.ID, postID); err == nil {
		return nil, errAlreadyReported
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, upstream("Error al reportar la publicación", err)
	}

	report := models.Report{
		ID:     uuid.New(),
		UserID: caller.ID,
		PostID: &postID,
		Reason: in.Reason,
		Status: models.ReportPending,
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, errAlreadyReported
		case errors.Is(err, repository.ErrReferenced):
			return nil, newError(ErrNotFound, "Publicación no encontrada")
		}
		return nil, upstream("Error al reportar la publicación", err)
	}
	slog.Info("post reported", "user_id", caller.ID.String(), "post_id", postID.String(), "report_id", report.ID.String())
	return &dto.ReportResponse{Success: true, Message: "Publicación reportada exitosamente."}, nil
}

// List returns every report for moderation staff. Reports whose reporter or
// post no longer exists are left out.
func (s *ReportService) List(ctx context.Context, caller *auth.Caller) ([]*dto.ReportView, error) {
	if err := denied(policy.CanModerate(caller), "No autorizado"); err != nil {
		return nil, err
	}
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, upstream("Error al obtener los reportes", err)
	}
	out := make([]*dto.ReportView, 0, len(reports))
	for i := range reports {
		v := dto.NewReportView(&reports[i])
		if v == nil {
			slog.Warn("skipping incomplete report", "report_id", reports[i].ID.String())
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// UpdateStatus resolves a pending report. The status change, the post
// removal and the notification commit together or not at all.
func (s *ReportService) UpdateStatus(ctx context.Context, caller *auth.Caller, in dto.ReportStatusInput) (*dto.ReportResponse, error) {
	if err := denied(policy.CanModifyOwnResource(caller, policy.KindReport, uuid.Nil), "No autorizado"); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	var notice string
	switch in.Status {
	case models.ReportReviewed:
		notice = reviewedNotice
	case models.ReportRejected:
		notice = rejectedNotice
	default:
		return nil, newError(ErrInvalidInput, fmt.Sprintf("Estado no válido. Los estados permitidos son: %s, %s.", models.ReportReviewed, models.ReportRejected))
	}

	report, err := s.reports.FindByID(ctx, uuid.MustParse(in.ReportID))
	if err != nil {
		return nil, lookupError(err, "Reporte no encontrado", "Error al actualizar el estado del reporte")
	}
	if report.Status != models.ReportPending {
		return nil, errReportClosed
	}

	res := repository.Resolution{
		Status:       in.Status,
		Notification: &models.Notification{UserID: report.UserID, Message: notice},
	}
	if in.Status == models.ReportReviewed {
		res.DeletePostID = report.PostID
	}
	if err := s.reports.Resolve(ctx, report.ID, res); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, errReportClosed
		}
		return nil, upstream("Error al actualizar el estado del reporte", err)
	}

	slog.Info("report resolved",
		"user_id", caller.ID.String(),
		"report_id", report.ID.String(),
		"status", in.Status,
	)
	return &dto.ReportResponse{Success: true, Message: fmt.Sprintf("Reporte %s exitosamente.", in.Status)}, nil
}

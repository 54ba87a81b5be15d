package dto

import (
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
)

type ReportInput struct {
	PostID string `json:"publicacionId" validate:"required,uuid"`
	Reason string `json:"motivo" validate:"required,max=1000"`
}

type ReportStatusInput struct {
	ReportID string `json:"reporteId" validate:"required,uuid"`
	Status   string `json:"estado" validate:"required"`
}

// ReportResponse is the acknowledgement returned by report mutations.
type ReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ReportView struct {
	ID      string    `json:"id"`
	User    *UserView `json:"usuario"`
	Post    *PostView `json:"publicacion"`
	Reason  string    `json:"motivo"`
	Status  string    `json:"estado"`
	Created string    `json:"fechaCreacion"`
}

// NewReportView returns nil when the reporter or the post no longer exist.
func NewReportView(r *models.Report) *ReportView {
	if r == nil || r.User == nil || r.Post == nil {
		return nil
	}
	post := NewPostView(r.Post, RatingSummary{})
	if post == nil {
		return nil
	}
	return &ReportView{
		ID:      formatID(r.ID),
		User:    NewUserView(r.User),
		Post:    post,
		Reason:  r.Reason,
		Status:  r.Status,
		Created: FormatTime(r.CreatedAt),
	}
}

type NotificationView struct {
	ID      string    `json:"id"`
	User    *UserView `json:"usuario"`
	Message string    `json:"mensaje"`
	Read    bool      `json:"leido"`
	Created string    `json:"fechaCreacion"`
}

func NewNotificationView(n *models.Notification) *NotificationView {
	return &NotificationView{
		ID:      formatID(n.ID),
		User:    loadedUser(n.User),
		Message: n.Message,
		Read:    n.Read,
		Created: FormatTime(n.CreatedAt),
	}
}

type AnnouncementInput struct {
	Title    string  `json:"titulo" validate:"required,max=255"`
	Content  string  `json:"contenido" validate:"required"`
	ImageURL *string `json:"imagenUrl" validate:"omitempty,url,max=1024"`
	StartsAt string  `json:"fechaInicio" validate:"required"`
	EndsAt   string  `json:"fechaFinal" validate:"required"`
}

type AnnouncementView struct {
	ID       string  `json:"id"`
	Title    string  `json:"titulo"`
	Content  string  `json:"contenido"`
	ImageURL *string `json:"imagenUrl"`
	StartsAt string  `json:"fechaInicio"`
	EndsAt   string  `json:"fechaFinal"`
	Created  string  `json:"creado"`
}

func NewAnnouncementView(a *models.Announcement) *AnnouncementView {
	return &AnnouncementView{
		ID:       formatID(a.ID),
		Title:    a.Title,
		Content:  a.Content,
		ImageURL: a.ImageURL,
		StartsAt: FormatTime(a.StartsAt),
		EndsAt:   FormatTime(a.EndsAt),
		Created:  FormatTime(a.CreatedAt),
	}
}

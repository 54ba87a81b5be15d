package dto

import (
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/models"
	"github.com/google/uuid"
)

type CategoryInput struct {
	Name        string `json:"nombre" validate:"required,max=150"`
	Description string `json:"descripcion" validate:"required"`
}

type CategoryUpdateInput struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=150"`
	Description *string `json:"descripcion" validate:"omitempty,min=1"`
}

type PostInput struct {
	Title      string  `json:"titulo" validate:"required,max=255"`
	Content    string  `json:"contenido" validate:"required"`
	PdfURL     *string `json:"pdfUrl" validate:"omitempty,url,max=1024"`
	ImageURL   *string `json:"imagenUrl" validate:"omitempty,url,max=1024"`
	CategoryID string  `json:"categoriaId" validate:"required,uuid"`
}

type PostUpdateInput struct {
	Title      *string `json:"titulo" validate:"omitempty,min=1,max=255"`
	Content    *string `json:"contenido" validate:"omitempty,min=1"`
	PdfURL     *string `json:"pdfUrl" validate:"omitempty,url,max=1024"`
	ImageURL   *string `json:"imagenUrl" validate:"omitempty,url,max=1024"`
	CategoryID *string `json:"categoriaId" validate:"omitempty,uuid"`
}

type CommentInput struct {
	Content string `json:"contenido" validate:"required"`
	PostID  string `json:"postId" validate:"required,uuid"`
	// AuthorID is part of the wire input; the author is always the caller.
	AuthorID string `json:"autorId"`
}

type CommentUpdateInput struct {
	Content *string `json:"contenido" validate:"omitempty,min=1"`
}

type RatingInput struct {
	PostID string `json:"publicacionId" validate:"required,uuid"`
	Score  int    `json:"puntuacion" validate:"min=1,max=5"`
}

type RatingUpdateInput struct {
	RatingID string `json:"puntuacionId" validate:"required,uuid"`
	Score    int    `json:"puntuacion" validate:"min=1,max=5"`
}

type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Created     string `json:"creado"`
}

func NewCategoryView(c *models.Category) *CategoryView {
	if c == nil || c.ID == uuid.Nil {
		return nil
	}
	return &CategoryView{
		ID:          formatID(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Created:     FormatTime(c.CreatedAt),
	}
}

// RatingSummary is the read-time aggregate of a post's ratings.
type RatingSummary struct {
	Average float64
	Count   int
}

// Summarize reduces scores to their mean and count; no ratings yields 0/0.
func Summarize(ratings []models.Rating) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{}
	}
	total := 0
	for _, r := range ratings {
		total += r.Score
	}
	return RatingSummary{Average: float64(total) / float64(len(ratings)), Count: len(ratings)}
}

type PostView struct {
	ID            string        `json:"id"`
	Title         string        `json:"titulo"`
	Content       string        `json:"contenido"`
	PdfURL        *string       `json:"pdfUrl"`
	ImageURL      *string       `json:"imagenUrl"`
	Author        *UserView     `json:"autor"`
	Category      *CategoryView `json:"categoria"`
	Created       string        `json:"creado"`
	AverageRating float64       `json:"promedioPuntuacion"`
	RatingCount   int           `json:"numeroPuntuaciones"`
}

func NewPostView(p *models.Post, summary RatingSummary) *PostView {
	if p == nil || p.ID == uuid.Nil {
		return nil
	}
	return &PostView{
		ID:            formatID(p.ID),
		Title:         p.Title,
		Content:       p.Content,
		PdfURL:        p.PdfURL,
		ImageURL:      p.ImageURL,
		Author:        loadedUser(p.Author),
		Category:      NewCategoryView(&p.Category),
		Created:       FormatTime(p.CreatedAt),
		AverageRating: summary.Average,
		RatingCount:   summary.Count,
	}
}

type CommentView struct {
	ID      string    `json:"id"`
	Content string    `json:"contenido"`
	Post    *PostView `json:"post"`
	Author  *UserView `json:"autor"`
	Created string    `json:"creado"`
}

func NewCommentView(c *models.Comment) *CommentView {
	return &CommentView{
		ID:      formatID(c.ID),
		Content: c.Content,
		Post:    NewPostView(&c.Post, RatingSummary{}),
		Author:  loadedUser(c.Author),
		Created: FormatTime(c.CreatedAt),
	}
}

type RatingView struct {
	ID      string    `json:"id"`
	Post    *PostView `json:"publicacion"`
	User    *UserView `json:"usuario"`
	Score   int       `json:"puntuacion"`
	Created string    `json:"creado"`
}

func NewRatingView(r *models.Rating) *RatingView {
	return &RatingView{
		ID:      formatID(r.ID),
		Post:    NewPostView(&r.Post, RatingSummary{}),
		User:    loadedUser(r.User),
		Score:   r.Score,
		Created: FormatTime(r.CreatedAt),
	}
}

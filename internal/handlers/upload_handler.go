package handlers

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const (
	msgNoFile       = "No se recibió ningún archivo."
	msgUploadFailed = "Error al subir el archivo"
)

type UploadHandler struct {
	uploader storage.Uploader
	now      func() time.Time
}

func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader, now: time.Now}
}

// Upload accepts one multipart file in the "file" field and responds with
// its public URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(msgNoFile)
	}

	f, err := fh.Open()
	if err != nil {
		slog.Error("upload: open form file", "operation", "upload", "error", err.Error())
		metrics.RecordUpload(0, err)
		return c.Status(fiber.StatusInternalServerError).SendString(msgUploadFailed)
	}
	defer f.Close()

	name := storage.ObjectName(fh.Filename, h.now())
	url, err := h.uploader.Upload(c.UserContext(), name, fh.Header.Get("Content-Type"), f)
	metrics.RecordUpload(fh.Size, err)
	if err != nil {
		slog.Error("upload failed", "operation", "upload", "request_id", c.Locals("requestid"), "object", name, "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).SendString(msgUploadFailed)
	}

	slog.Info("file uploaded", "object", name, "size", fh.Size)
	return c.JSON(dto.UploadResponse{FileURL: url})
}

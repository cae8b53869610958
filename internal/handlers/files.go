package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"booking-server/internal/models"
	"booking-server/internal/utils"
)

// FileRecorder records uploaded files.
type FileRecorder interface {
	Create(ctx context.Context, name, path string) (*models.File, error)
}

// FileHandler handles avatar uploads.
type FileHandler struct {
	Files     FileRecorder
	UploadDir string
	Log       zerolog.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files FileRecorder, uploadDir string, log zerolog.Logger) *FileHandler {
	return &FileHandler{Files: files, UploadDir: uploadDir, Log: log}
}

// Store saves the multipart "file" field under a random name.
func (h *FileHandler) Store(c *gin.Context) {
	upload, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "File not provided")
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		respondError(c, h.Log, err)
		return
	}

	path := uuid.NewString() + strings.ToLower(filepath.Ext(upload.Filename))
	if err := c.SaveUploadedFile(upload, filepath.Join(h.UploadDir, path)); err != nil {
		respondError(c, h.Log, err)
		return
	}

	file, err := h.Files.Create(c.Request.Context(), filepath.Base(upload.Filename), path)
	if err != nil {
		_ = os.Remove(filepath.Join(h.UploadDir, path))
		respondError(c, h.Log, err)
		return
	}
	utils.Created(c, "File uploaded successfully", file)
}

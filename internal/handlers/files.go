package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointments-server/internal/config"
	"appointments-server/internal/models"
	"appointments-server/internal/storage"
	"appointments-server/internal/store"
	"appointments-server/internal/utils"
)

// FileHandler handles avatar uploads and serves them back.
type FileHandler struct {
	Files store.FileStore
	Disk  *storage.Disk
	Cfg   *config.Config
	Log   *zap.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files store.FileStore, disk *storage.Disk, cfg *config.Config, log *zap.Logger) *FileHandler {
	return &FileHandler{Files: files, Disk: disk, Cfg: cfg, Log: log}
}

// UploadFile stores the multipart "file" field. Only images are accepted.
func (h *FileHandler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file") // "file" is the name of the form field
	if err != nil {
		utils.BadRequest(c, "File is required")
		return
	}
	defer file.Close()

	name, err := h.Disk.Save(file)
	switch {
	case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		utils.BadRequest(c, err.Error())
		return
	case err != nil:
		h.Log.Error("failed to store upload", zap.Error(err))
		utils.InternalServerError(c, "Failed to store file")
		return
	}

	record := models.File{Name: header.Filename, Path: name}
	if err := h.Files.Create(c.Request.Context(), &record); err != nil {
		if rmErr := h.Disk.Remove(name); rmErr != nil {
			h.Log.Warn("failed to remove orphaned upload", zap.String("path", name), zap.Error(rmErr))
		}
		h.Log.Error("failed to create file record", zap.Error(err))
		utils.InternalServerError(c, "Failed to store file")
		return
	}

	utils.Created(c, "File uploaded successfully", record.View(h.Cfg.AppURL))
}

// GetFile serves a previously uploaded file by its stored name.
func (h *FileHandler) GetFile(c *gin.Context) {
	name := c.Param("path")
	path, err := h.Disk.Path(name)
	if err != nil {
		utils.NotFound(c, "File not found")
		return
	}

	if _, err := h.Files.FindByPath(c.Request.Context(), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "File not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch file")
		}
		return
	}

	c.File(path)
}

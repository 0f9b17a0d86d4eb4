package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/storage"
	"depositshield_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

var errFileNotFound = apperrors.ErrNotFound(storage.ErrNotFound, "file", "File not found")

// FileHandler serves stored photo blobs. Stored names are unguessable,
// so the route is public like the share link that references them.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *FileHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/uploads/:filename", h.ServeFile)
	r.HEAD("/uploads/:filename", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	key := c.Param("filename")
	if err := storage.ValidateKey(key); err != nil {
		apperrors.HandleError(c, errFileNotFound)
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			apperrors.HandleError(c, errFileNotFound)
			return
		}
		h.HandleServiceError(c, apperrors.StorageError(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("ETag", fmt.Sprintf(`"%s"`, key))

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, key))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	c.Status(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWarn(c.Request.Context(), "file stream interrupted", "file", key, "error", err)
	}
}

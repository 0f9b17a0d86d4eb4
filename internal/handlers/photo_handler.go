package handlers

import (
	"errors"
	"net/http"
	"strings"

	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/services"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is room for form fields and part headers on top of the file.
const multipartOverhead = 1 << 20

type PhotoHandler struct {
	*BaseHandler
	photoService  services.PhotoService
	maxUploadSize int64
}

func NewPhotoHandler(base *BaseHandler, photoService services.PhotoService, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{
		BaseHandler:   base,
		photoService:  photoService,
		maxUploadSize: maxUploadSize,
	}
}

func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	photos := rg.Group("/photos")
	photos.Use(guards.Auth)
	{
		photos.POST("/upload/:reportId", h.UploadPhoto)
		photos.GET("/report/:reportId", h.ListReportPhotos)
		photos.GET("/:id", h.GetPhoto)
		photos.PUT("/:id/note", h.UpdateNote)
		photos.POST("/:id/tags", h.AddTag)
		photos.DELETE("/:id/tags/:tag", h.RemoveTag)
		photos.DELETE("/:id", h.DeletePhoto)
	}
}

// UploadPhoto reads the multipart field "photo" plus optional room_id,
// note and tags (repeated or comma separated).
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "reportId")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	if err := c.Request.ParseMultipartForm(h.maxUploadSize + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to parse form: "+err.Error()))
		return
	}

	var req dto.UploadPhotoRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}
	req.Tags = splitTags(req.Tags)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrFileRequired)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	upload := &dto.UploadedFile{Filename: fileHeader.Filename, Size: fileHeader.Size, Content: file}
	photo, err := h.photoService.UploadPhoto(c.Request.Context(), h.GetDB(c), userID, reportID, upload, &req, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "photo stored", "photo_id", photo.ID, "size", fileHeader.Size)
	c.JSON(http.StatusCreated, dto.PhotoResponse{Message: "Photo uploaded successfully", Photo: photo})
}

func (h *PhotoHandler) ListReportPhotos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reportID, ok := h.paramID(c, "reportId")
	if !ok {
		return
	}

	photos, err := h.photoService.ListPhotos(h.GetDB(c), userID, reportID, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotoListResponse{Message: "Photos retrieved successfully", Photos: photos})
}

func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	photoID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	photo, err := h.photoService.GetPhoto(h.GetDB(c), userID, photoID, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotoResponse{Message: "Photo retrieved successfully", Photo: photo})
}

func (h *PhotoHandler) UpdateNote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	photoID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	photo, err := h.photoService.UpdateNote(h.GetDB(c), userID, photoID, *req.Note, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotoResponse{Message: "Note updated successfully", Photo: photo})
}

func (h *PhotoHandler) AddTag(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	photoID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AddTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	photo, err := h.photoService.AddTag(h.GetDB(c), userID, photoID, req.Tag, h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotoResponse{Message: "Tag added successfully", Photo: photo})
}

func (h *PhotoHandler) RemoveTag(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	photoID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	photo, err := h.photoService.RemoveTag(h.GetDB(c), userID, photoID, c.Param("tag"), h.BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PhotoResponse{Message: "Tag removed successfully", Photo: photo})
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	photoID, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), h.GetDB(c), userID, photoID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

// splitTags flattens repeated and comma separated tag fields.
func splitTags(raw []string) []string {
	var tags []string
	for _, field := range raw {
		for _, tag := range strings.Split(field, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
)

const (
	maxPhotoSize = 10 << 20
	// maxPhotoBody leaves room for multipart framing around the file.
	maxPhotoBody = maxPhotoSize + 1<<20
)

type PhotoService interface {
	Upload(ctx context.Context, propertyID int64, filename, contentType string, src io.Reader) (*model.Photo, error)
	Latest(ctx context.Context, propertyID int64) (*model.Photo, []byte, error)
}

type PhotoHandler struct {
	Svc PhotoService
}

func NewPhotoHandler(svc PhotoService) *PhotoHandler {
	return &PhotoHandler{Svc: svc}
}

func (h *PhotoHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/properties/:id/photo", h.UploadPhoto)
	r.GET("/properties/:id/photo", h.DownloadPhoto)
}

// POST /properties/:id/photo (multipart field "file")
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBody)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			photoTooLarge(c)
			return
		}
		badRequest(c, service.ErrCodeInvalidPayload, "file is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		photoTooLarge(c)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if !strings.HasPrefix(contentType, "image/") {
		badRequest(c, service.ErrCodeInvalidPayload, "file must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	photo, err := h.Svc.Upload(c.Request.Context(), id, filepath.Base(fileHeader.Filename), contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func photoTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error:   service.ErrCodeInvalidPayload,
		Message: "photo must not exceed 10 MiB",
	})
}

// GET /properties/:id/photo
func (h *PhotoHandler) DownloadPhoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	photo, data, err := h.Svc.Latest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": photo.Filename}))
	c.Data(http.StatusOK, contentType, data)
}

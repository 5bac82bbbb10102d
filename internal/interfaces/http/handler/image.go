package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
	"github.com/tlsy/handicrafts/internal/interfaces/http/dto"
)

// ImageFormField is the multipart field carrying the uploaded image
const ImageFormField = "file"

// ImageHandler uploads and removes product images
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload stores the multipart "file" and returns its public URL
// POST /api/v1/admin/images
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile(ImageFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Upload exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "Missing image file in field \""+ImageFormField+"\"")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.imageService.Upload(c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Delete removes the image behind ?url=
// DELETE /api/v1/admin/images
func (h *ImageHandler) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		h.BadRequest(c, "Query parameter url is required")
		return
	}
	if err := h.imageService.Delete(c.Request.Context(), url); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tlsy/handicrafts/internal/infrastructure/storage"
)

// ObjectReader reads objects kept in process memory
type ObjectReader interface {
	Get(key string) (storage.StoredObject, bool)
	GetBucket() string
}

// MediaHandler serves uploaded images when no object storage bucket is
// configured and uploads live in memory
type MediaHandler struct {
	objects ObjectReader
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(objects ObjectReader) *MediaHandler {
	return &MediaHandler{objects: objects}
}

// Serve writes the object at /media/:bucket/*key
func (h *MediaHandler) Serve(c *gin.Context) {
	if c.Param("bucket") != h.objects.GetBucket() {
		c.Status(http.StatusNotFound)
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, ok := h.objects.Get(key)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}

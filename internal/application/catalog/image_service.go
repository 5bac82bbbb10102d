package catalog

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Image errors
var (
	ErrUnsupportedImageType = shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Only JPEG, PNG, GIF and WebP images are allowed")
	ErrImageTooLarge        = shared.NewDomainError("IMAGE_TOO_LARGE", "Image exceeds the maximum upload size")
	ErrEmptyImage           = shared.NewDomainError("EMPTY_IMAGE", "Image file is empty")
	ErrInvalidImageURL      = shared.NewDomainError("INVALID_IMAGE_URL", "Image URL does not belong to the product bucket")
)

// allowedImageTypes maps accepted content types to their file extension
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// extensionTypes maps accepted file extensions to their content type
var extensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ImageServiceConfig holds upload limits and public URL settings
type ImageServiceConfig struct {
	MaxUploadSize int64
	PublicURL     string
}

// ImageService stores product images in object storage
type ImageService struct {
	storage ObjectStorage
	config  ImageServiceConfig
	metrics *telemetry.StorefrontMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewImageService creates a new ImageService
func NewImageService(storage ObjectStorage, cfg ImageServiceConfig, metrics *telemetry.StorefrontMetrics, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 5 << 20
	}
	return &ImageService{
		storage: storage,
		config:  cfg,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Upload validates and stores an image, returning its public URL
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*ImageUploadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "image", "upload")
	defer span.End()

	if size > s.config.MaxUploadSize {
		s.metrics.RecordImageUpload(ctx, telemetry.OutcomeInvalid, size)
		return nil, ErrImageTooLarge
	}

	// Read one byte past the limit so an understated size is still caught
	data, err := io.ReadAll(io.LimitReader(r, s.config.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > s.config.MaxUploadSize {
		s.metrics.RecordImageUpload(ctx, telemetry.OutcomeInvalid, int64(len(data)))
		return nil, ErrImageTooLarge
	}
	if len(data) == 0 {
		s.metrics.RecordImageUpload(ctx, telemetry.OutcomeInvalid, 0)
		return nil, ErrEmptyImage
	}

	detected := detectImageType(data, contentType)
	if detected == "" {
		s.metrics.RecordImageUpload(ctx, telemetry.OutcomeInvalid, int64(len(data)))
		return nil, ErrUnsupportedImageType
	}

	key, err := s.objectKey(filename, detected)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrObjectKey, key,
		telemetry.SpanAttrContentType, detected,
	)

	if err := s.storage.Upload(ctx, key, data, detected); err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordImageUpload(ctx, telemetry.OutcomeFailure, int64(len(data)))
		return nil, err
	}
	s.metrics.RecordImageUpload(ctx, telemetry.OutcomeSuccess, int64(len(data)))

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.String("content_type", detected),
		zap.Int("size", len(data)),
	)

	return &ImageUploadResponse{
		URL:         s.PublicURL(key),
		Key:         key,
		ContentType: detected,
		Size:        int64(len(data)),
	}, nil
}

// Delete removes the object behind a public image URL
func (s *ImageService) Delete(ctx context.Context, url string) error {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return ErrInvalidImageURL
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "image", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrObjectKey, key))
	defer span.End()

	if err := s.storage.DeleteObject(ctx, key); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// PublicURL returns the public URL of an object key
func (s *ImageService) PublicURL(key string) string {
	return strings.TrimRight(s.config.PublicURL, "/") + "/" + key
}

// KeyFromURL extracts the object key from a public URL.
// The key is the path after the configured public URL or after "/<bucket>/".
func (s *ImageService) KeyFromURL(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}

	var key string
	if base := strings.TrimRight(s.config.PublicURL, "/") + "/"; base != "/" && strings.HasPrefix(url, base) {
		key = strings.TrimPrefix(url, base)
	} else {
		marker := "/" + s.storage.GetBucket() + "/"
		idx := strings.LastIndex(url, marker)
		if idx < 0 {
			return "", false
		}
		key = url[idx+len(marker):]
	}

	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// objectKey builds "<random base36>-<unix millis>.<ext>"
func (s *ImageService) objectKey(filename, contentType string) (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	random := strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if extensionTypes[ext] != contentType {
		ext = allowedImageTypes[contentType]
	}
	return fmt.Sprintf("%s-%d.%s", random, s.now().UnixMilli(), ext), nil
}

// detectImageType sniffs the payload and falls back to the declared type
// only when sniffing is inconclusive. SVG is never accepted.
func detectImageType(data []byte, declared string) string {
	sniffed := http.DetectContentType(data)
	if _, ok := allowedImageTypes[sniffed]; ok {
		return sniffed
	}
	if !strings.HasPrefix(sniffed, "application/octet-stream") {
		return ""
	}
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if _, ok := allowedImageTypes[declared]; ok && !bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return declared
	}
	return ""
}

package catalog

import "context"

// ObjectStorage defines the object storage operations used for product images.
// It is implemented by the infrastructure layer (S3-compatible buckets, in-memory).
type ObjectStorage interface {
	// Upload stores data under key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// DeleteObject deletes an object; deleting a missing key is not an error
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, key string) (bool, error)

	// GetBucket returns the bucket name
	GetBucket() string
}

// ImageRemover deletes a stored image by its public URL
type ImageRemover interface {
	Delete(ctx context.Context, url string) error
}

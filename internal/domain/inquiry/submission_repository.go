package inquiry

import (
	"context"

	"github.com/google/uuid"
)

// SubmissionRepository defines the interface for contact submission persistence
type SubmissionRepository interface {
	// FindByID finds a submission by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ContactSubmission, error)

	// FindAll lists submissions matching the read filter, newest first
	FindAll(ctx context.Context, filter ReadFilter) ([]ContactSubmission, error)

	// Save creates or updates a submission
	Save(ctx context.Context, submission *ContactSubmission) error

	// Delete deletes a submission
	Delete(ctx context.Context, id uuid.UUID) error

	// CountUnread counts submissions not yet read
	CountUnread(ctx context.Context) (int64, error)
}

package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultDedupeWindow is how long an identical submission is rejected
const DefaultDedupeWindow = 10 * time.Minute

// ErrDuplicateSubmission is returned when the same inquiry is sent again inside the dedupe window
var ErrDuplicateSubmission = shared.NewDomainError("DUPLICATE_SUBMISSION", "This message was already sent. Please wait before sending it again")

// EventRecorder stores analytics events
type EventRecorder interface {
	SaveEvent(ctx context.Context, event *analytics.Event) error
}

// ContactService handles contact form submissions and the admin inbox
type ContactService struct {
	repo         inquiry.SubmissionRepository
	dedupe       shared.IdempotencyStore
	events       EventRecorder
	metrics      *telemetry.StorefrontMetrics
	dedupeWindow time.Duration
	logger       *zap.Logger
}

// ContactServiceOption configures a ContactService
type ContactServiceOption func(*ContactService)

// WithDedupeWindow overrides DefaultDedupeWindow
func WithDedupeWindow(d time.Duration) ContactServiceOption {
	return func(s *ContactService) {
		if d > 0 {
			s.dedupeWindow = d
		}
	}
}

// WithEventRecorder records a contact_form_submit event for submissions carrying a session id
func WithEventRecorder(events EventRecorder) ContactServiceOption {
	return func(s *ContactService) {
		s.events = events
	}
}

// WithMetrics sets the storefront metrics
func WithMetrics(metrics *telemetry.StorefrontMetrics) ContactServiceOption {
	return func(s *ContactService) {
		s.metrics = metrics
	}
}

// NewContactService creates a new ContactService. dedupe may be nil to disable duplicate suppression.
func NewContactService(repo inquiry.SubmissionRepository, dedupe shared.IdempotencyStore, logger *zap.Logger, opts ...ContactServiceOption) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ContactService{
		repo:         repo,
		dedupe:       dedupe,
		dedupeWindow: DefaultDedupeWindow,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and stores a contact form submission
func (s *ContactService) Submit(ctx context.Context, req SubmitContactRequest) (*SubmissionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "contact", "submit")
	defer span.End()

	submission, err := inquiry.NewContactSubmission(req.Name, req.Email, req.Phone, req.Subject, req.Message, req.LanguagePreference)
	if err != nil {
		s.metrics.RecordInquiry(ctx, telemetry.OutcomeInvalid, req.LanguagePreference)
		return nil, err
	}
	locale := submission.LanguagePreference.String()

	dedupeKey := "inquiry:" + submission.Fingerprint()
	marked := false
	if s.dedupe != nil {
		fresh, err := s.dedupe.MarkProcessed(ctx, dedupeKey, s.dedupeWindow)
		if err != nil {
			// Fail open on store errors
			s.logger.Warn("Duplicate check failed", zap.Error(err))
		} else if !fresh {
			s.metrics.RecordInquiry(ctx, telemetry.OutcomeDuplicate, locale)
			return nil, ErrDuplicateSubmission
		} else {
			marked = true
		}
	}

	if err := s.repo.Save(ctx, submission); err != nil {
		if marked {
			if relErr := s.dedupe.Release(ctx, dedupeKey); relErr != nil {
				s.logger.Warn("Failed to release duplicate mark", zap.Error(relErr))
			}
		}
		telemetry.RecordError(span, err)
		s.metrics.RecordInquiry(ctx, telemetry.OutcomeFailure, locale)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrSubmissionID, submission.ID.String())
	s.metrics.RecordInquiry(ctx, telemetry.OutcomeAccepted, locale)

	if req.SessionID != "" && s.events != nil {
		s.recordSubmitEvent(ctx, submission, req.SessionID)
	}

	s.logger.Info("Contact submission received",
		zap.String("submission_id", submission.ID.String()),
		zap.String("language", locale),
	)

	response := ToSubmissionResponse(submission)
	return &response, nil
}

func (s *ContactService) recordSubmitEvent(ctx context.Context, submission *inquiry.ContactSubmission, sessionID string) {
	event, err := analytics.NewEvent(analytics.EventContactFormSubmit, "/contact", sessionID,
		submission.LanguagePreference.String(), nil,
		map[string]any{"subject": submission.Subject})
	if err != nil {
		s.logger.Debug("Skipping contact event", zap.Error(err))
		return
	}
	if err := s.events.SaveEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to record contact event", zap.Error(err))
		return
	}
	s.metrics.RecordEvent(ctx, string(event.EventName))
}

// List returns the inbox filtered by read state together with the unread count
func (s *ContactService) List(ctx context.Context, filter inquiry.ReadFilter) (*MessageListResponse, error) {
	submissions, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]SubmissionResponse, len(submissions))
	for i := range submissions {
		items[i] = ToSubmissionResponse(&submissions[i])
	}
	return &MessageListResponse{Items: items, UnreadCount: unread, Filter: string(filter)}, nil
}

// ToggleRead flips the read flag of a submission
func (s *ContactService) ToggleRead(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	submission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	submission.ToggleRead()
	if err := s.repo.Save(ctx, submission); err != nil {
		return nil, err
	}
	response := ToSubmissionResponse(submission)
	return &response, nil
}

// Delete deletes a submission
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Contact submission deleted", zap.String("submission_id", id.String()))
	return nil
}

// CountUnread returns the number of unread submissions
func (s *ContactService) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/cache"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.ContactSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inquiry.ContactSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) FindAll(ctx context.Context, filter inquiry.ReadFilter) ([]inquiry.ContactSubmission, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inquiry.ContactSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) Save(ctx context.Context, s *inquiry.ContactSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventRecorder struct {
	mock.Mock
}

func (m *MockEventRecorder) SaveEvent(ctx context.Context, event *analytics.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}
func (failingStore) IsProcessed(context.Context, string) (bool, error) { return false, nil }
func (failingStore) Release(context.Context, string) error             { return nil }
func (failingStore) Close() error                                       { return nil }

func validContactRequest() SubmitContactRequest {
	return SubmitContactRequest{
		Name:               "Ana",
		Email:              "ana@example.com",
		Subject:            "Wedding invitations",
		Message:            "Can you print 150 invitations?",
		LanguagePreference: "tl",
	}
}

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("saves submission", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*inquiry.ContactSubmission")).Return(nil)
		svc := NewContactService(repo, cache.NewInMemoryIdempotencyStore(), nil)

		got, err := svc.Submit(ctx, validContactRequest())
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "tl", got.LanguagePreference)
		assert.False(t, got.IsRead)
	})

	t.Run("rejects duplicate within window", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		svc := NewContactService(repo, store, nil, WithDedupeWindow(time.Minute))

		_, err := svc.Submit(ctx, validContactRequest())
		require.NoError(t, err)

		_, err = svc.Submit(ctx, validContactRequest())
		assert.ErrorIs(t, err, ErrDuplicateSubmission)
		repo.AssertNumberOfCalls(t, "Save", 1)

		other := validContactRequest()
		other.Message = "Different question"
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		_, err = svc.Submit(ctx, other)
		assert.NoError(t, err)
	})

	t.Run("retry succeeds after failed save", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()
		svc := NewContactService(repo, store, nil)

		_, err := svc.Submit(ctx, validContactRequest())
		require.EqualError(t, err, "db down")

		got, err := svc.Submit(ctx, validContactRequest())
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		repo.AssertNumberOfCalls(t, "Save", 2)

		_, err = svc.Submit(ctx, validContactRequest())
		assert.ErrorIs(t, err, ErrDuplicateSubmission)
	})

	t.Run("store failure does not block submission", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		svc := NewContactService(repo, failingStore{}, nil)

		_, err := svc.Submit(ctx, validContactRequest())
		assert.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		svc := NewContactService(repo, nil, nil)

		req := validContactRequest()
		req.Email = "not-an-email"
		_, err := svc.Submit(ctx, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("records event with session id", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		events := new(MockEventRecorder)
		events.On("SaveEvent", mock.Anything, mock.MatchedBy(func(e *analytics.Event) bool {
			return e.EventName == analytics.EventContactFormSubmit && e.SessionID == "sess-1"
		})).Return(nil)
		svc := NewContactService(repo, nil, nil, WithEventRecorder(events))

		req := validContactRequest()
		req.SessionID = "sess-1"
		_, err := svc.Submit(ctx, req)
		require.NoError(t, err)
		events.AssertExpectations(t)
	})

	t.Run("no event without session id", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)
		events := new(MockEventRecorder)
		svc := NewContactService(repo, nil, nil, WithEventRecorder(events))

		_, err := svc.Submit(ctx, validContactRequest())
		require.NoError(t, err)
		events.AssertNotCalled(t, "SaveEvent", mock.Anything, mock.Anything)
	})
}

func TestContactService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	s, err := inquiry.NewContactSubmission("Ana", "ana@example.com", "", "Hi", "Hello", "en")
	require.NoError(t, err)
	repo.On("FindAll", mock.Anything, inquiry.ReadFilterUnread).Return([]inquiry.ContactSubmission{*s}, nil)
	repo.On("CountUnread", mock.Anything).Return(int64(1), nil)
	svc := NewContactService(repo, nil, nil)

	got, err := svc.List(ctx, inquiry.ReadFilterUnread)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, int64(1), got.UnreadCount)
	assert.Equal(t, "unread", got.Filter)
}

func TestContactService_ToggleRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubmissionRepository)
	s, err := inquiry.NewContactSubmission("Ana", "ana@example.com", "", "Hi", "Hello", "en")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	repo.On("Save", mock.Anything, s).Return(nil)
	svc := NewContactService(repo, nil, nil)

	got, err := svc.ToggleRead(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	got, err = svc.ToggleRead(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead)
}

func TestContactService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)
		svc := NewContactService(repo, nil, nil)

		assert.ErrorIs(t, svc.Delete(ctx, id), shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes", func(t *testing.T) {
		repo := new(MockSubmissionRepository)
		s, err := inquiry.NewContactSubmission("Ana", "ana@example.com", "", "Hi", "Hello", "en")
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
		repo.On("Delete", mock.Anything, s.ID).Return(nil)
		svc := NewContactService(repo, nil, nil)

		assert.NoError(t, svc.Delete(ctx, s.ID))
	})
}

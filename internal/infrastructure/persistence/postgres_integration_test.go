//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/catalog"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/infrastructure/migration"
	"github.com/tlsy/handicrafts/migrations"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgresDB starts a throwaway PostgreSQL container and applies the embedded migrations
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tlsy_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgres_ProductRoundTrip(t *testing.T) {
	db := newPostgresDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p, err := catalog.NewProduct(shared.NewLocalized("Wedding Invitation", "Imbitasyon sa Kasal"), "Invitations", decimal.RequireFromString("45.50"))
	require.NoError(t, err)
	require.NoError(t, p.SetImages([]string{"https://cdn.example.com/products/a.png"}))
	p.Specifications = map[string]any{"paper": "linen", "sizes": []any{"5x7"}}
	p.ToggleFeatured()
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Imbitasyon sa Kasal", found.Name.In(shared.LocaleTagalog))
	assert.True(t, found.Price.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, []string{"https://cdn.example.com/products/a.png"}, found.Images)
	assert.Equal(t, "linen", found.Specifications["paper"])

	featured, err := repo.FindFeatured(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	count, err := repo.Count(ctx, shared.Filter{Search: "wedding"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPostgres_InboxAndAnalytics(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()
	submissions := NewGormSubmissionRepository(db)
	events := NewGormAnalyticsRepository(db)

	s, err := inquiry.NewContactSubmission("Maria", "maria@example.com", "", "Keychains", "50 pieces", "tl")
	require.NoError(t, err)
	require.NoError(t, submissions.Save(ctx, s))

	unread, err := submissions.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	list, err := submissions.FindAll(ctx, inquiry.ReadFilterUnread)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shared.LocaleTagalog, list[0].LanguagePreference)

	for _, path := range []string{"/en/", "/en/", "/tl/products"} {
		view, err := analytics.NewPageView(path, "sess-1", "en", "")
		require.NoError(t, err)
		require.NoError(t, events.SavePageView(ctx, view))
	}
	ev, err := analytics.NewEvent(analytics.EventProductView, "/en/products/1", "sess-2", "en", nil, map[string]any{"source": "card"})
	require.NoError(t, err)
	require.NoError(t, events.SaveEvent(ctx, ev))

	since := time.Now().Add(-time.Hour)
	views, err := events.CountPageViewsSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), views)

	sessions, err := events.CountSessionsSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sessions)

	byName, err := events.CountEventsByNameSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byName[string(analytics.EventProductView)])

	top, err := events.TopPagesSince(ctx, since, 5)
	require.NoError(t, err)
	require.NotEmpty(t, top)
	assert.Equal(t, "/en/", top[0].PagePath)
	assert.Equal(t, int64(2), top[0].Views)
}

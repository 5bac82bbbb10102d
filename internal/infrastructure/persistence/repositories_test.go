package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlsy/handicrafts/internal/domain/analytics"
	"github.com/tlsy/handicrafts/internal/domain/inquiry"
	"github.com/tlsy/handicrafts/internal/domain/profile"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"github.com/tlsy/handicrafts/internal/domain/social"
)

func TestGormProfileRepository(t *testing.T) {
	repo := NewGormProfileRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	p, err := profile.NewCrafterProfile(shared.NewLocalized("Tess", "Tess"))
	require.NoError(t, err)
	require.NoError(t, p.Update(profile.ProfileDetails{
		CrafterName:     shared.NewLocalized("Tess", "Tess"),
		Bio:             shared.NewLocalized("Maker of things", "Gumagawa ng mga bagay"),
		YearsExperience: 12,
		Certifications:  "TESDA, DTI",
	}))
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, "Gumagawa ng mga bagay", found.Bio.TL)
	assert.Equal(t, 12, found.YearsExperience)
	assert.Equal(t, []string{"TESDA", "DTI"}, found.CertificationList())

	found.YearsExperience = 13
	require.NoError(t, repo.Save(ctx, found))
	again, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, again.YearsExperience)
}

func TestGormSubmissionRepository(t *testing.T) {
	repo := NewGormSubmissionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	older, err := inquiry.NewContactSubmission("Ana", "ana@example.com", "", "Quote", "How much for 100 cards?", "tl")
	require.NoError(t, err)
	older.CreatedAt = base
	newer, err := inquiry.NewContactSubmission("Ben", "ben@example.com", "0917", "Mugs", "Do you print mugs?", "en")
	require.NoError(t, err)
	newer.CreatedAt = base.Add(time.Hour)

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	all, err := repo.FindAll(ctx, inquiry.ReadFilterAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, "", all[1].Phone)
	assert.Equal(t, shared.LocaleTagalog, all[1].LanguagePreference)

	unread, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	older.ToggleRead()
	require.NoError(t, repo.Save(ctx, older))

	read, err := repo.FindAll(ctx, inquiry.ReadFilterRead)
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, older.ID, read[0].ID)

	unreadOnly, err := repo.FindAll(ctx, inquiry.ReadFilterUnread)
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, "0917", unreadOnly[0].Phone)

	require.NoError(t, repo.Delete(ctx, newer.ID))
	_, err = repo.FindByID(ctx, newer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormSocialLinkRepository(t *testing.T) {
	repo := NewGormSocialLinkRepository(setupTestDB(t))
	ctx := context.Background()

	shopee, err := social.NewSocialLink("Shopee", "https://shopee.ph/tlsy", "shopping-bag")
	require.NoError(t, err)
	facebook, err := social.NewSocialLink("Facebook", "https://facebook.com/tlsy", "facebook")
	require.NoError(t, err)
	require.NoError(t, facebook.Update("Facebook", "https://facebook.com/tlsy", "facebook", false))

	require.NoError(t, repo.Save(ctx, shopee))
	require.NoError(t, repo.Save(ctx, facebook))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Facebook", all[0].Platform)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "https://shopee.ph/tlsy", social.ShopeeURL(active, ""))

	found, err := repo.FindByID(ctx, facebook.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	require.NoError(t, repo.Delete(ctx, shopee.ID))
	assert.ErrorIs(t, repo.Delete(ctx, shopee.ID), shared.ErrNotFound)
}

func TestGormAnalyticsRepository(t *testing.T) {
	repo := NewGormAnalyticsRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	views := []struct {
		path    string
		session string
		at      time.Time
	}{
		{"/en/", "s1", now.Add(-time.Hour)},
		{"/en/products", "s1", now.Add(-50 * time.Minute)},
		{"/en/products", "s2", now.Add(-40 * time.Minute)},
		{"/tl/products", "s3", now.Add(-30 * time.Minute)},
		{"/en/", "s4", now.Add(-48 * time.Hour)},
	}
	for _, v := range views {
		pv, err := analytics.NewPageView(v.path, v.session, "en", "")
		require.NoError(t, err)
		pv.Timestamp = v.at
		require.NoError(t, repo.SavePageView(ctx, pv))
	}

	productID := uuid.New()
	for _, name := range []analytics.EventName{analytics.EventProductView, analytics.EventProductView, analytics.EventCategoryClick} {
		e, err := analytics.NewEvent(name, "/en/products", "s1", "en", &productID, map[string]any{"category": "souvenirs"})
		require.NoError(t, err)
		e.Timestamp = now.Add(-10 * time.Minute)
		require.NoError(t, repo.SaveEvent(ctx, e))
	}
	stale, err := analytics.NewEvent(analytics.EventContactFormSubmit, "/en/contact", "s4", "en", nil, nil)
	require.NoError(t, err)
	stale.Timestamp = now.Add(-72 * time.Hour)
	require.NoError(t, repo.SaveEvent(ctx, stale))

	since := now.Add(-24 * time.Hour)

	count, err := repo.CountPageViewsSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	sessions, err := repo.CountSessionsSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sessions)

	byName, err := repo.CountEventsByNameSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"product_view": 2, "category_click": 1}, byName)

	top, err := repo.TopPagesSince(ctx, since, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, analytics.PageCount{PagePath: "/en/products", Views: 2}, top[0])
	assert.Equal(t, "/en/", top[1].PagePath)
}

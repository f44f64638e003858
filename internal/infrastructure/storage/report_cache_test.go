package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

func newCache(t *testing.T) domain.ReportCache {
	t.Helper()
	cache, err := NewReportCache(":memory:")
	require.NoError(t, err)
	return cache
}

func sampleReport(userID string) *domain.EmergencyReport {
	return &domain.EmergencyReport{
		ID:        7,
		UserID:    userID,
		FullName:  "Asep Sunandar",
		Latitude:  -6.914744,
		Longitude: 107.609810,
		Message:   "Pohon tumbang menutup jalan",
		Status:    domain.ReportPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestReportCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)

	require.NoError(t, cache.SaveActive(ctx, sampleReport("12")))

	got, err := cache.LoadActive(ctx, "12")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "12", got.UserID)
	assert.Equal(t, domain.ReportPending, got.Status)
}

func TestReportCache_MissingRowIsNil(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)

	got, err := cache.LoadActive(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReportCache_UpsertKeepsOneRowPerUser(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)

	first := sampleReport("12")
	require.NoError(t, cache.SaveActive(ctx, first))

	second := sampleReport("12")
	second.ID = 8
	second.Status = domain.ReportAccepted
	require.NoError(t, cache.SaveActive(ctx, second))

	got, err := cache.LoadActive(ctx, "12")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.ID)
	assert.Equal(t, domain.ReportAccepted, got.Status)
}

func TestReportCache_Clear(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)

	require.NoError(t, cache.SaveActive(ctx, sampleReport("12")))
	require.NoError(t, cache.Clear(ctx, "12"))

	got, err := cache.LoadActive(ctx, "12")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, cache.Clear(ctx, "12"))
}

func TestReportCache_NilReportRejected(t *testing.T) {
	cache := newCache(t)
	assert.Error(t, cache.SaveActive(context.Background(), nil))
}

package aggregate

import (
	"testing"
	"time"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/modules/stats/visit"
	"github.com/hyolog/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubTitles map[string]string

func (s stubTitles) TitleBySlug(slug string) (string, error) {
	title, ok := s[slug]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return title, nil
}

func newTestService(t *testing.T, titles TitleResolver) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteVisitModel{}))

	return NewService(db, time.UTC, titles, zap.NewNop()), db
}

func seedVisit(t *testing.T, db *gorm.DB, daysAgo int, identity, pathname string, count int) {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 0, -daysAgo).Format(visit.VisitDateLayout)
	require.NoError(t, db.Create(&models.SiteVisitModel{
		IdentityKey: identity,
		Pathname:    pathname,
		VisitDate:   date,
		VisitCount:  count,
	}).Error)
}

func TestRollupZeroFillsEmptyWindow(t *testing.T) {
	svc, _ := newTestService(t, nil)

	entries, err := svc.Rollup(PeriodDaily, 7)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	for i, entry := range entries {
		assert.Zero(t, entry.TotalVisits)
		assert.Zero(t, entry.UniqueVisitors)
		assert.Zero(t, entry.PageViews)

		day, err := time.Parse(visit.VisitDateLayout, entry.PeriodStart)
		require.NoError(t, err)
		if i > 0 {
			prev, _ := time.Parse(visit.VisitDateLayout, entries[i-1].PeriodStart)
			assert.Equal(t, 24*time.Hour, day.Sub(prev), "buckets must be consecutive days")
		}
	}

	today := time.Now().UTC().Format(visit.VisitDateLayout)
	assert.Equal(t, today, entries[6].PeriodStart)
}

func TestRollupDailyAggregates(t *testing.T) {
	svc, db := newTestService(t, nil)

	seedVisit(t, db, 0, "10.0.0.1", "/posts/a", 3)
	seedVisit(t, db, 0, "10.0.0.2", "/posts/a", 1)
	seedVisit(t, db, 1, "10.0.0.1", "/", 2)

	entries, err := svc.Rollup(PeriodDaily, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	yesterday, today := entries[0], entries[1]
	assert.Equal(t, int64(2), yesterday.TotalVisits)
	assert.Equal(t, int64(1), yesterday.UniqueVisitors)
	assert.Equal(t, int64(4), today.TotalVisits)
	assert.Equal(t, int64(4), today.PageViews)
	assert.Equal(t, int64(2), today.UniqueVisitors)
}

func TestRollupWeeklyAnchorsOnMonday(t *testing.T) {
	svc, _ := newTestService(t, nil)

	entries, err := svc.Rollup(PeriodWeekly, 4)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for _, entry := range entries {
		day, err := time.Parse(visit.VisitDateLayout, entry.PeriodStart)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, day.Weekday())
	}
}

func TestRollupMonthlyAnchorsOnFirst(t *testing.T) {
	svc, _ := newTestService(t, nil)

	entries, err := svc.Rollup(PeriodMonthly, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, entry := range entries {
		day, err := time.Parse(visit.VisitDateLayout, entry.PeriodStart)
		require.NoError(t, err)
		assert.Equal(t, 1, day.Day())
	}
}

func TestRollupRejectsUnknownPeriod(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Rollup("hourly", 7)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOverallSplitsAllTimeAndToday(t *testing.T) {
	svc, db := newTestService(t, nil)

	seedVisit(t, db, 0, "10.0.0.1", "/posts/a", 2)
	seedVisit(t, db, 0, "10.0.0.2", "/posts/b", 1)
	seedVisit(t, db, 5, "10.0.0.3", "/posts/a", 4)

	stats, err := svc.Overall()
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalVisits)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(3), stats.TodayVisits)
	assert.Equal(t, int64(2), stats.TodayUniqueVisitors)
}

func TestPopularPagesRankingAndTitles(t *testing.T) {
	svc, db := newTestService(t, stubTitles{"a": "Post A"})

	seedVisit(t, db, 0, "10.0.0.1", "/posts/a", 5)
	seedVisit(t, db, 1, "10.0.0.2", "/posts/a", 5)
	// Same total as /posts/a but a single visitor: loses the tie-break.
	seedVisit(t, db, 0, "10.0.0.1", "/posts/b", 10)
	seedVisit(t, db, 0, "10.0.0.1", "/about", 1)
	// Outside the window, must not count.
	seedVisit(t, db, 30, "10.0.0.9", "/about", 50)

	pages, err := svc.PopularPages(7, 10)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, "/posts/a", pages[0].Pathname)
	assert.Equal(t, "Post A", pages[0].Title)
	assert.Equal(t, int64(10), pages[0].TotalVisits)
	assert.Equal(t, int64(2), pages[0].UniqueVisitors)

	assert.Equal(t, "/posts/b", pages[1].Pathname)
	assert.Equal(t, "/posts/b", pages[1].Title, "failed title lookup degrades to pathname")

	assert.Equal(t, "/about", pages[2].Pathname)
	assert.Equal(t, "/about", pages[2].Title)
}

func TestTrendDirectionsAndEdgeCases(t *testing.T) {
	svc, db := newTestService(t, nil)

	// No history at all: stable at zero growth.
	trend, err := svc.TrendOverWindows(7, 7)
	require.NoError(t, err)
	assert.Equal(t, DirectionStable, trend.Direction)
	assert.Equal(t, float64(0), trend.GrowthRate)

	// Current traffic with an empty previous window must stay finite.
	seedVisit(t, db, 0, "10.0.0.1", "/", 4)
	trend, err = svc.TrendOverWindows(7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), trend.CurrentPeriodVisits)
	assert.Equal(t, int64(0), trend.PreviousPeriodVisits)
	assert.Equal(t, float64(100), trend.GrowthRate)
	assert.Equal(t, DirectionUp, trend.Direction)

	// A heavier previous window flips the direction.
	seedVisit(t, db, 10, "10.0.0.1", "/", 8)
	trend, err = svc.TrendOverWindows(7, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(8), trend.PreviousPeriodVisits)
	assert.Equal(t, DirectionDown, trend.Direction)
	assert.InDelta(t, -50.0, trend.GrowthRate, 0.001)
}

func TestRecordedVisitsFlowIntoRollup(t *testing.T) {
	svc, db := newTestService(t, nil)
	recorder := visit.NewService(db, time.UTC, zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, recorder.Record(visit.RecordInput{
			IdentityKey: "10.0.0.1",
			Pathname:    "/posts/a",
		}))
	}

	entries, err := svc.Rollup(PeriodDaily, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].TotalVisits)
	assert.Equal(t, int64(1), entries[0].UniqueVisitors)

	var rows int64
	require.NoError(t, db.Model(&models.SiteVisitModel{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/modules/stats/visit"
	"github.com/hyolog/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultRollupWindow = 7
	maxRollupWindow     = 90

	defaultPopularWindow = 7
	defaultPopularLimit  = 10
	maxPopularLimit      = 50

	defaultTrendWindow = 7
	maxTrendWindow     = 365

	postPathPrefix = "/posts/"
)

// TitleResolver looks up a human-readable title for a post slug. Lookup
// failures degrade to the raw pathname, never fail the aggregate call.
type TitleResolver interface {
	TitleBySlug(slug string) (string, error)
}

// Service computes rollups, summaries and trends over recorded visits.
// Bucketing happens in Go over a single range scan rather than per-bucket
// queries, so a rollup is one round trip regardless of window size.
type Service struct {
	db     *gorm.DB
	loc    *time.Location
	titles TitleResolver
	logger *zap.Logger
}

func NewService(db *gorm.DB, loc *time.Location, titles TitleResolver, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc, titles: titles, logger: logger}
}

type visitRow struct {
	VisitDate   string
	IdentityKey string
	VisitCount  int64
}

// Rollup aggregates visits into `window` consecutive buckets of the given
// period, oldest first. Buckets with no traffic still appear with zero
// values so charting consumers never have to backfill gaps. Weekly buckets
// are anchored on Monday; monthly buckets on the first of the month.
func (s *Service) Rollup(period string, window int) ([]RollupEntry, error) {
	if window <= 0 {
		window = defaultRollupWindow
	}
	if window > maxRollupWindow {
		window = maxRollupWindow
	}

	today := s.today()
	starts, err := bucketStarts(period, today, window)
	if err != nil {
		return nil, err
	}

	var rows []visitRow
	if err := s.db.Model(&models.SiteVisitModel{}).
		Select("visit_date, identity_key, visit_count").
		Where("visit_date >= ? AND visit_date <= ?", formatDay(starts[0]), formatDay(today)).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		visits int64
		idents map[string]struct{}
	}
	buckets := make(map[string]*bucket, len(starts))
	for _, start := range starts {
		buckets[formatDay(start)] = &bucket{idents: map[string]struct{}{}}
	}

	for _, row := range rows {
		day, err := time.ParseInLocation(visit.VisitDateLayout, row.VisitDate, s.loc)
		if err != nil {
			continue
		}
		key := formatDay(bucketStart(period, day))
		b, ok := buckets[key]
		if !ok {
			continue
		}
		b.visits += row.VisitCount
		b.idents[row.IdentityKey] = struct{}{}
	}

	entries := make([]RollupEntry, 0, len(starts))
	for _, start := range starts {
		b := buckets[formatDay(start)]
		entries = append(entries, RollupEntry{
			PeriodStart:    formatDay(start),
			TotalVisits:    b.visits,
			UniqueVisitors: int64(len(b.idents)),
			PageViews:      b.visits,
		})
	}
	return entries, nil
}

// Overall returns all-time and today-only summaries, computed at query
// time.
func (s *Service) Overall() (OverallStats, error) {
	var stats OverallStats

	type sumRow struct {
		Total  int64
		Unique int64
	}

	var allTime sumRow
	if err := s.db.Model(&models.SiteVisitModel{}).
		Select("COALESCE(SUM(visit_count), 0) AS total, COUNT(DISTINCT identity_key) AS `unique`").
		Scan(&allTime).Error; err != nil {
		return stats, err
	}

	var today sumRow
	if err := s.db.Model(&models.SiteVisitModel{}).
		Select("COALESCE(SUM(visit_count), 0) AS total, COUNT(DISTINCT identity_key) AS `unique`").
		Where("visit_date = ?", formatDay(s.today())).
		Scan(&today).Error; err != nil {
		return stats, err
	}

	stats.TotalVisits = allTime.Total
	stats.UniqueVisitors = allTime.Unique
	stats.TodayVisits = today.Total
	stats.TodayUniqueVisitors = today.Unique
	return stats, nil
}

// PopularPages ranks pathnames within the last windowDays by total visits.
// Ties break by unique visitors, then pathname, so the order is stable.
// Post pathnames are labeled with the post title where the lookup succeeds.
func (s *Service) PopularPages(windowDays, limit int) ([]PopularPage, error) {
	if windowDays <= 0 {
		windowDays = defaultPopularWindow
	}
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	since := s.today().AddDate(0, 0, -(windowDays - 1))

	type pageRow struct {
		Pathname string
		Total    int64
		Unique   int64
	}
	var rows []pageRow
	if err := s.db.Model(&models.SiteVisitModel{}).
		Select("pathname, SUM(visit_count) AS total, COUNT(DISTINCT identity_key) AS `unique`").
		Where("visit_date >= ?", formatDay(since)).
		Group("pathname").
		Order("total DESC, `unique` DESC, pathname ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	pages := make([]PopularPage, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, PopularPage{
			Pathname:       row.Pathname,
			Title:          s.resolveTitle(row.Pathname),
			TotalVisits:    row.Total,
			UniqueVisitors: row.Unique,
		})
	}
	return pages, nil
}

// TrendOverWindows sums visits over the current window and the window
// immediately before it. A zero previous period yields a finite growth
// rate: 100 when there is current traffic, 0 when there is none.
func (s *Service) TrendOverWindows(currentDays, previousDays int) (Trend, error) {
	if currentDays <= 0 {
		currentDays = defaultTrendWindow
	}
	if currentDays > maxTrendWindow {
		currentDays = maxTrendWindow
	}
	if previousDays <= 0 {
		previousDays = currentDays
	}
	if previousDays > maxTrendWindow {
		previousDays = maxTrendWindow
	}

	today := s.today()
	currentStart := today.AddDate(0, 0, -(currentDays - 1))
	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(previousDays - 1))

	current, err := s.sumWindow(currentStart, today)
	if err != nil {
		return Trend{}, err
	}
	previous, err := s.sumWindow(previousStart, previousEnd)
	if err != nil {
		return Trend{}, err
	}

	trend := Trend{
		CurrentPeriodVisits:  current,
		PreviousPeriodVisits: previous,
	}
	switch {
	case previous == 0 && current > 0:
		trend.GrowthRate = 100
	case previous == 0:
		trend.GrowthRate = 0
	default:
		trend.GrowthRate = float64(current-previous) / float64(previous) * 100
	}
	switch {
	case current > previous:
		trend.Direction = DirectionUp
	case current < previous:
		trend.Direction = DirectionDown
	default:
		trend.Direction = DirectionStable
	}
	return trend, nil
}

func (s *Service) sumWindow(start, end time.Time) (int64, error) {
	var total int64
	err := s.db.Model(&models.SiteVisitModel{}).
		Select("COALESCE(SUM(visit_count), 0)").
		Where("visit_date >= ? AND visit_date <= ?", formatDay(start), formatDay(end)).
		Scan(&total).Error
	return total, err
}

func (s *Service) resolveTitle(pathname string) string {
	if s.titles == nil || !strings.HasPrefix(pathname, postPathPrefix) {
		return pathname
	}
	slug := strings.TrimPrefix(pathname, postPathPrefix)
	if slug == "" || strings.Contains(slug, "/") {
		return pathname
	}
	title, err := s.titles.TitleBySlug(slug)
	if err != nil || title == "" {
		return pathname
	}
	return title
}

func (s *Service) today() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// bucketStarts returns the start date of each bucket in the window, oldest
// first, ending with the bucket containing today.
func bucketStarts(period string, today time.Time, window int) ([]time.Time, error) {
	current := bucketStart(period, today)

	starts := make([]time.Time, 0, window)
	switch period {
	case PeriodDaily:
		for i := window - 1; i >= 0; i-- {
			starts = append(starts, current.AddDate(0, 0, -i))
		}
	case PeriodWeekly:
		for i := window - 1; i >= 0; i-- {
			starts = append(starts, current.AddDate(0, 0, -7*i))
		}
	case PeriodMonthly:
		for i := window - 1; i >= 0; i-- {
			starts = append(starts, current.AddDate(0, -i, 0))
		}
	default:
		return nil, fmt.Errorf("%w: unknown period %q", apperr.ErrValidation, period)
	}
	return starts, nil
}

// bucketStart maps a day to the start of its bucket. Weeks start on Monday.
func bucketStart(period string, day time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

func formatDay(t time.Time) string {
	return t.Format(visit.VisitDateLayout)
}

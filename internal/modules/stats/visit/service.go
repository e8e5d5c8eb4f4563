package visit

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// VisitDateLayout is the canonical calendar-day format for visit rows.
	VisitDateLayout = "2006-01-02"

	maxPathnameLength = 191
)

// Service records page visits. All "today" computations use the configured
// site timezone so a visitor crossing midnight in their local timezone is
// not double-counted.
type Service struct {
	db     *gorm.DB
	loc    *time.Location
	logger *zap.Logger
}

func NewService(db *gorm.DB, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc, logger: logger}
}

// RecordInput carries one page-view event.
type RecordInput struct {
	IdentityKey string
	Pathname    string
	Referrer    string
	UserAgent   string
}

// Record upserts the visit row for (identity, pathname, today). Repeat
// visits on the same day increment visit_count in a single round trip, so
// concurrent duplicate calls cannot create two rows. The conflict target is
// the unique (identity_key, pathname, visit_date) index.
func (s *Service) Record(in RecordInput) error {
	pathname, err := normalizePathname(in.Pathname)
	if err != nil {
		return err
	}

	identity := strings.TrimSpace(in.IdentityKey)
	if identity == "" {
		identity = FallbackIdentity
	}

	row := models.SiteVisitModel{
		IdentityKey: identity,
		Pathname:    pathname,
		VisitDate:   s.Today(),
		Referrer:    strings.TrimSpace(in.Referrer),
		UserAgent:   strings.TrimSpace(in.UserAgent),
		VisitCount:  1,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "identity_key"},
			{Name: "pathname"},
			{Name: "visit_date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"visit_count": gorm.Expr("visit_count + 1"),
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
}

// Today returns the current calendar day in the site timezone.
func (s *Service) Today() string {
	return time.Now().In(s.loc).Format(VisitDateLayout)
}

func normalizePathname(raw string) (string, error) {
	pathname := strings.TrimSpace(raw)
	if pathname == "" {
		return "", fmt.Errorf("%w: pathname is required", apperr.ErrValidation)
	}
	if i := strings.IndexAny(pathname, "?#"); i >= 0 {
		pathname = pathname[:i]
	}
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	if len(pathname) > maxPathnameLength {
		pathname = pathname[:maxPathnameLength]
	}
	return pathname, nil
}

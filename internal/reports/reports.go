// FilePath: internal/reports/reports.go

// Package reports implements the hourly aggregation engine and the derived
// report composition layer: hourly passthrough, daily 24-row breakdown,
// monthly per-day summary and weekly weighted averages. All bucketing is
// timezone-aware; all numeric output is rounded to two decimals at the
// render boundary.
package reports

import (
	"strconv"
	"time"

	"github.com/agrosense/agrohub/internal/cache"
	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

const (
	hoursInDay         = 24
	defaultReportLimit = 500
	defaultWeeklyDays  = 7
)

// Service composes reports out of raw readings and stored hourly aggregates
type Service struct {
	readings     repository.ReadingRepository
	hourly       repository.HourlyAggregateRepository
	cache        *cache.Cache
	timezone     string
	maxRangeDays int
}

// New creates a reports service. timezone is the default IANA zone applied
// when requests omit one; maxRangeDays caps the aggregation window.
func New(
	readings repository.ReadingRepository,
	hourly repository.HourlyAggregateRepository,
	reportCache *cache.Cache,
	timezone string,
	maxRangeDays int,
) *Service {
	return &Service{
		readings:     readings,
		hourly:       hourly,
		cache:        reportCache,
		timezone:     timezone,
		maxRangeDays: maxRangeDays,
	}
}

// resolveZone maps an optional request timezone to a *time.Location,
// falling back to the configured default.
func (s *Service) resolveZone(name string) (*time.Location, error) {
	if name == "" {
		name = s.timezone
	}
	return timeutil.ResolveZone(name)
}

// ensureRangeIsValid rejects inverted windows and windows longer than the
// configured maximum. It performs no storage access.
func (s *Service) ensureRangeIsValid(from, to time.Time) error {
	if !from.Before(to) {
		return errors.NewValidationError("invalid date range: 'from' must be < 'to'", nil)
	}

	maxSpan := time.Duration(s.maxRangeDays) * 24 * time.Hour
	if to.Sub(from) > maxSpan {
		return errors.NewValidationError(
			"date range exceeds the maximum of "+strconv.Itoa(s.maxRangeDays)+" days", nil)
	}
	return nil
}

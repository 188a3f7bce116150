// FilePath: internal/reports/hourly.go
package reports

import (
	"context"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// HourlyReportFilters narrows the hourly report. Date and From/To are
// mutually exclusive; From and To must appear together. Date carries a local
// calendar day in the request timezone.
type HourlyReportFilters struct {
	DeviceID   string
	SensorType models.SensorType
	Date       *time.Time
	From       *time.Time
	To         *time.Time
	Timezone   string
	Limit      int
	Page       int
}

type normalizedHourlyFilters struct {
	query repository.AggregateQuery
	loc   *time.Location
	limit int
	page  int
}

func (s *Service) normalizeHourlyFilters(filters HourlyReportFilters) (normalizedHourlyFilters, error) {
	loc, err := s.resolveZone(filters.Timezone)
	if err != nil {
		return normalizedHourlyFilters{}, err
	}

	query := repository.AggregateQuery{
		DeviceID:   filters.DeviceID,
		SensorType: filters.SensorType,
	}

	switch {
	case filters.Date != nil && (filters.From != nil || filters.To != nil):
		return normalizedHourlyFilters{}, errors.NewValidationError(
			"use either 'date' or 'from'/'to', not both", nil)
	case filters.Date != nil:
		from, to := timeutil.DayWindow(*filters.Date, loc)
		query.From, query.To = from, to
	case filters.From != nil && filters.To != nil:
		if err := s.ensureRangeIsValid(*filters.From, *filters.To); err != nil {
			return normalizedHourlyFilters{}, err
		}
		query.From, query.To = *filters.From, *filters.To
	case filters.From != nil || filters.To != nil:
		return normalizedHourlyFilters{}, errors.NewValidationError(
			"both 'from' and 'to' are required when either is set", nil)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultReportLimit
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}

	query.Limit = limit
	query.Offset = (page - 1) * limit

	return normalizedHourlyFilters{query: query, loc: loc, limit: limit, page: page}, nil
}

// GetHourlyReport returns stored hourly aggregates sorted by
// (hour, deviceId, sensorType) with pagination metadata. Hours render as
// zoned ISO-8601 strings; numerics round to two decimals.
func (s *Service) GetHourlyReport(ctx context.Context, filters HourlyReportFilters) (models.HourlyReportResult, error) {
	normalized, err := s.normalizeHourlyFilters(filters)
	if err != nil {
		return models.HourlyReportResult{}, err
	}

	rows, err := s.hourly.List(ctx, normalized.query)
	if err != nil {
		return models.HourlyReportResult{}, err
	}

	countQuery := normalized.query
	countQuery.Limit, countQuery.Offset = 0, 0
	total, err := s.hourly.Count(ctx, countQuery)
	if err != nil {
		return models.HourlyReportResult{}, err
	}

	data := make([]models.HourlyReportEntry, 0, len(rows))
	for _, row := range rows {
		data = append(data, models.HourlyReportEntry{
			DeviceID:   row.DeviceID,
			SensorType: row.SensorType,
			Hour:       timeutil.ToZonedISO(row.Hour, normalized.loc),
			Avg:        timeutil.Round2(row.Avg),
			Min:        timeutil.Round2(row.Min),
			Max:        timeutil.Round2(row.Max),
			Samples:    row.Samples,
			Units:      row.Units,
		})
	}

	pages := int((total + int64(normalized.limit) - 1) / int64(normalized.limit))
	if pages < 1 {
		pages = 1
	}

	return models.HourlyReportResult{
		Data: data,
		Pagination: models.Pagination{
			Total: total,
			Limit: normalized.limit,
			Page:  normalized.page,
			Pages: pages,
		},
	}, nil
}

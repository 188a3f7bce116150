// FilePath: internal/reports/monthly.go
package reports

import (
	"context"
	"strconv"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// MonthlyReportParams selects one local calendar month of one device.
type MonthlyReportParams struct {
	DeviceID string
	Year     int
	Month    int
	Timezone string
}

type monthlyAccumulator struct {
	radSum   float64
	radMax   float64
	radCount int
	humSum   float64
	humCount int
	tempSum  float64
	tempMax  float64
	tempMin  float64
	tempCnt  int
}

// GetMonthlyReport composes one row per calendar day of the month, leap years
// included. Daily figures derive from the unrounded hourly averages and round
// only at the end, so a month-level Tpro never accumulates per-hour rounding
// drift.
func (s *Service) GetMonthlyReport(ctx context.Context, params MonthlyReportParams) (models.MonthlyReportPayload, error) {
	if params.Year < 2000 || params.Year > 2100 {
		return models.MonthlyReportPayload{}, errors.NewValidationError(
			"year must be between 2000 and 2100", nil)
	}
	if params.Month < 1 || params.Month > 12 {
		return models.MonthlyReportPayload{}, errors.NewValidationError(
			"month must be between 1 and 12", nil)
	}

	loc, err := s.resolveZone(params.Timezone)
	if err != nil {
		return models.MonthlyReportPayload{}, err
	}

	cacheKey := "reports:monthly:" + params.DeviceID + ":" +
		strconv.Itoa(params.Year) + "-" + strconv.Itoa(params.Month) + ":" + loc.String()

	var payload models.MonthlyReportPayload
	if s.cache.Get(ctx, cacheKey, &payload) {
		return payload, nil
	}

	from, to, daysInMonth := timeutil.MonthWindow(params.Year, time.Month(params.Month), loc)

	aggregates, err := s.hourly.List(ctx, repository.AggregateQuery{
		DeviceID: params.DeviceID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return models.MonthlyReportPayload{}, err
	}

	perDay := make([]monthlyAccumulator, daysInMonth+1)
	for _, agg := range aggregates {
		day := agg.Hour.In(loc).Day()
		acc := &perDay[day]
		switch agg.SensorType {
		case models.SolarRadiation:
			if acc.radCount == 0 || agg.Avg > acc.radMax {
				acc.radMax = agg.Avg
			}
			acc.radSum += agg.Avg
			acc.radCount++
		case models.Humidity:
			acc.humSum += agg.Avg
			acc.humCount++
		case models.Temperature:
			if acc.tempCnt == 0 {
				acc.tempMax, acc.tempMin = agg.Avg, agg.Avg
			} else {
				if agg.Avg > acc.tempMax {
					acc.tempMax = agg.Avg
				}
				if agg.Avg < acc.tempMin {
					acc.tempMin = agg.Avg
				}
			}
			acc.tempSum += agg.Avg
			acc.tempCnt++
		}
	}

	days := make([]models.MonthlyDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		acc := perDay[day]
		entry := models.MonthlyDay{Day: day}
		if acc.radCount > 0 {
			entry.RadTot = ptr(timeutil.Round2(acc.radSum))
			entry.RadPro = ptr(timeutil.Round2(acc.radSum / float64(acc.radCount)))
			entry.RadMax = ptr(timeutil.Round2(acc.radMax))
		}
		if acc.humCount > 0 {
			entry.HR = ptr(timeutil.Round2(acc.humSum / float64(acc.humCount)))
		}
		if acc.tempCnt > 0 {
			entry.Tmax = ptr(timeutil.Round2(acc.tempMax))
			entry.Tmin = ptr(timeutil.Round2(acc.tempMin))
			entry.Tpro = ptr(timeutil.Round2(acc.tempSum / float64(acc.tempCnt)))
		}
		days = append(days, entry)
	}

	payload = models.MonthlyReportPayload{
		DeviceID: params.DeviceID,
		Year:     params.Year,
		Month:    params.Month,
		Days:     days,
	}

	s.cache.Set(ctx, cacheKey, payload)
	return payload, nil
}

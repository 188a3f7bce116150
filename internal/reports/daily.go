// FilePath: internal/reports/daily.go
package reports

import (
	"context"
	"time"

	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// DailyReportParams selects one local calendar day of one device.
type DailyReportParams struct {
	DeviceID string
	Date     time.Time
	Timezone string
}

// GetDailyReport composes the 24-row daily view for a device. Each row holds
// the rounded hourly averages of temperature, humidity and solar radiation;
// rows whose rounded temperature matches the day's extremum are flagged, ties
// included. The summaries aggregate over the rounded row values so they agree
// with what the rows display.
func (s *Service) GetDailyReport(ctx context.Context, params DailyReportParams) (models.DailyReportPayload, error) {
	loc, err := s.resolveZone(params.Timezone)
	if err != nil {
		return models.DailyReportPayload{}, err
	}

	from, to := timeutil.DayWindow(params.Date, loc)
	cacheKey := "reports:daily:" + params.DeviceID + ":" + from.In(loc).Format("2006-01-02") + ":" + loc.String()

	var payload models.DailyReportPayload
	if s.cache.Get(ctx, cacheKey, &payload) {
		return payload, nil
	}

	aggregates, err := s.hourly.List(ctx, repository.AggregateQuery{
		DeviceID: params.DeviceID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return models.DailyReportPayload{}, err
	}

	rows := make([]models.DailyReportRow, hoursInDay)
	for i := range rows {
		rows[i].Hour = i
	}

	for _, agg := range aggregates {
		hour := agg.Hour.In(loc).Hour()
		value := timeutil.Round2(agg.Avg)
		switch agg.SensorType {
		case models.Temperature:
			rows[hour].TemperatureAvg = &value
		case models.Humidity:
			rows[hour].HumidityAvg = &value
		case models.SolarRadiation:
			rows[hour].SolarRadiationAvg = &value
		}
	}

	payload = models.DailyReportPayload{
		DeviceID:    params.DeviceID,
		Date:        from.In(loc).Format("2006-01-02"),
		Rows:        rows,
		Temperature: summarizeTemperature(rows),
		Humidity:    summarizeHumidity(rows),
		Radiation:   summarizeRadiation(rows),
	}
	payload.Rows = markTemperatureExtremes(payload.Rows, payload.Temperature)

	s.cache.Set(ctx, cacheKey, payload)
	return payload, nil
}

func summarizeTemperature(rows []models.DailyReportRow) models.DailyTemperatureSummary {
	var summary models.DailyTemperatureSummary
	var sum float64
	var count int
	for _, row := range rows {
		if row.TemperatureAvg == nil {
			continue
		}
		v := *row.TemperatureAvg
		if summary.Tmax == nil || v > *summary.Tmax {
			summary.Tmax = ptr(v)
		}
		if summary.Tmin == nil || v < *summary.Tmin {
			summary.Tmin = ptr(v)
		}
		sum += v
		count++
	}
	if count > 0 {
		summary.Tpro = ptr(timeutil.Round2(sum / float64(count)))
	}
	return summary
}

func summarizeHumidity(rows []models.DailyReportRow) models.DailyHumiditySummary {
	var sum float64
	var count int
	for _, row := range rows {
		if row.HumidityAvg == nil {
			continue
		}
		sum += *row.HumidityAvg
		count++
	}
	if count == 0 {
		return models.DailyHumiditySummary{}
	}
	return models.DailyHumiditySummary{Hpro: ptr(timeutil.Round2(sum / float64(count)))}
}

func summarizeRadiation(rows []models.DailyReportRow) models.DailyRadiationSummary {
	var summary models.DailyRadiationSummary
	var sum float64
	var count int
	for _, row := range rows {
		if row.SolarRadiationAvg == nil {
			continue
		}
		v := *row.SolarRadiationAvg
		if summary.RadMax == nil || v > *summary.RadMax {
			summary.RadMax = ptr(v)
		}
		sum += v
		count++
	}
	if count > 0 {
		summary.RadTot = ptr(timeutil.Round2(sum))
		summary.RadPro = ptr(timeutil.Round2(sum / float64(count)))
	}
	return summary
}

// markTemperatureExtremes flags every row whose rounded temperature equals
// the daily maximum or minimum. Multiple rows can carry the same flag.
func markTemperatureExtremes(rows []models.DailyReportRow, summary models.DailyTemperatureSummary) []models.DailyReportRow {
	if summary.Tmax == nil {
		return rows
	}
	for i := range rows {
		if rows[i].TemperatureAvg == nil {
			continue
		}
		if *rows[i].TemperatureAvg == *summary.Tmax {
			rows[i].IsTmax = true
		}
		if *rows[i].TemperatureAvg == *summary.Tmin {
			rows[i].IsTmin = true
		}
	}
	return rows
}

func ptr(v float64) *float64 {
	return &v
}

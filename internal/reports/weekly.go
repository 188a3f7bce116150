// FilePath: internal/reports/weekly.go
package reports

import (
	"context"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// WeeklyReportParams selects the trailing window for the weekly averages.
// Days defaults to 7; Reference defaults to the current instant and marks the
// inclusive end of the window.
type WeeklyReportParams struct {
	DeviceID  string
	Days      int
	Reference time.Time
	Timezone  string
}

type weightedAverage struct {
	weightedSum float64
	samples     int64
	units       string
}

func (w *weightedAverage) add(agg models.HourlyAggregate) {
	w.weightedSum += agg.Avg * float64(agg.Samples)
	w.samples += agg.Samples
	if w.units == "" {
		w.units = agg.Units
	}
}

func (w weightedAverage) entry(sensorType models.SensorType) models.WeeklySensorAverage {
	return models.WeeklySensorAverage{
		SensorType: sensorType,
		Average:    timeutil.Round2(w.weightedSum / float64(w.samples)),
		Samples:    w.samples,
		Units:      w.units,
	}
}

// GetWeeklySensorAverages computes samples-weighted averages per sensor type
// over the trailing window, plus a per-day breakdown. An hour with many
// readings weighs proportionally more than a sparse one; a plain mean of
// hourly averages would not. The window is closed at the reference instant.
func (s *Service) GetWeeklySensorAverages(ctx context.Context, params WeeklyReportParams) (models.WeeklyAveragesPayload, error) {
	days := params.Days
	if days <= 0 {
		days = defaultWeeklyDays
	}
	if days > 30 {
		return models.WeeklyAveragesPayload{}, errors.NewValidationError(
			"days must be between 1 and 30", nil)
	}

	loc, err := s.resolveZone(params.Timezone)
	if err != nil {
		return models.WeeklyAveragesPayload{}, err
	}

	ref := params.Reference
	if ref.IsZero() {
		ref = time.Now()
	}

	// The window runs a full days*24h back from the reference instant, closed
	// on both ends. The breakdown below anchors on local days instead, so an
	// aggregate can contribute to the overall averages without belonging to
	// any breakdown day.
	windowStart := ref.AddDate(0, 0, -days)
	firstDay := timeutil.StartOfDay(ref, loc).AddDate(0, 0, -(days - 1))

	aggregates, err := s.hourly.List(ctx, repository.AggregateQuery{
		DeviceID:    params.DeviceID,
		From:        windowStart,
		To:          ref,
		ToInclusive: true,
	})
	if err != nil {
		return models.WeeklyAveragesPayload{}, err
	}

	overall := map[models.SensorType]*weightedAverage{}
	perDay := map[string]map[models.SensorType]*weightedAverage{}
	for _, agg := range aggregates {
		if w := overall[agg.SensorType]; w != nil {
			w.add(agg)
		} else {
			w = &weightedAverage{}
			w.add(agg)
			overall[agg.SensorType] = w
		}

		dayKey := agg.Hour.In(loc).Format("2006-01-02")
		sensors := perDay[dayKey]
		if sensors == nil {
			sensors = map[models.SensorType]*weightedAverage{}
			perDay[dayKey] = sensors
		}
		if w := sensors[agg.SensorType]; w != nil {
			w.add(agg)
		} else {
			w = &weightedAverage{}
			w.add(agg)
			sensors[agg.SensorType] = w
		}
	}

	sensorEntries := make([]models.WeeklySensorAverage, 0, len(overall))
	for _, sensorType := range models.SensorTypes {
		if w, ok := overall[sensorType]; ok && w.samples > 0 {
			sensorEntries = append(sensorEntries, w.entry(sensorType))
		}
	}

	daily := make([]models.WeeklyDay, 0, days)
	for i := 0; i < days; i++ {
		day := firstDay.AddDate(0, 0, i)
		dayKey := day.Format("2006-01-02")
		weekday := timeutil.ISOWeekday(day, loc)

		entry := models.WeeklyDay{
			Date:        timeutil.ToZonedISO(day, loc),
			Weekday:     weekday,
			WeekdayName: timeutil.WeekdayName(weekday),
			Sensors:     []models.WeeklySensorAverage{},
		}
		if sensors := perDay[dayKey]; sensors != nil {
			for _, sensorType := range models.SensorTypes {
				if w, ok := sensors[sensorType]; ok && w.samples > 0 {
					entry.Sensors = append(entry.Sensors, w.entry(sensorType))
				}
			}
		}
		daily = append(daily, entry)
	}

	return models.WeeklyAveragesPayload{
		DeviceID: params.DeviceID,
		Days:     days,
		Range: models.WeeklyRange{
			From: timeutil.ToZonedISO(windowStart, loc),
			To:   timeutil.ToZonedISO(ref, loc),
		},
		Sensors: sensorEntries,
		Daily:   daily,
	}, nil
}

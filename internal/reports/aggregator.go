// FilePath: internal/reports/aggregator.go
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// UpsertParams describes one aggregation run over raw readings with
// timestamp in [From, To). DeviceID and SensorType narrow the run;
// Timezone overrides the configured bucketing zone.
type UpsertParams struct {
	From       time.Time
	To         time.Time
	DeviceID   string
	SensorType models.SensorType
	Timezone   string
}

// UpsertResult reports how many aggregate rows were inserted or replaced.
type UpsertResult struct {
	Upserted int64 `json:"upserted"`
}

type bucketKey struct {
	deviceID   string
	sensorType models.SensorType
	hour       int64 // unix seconds of the truncated local hour
	units      string
}

type bucketStats struct {
	hour    time.Time
	sum     float64
	min     float64
	max     float64
	samples int64
}

// UpsertHourlyAverages recomputes hourly statistics for every reading in the
// window and writes them through a bulk upsert keyed on
// (deviceId, sensorType, hour). The operation is a pure function of the raw
// data in the window, so re-running it converges to the same stored state.
func (s *Service) UpsertHourlyAverages(ctx context.Context, params UpsertParams) (UpsertResult, error) {
	if err := s.ensureRangeIsValid(params.From, params.To); err != nil {
		return UpsertResult{}, err
	}

	loc, err := s.resolveZone(params.Timezone)
	if err != nil {
		return UpsertResult{}, err
	}

	readings, err := s.readings.ListWindow(ctx, repository.ReadingWindow{
		From:       params.From,
		To:         params.To,
		DeviceID:   params.DeviceID,
		SensorType: params.SensorType,
	})
	if err != nil {
		return UpsertResult{}, err
	}
	if len(readings) == 0 {
		return UpsertResult{Upserted: 0}, nil
	}

	// Bucket by device, sensor, local hour and unit. The hour boundary is
	// taken in the report zone, never in UTC: a reading at 04:45Z belongs to
	// the 23:00 bucket of the previous local day in a UTC-5 zone.
	buckets := map[bucketKey]*bucketStats{}
	for _, reading := range readings {
		hour := timeutil.TruncateToHour(reading.Timestamp, loc)
		key := bucketKey{
			deviceID:   reading.DeviceID,
			sensorType: reading.SensorType,
			hour:       hour.Unix(),
			units:      reading.Unit,
		}

		stats, ok := buckets[key]
		if !ok {
			buckets[key] = &bucketStats{
				hour:    hour,
				sum:     reading.Value,
				min:     reading.Value,
				max:     reading.Value,
				samples: 1,
			}
			continue
		}

		stats.sum += reading.Value
		stats.samples++
		if reading.Value < stats.min {
			stats.min = reading.Value
		}
		if reading.Value > stats.max {
			stats.max = reading.Value
		}
	}

	now := time.Now().UTC()
	rows := make([]models.HourlyAggregate, 0, len(buckets))
	for key, stats := range buckets {
		rows = append(rows, models.HourlyAggregate{
			DeviceID:   key.deviceID,
			SensorType: key.sensorType,
			Hour:       stats.hour,
			Avg:        stats.sum / float64(stats.samples),
			Min:        stats.min,
			Max:        stats.max,
			Samples:    stats.samples,
			Units:      key.units,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Hour.Equal(rows[j].Hour) {
			return rows[i].Hour.Before(rows[j].Hour)
		}
		if rows[i].DeviceID != rows[j].DeviceID {
			return rows[i].DeviceID < rows[j].DeviceID
		}
		return rows[i].SensorType < rows[j].SensorType
	})

	upserted, err := s.hourly.UpsertBatch(ctx, rows)
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{Upserted: upserted}, nil
}

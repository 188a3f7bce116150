// FilePath: internal/reports/fakes_test.go
package reports

import (
	"context"
	"sort"
	"time"

	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
)

// In-memory repositories backing the service tests.

type fakeReadingRepo struct {
	readings []models.Reading
}

func (f *fakeReadingRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeReadingRepo) InsertBatch(ctx context.Context, readings []*models.Reading) error {
	for _, r := range readings {
		f.readings = append(f.readings, *r)
	}
	return nil
}

func (f *fakeReadingRepo) ListWindow(ctx context.Context, window repository.ReadingWindow) ([]models.Reading, error) {
	var out []models.Reading
	for _, r := range f.readings {
		if r.Timestamp.Before(window.From) || !r.Timestamp.Before(window.To) {
			continue
		}
		if window.DeviceID != "" && r.DeviceID != window.DeviceID {
			continue
		}
		if window.SensorType != "" && r.SensorType != window.SensorType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReadingRepo) List(ctx context.Context, filters repository.ReadingFilters) ([]models.Reading, error) {
	return f.readings, nil
}

func (f *fakeReadingRepo) LatestBySensor(ctx context.Context, deviceID string) ([]models.LatestReading, error) {
	return nil, nil
}

func (f *fakeReadingRepo) Stats(ctx context.Context, filters repository.ReadingFilters) ([]models.ReadingStats, error) {
	return nil, nil
}

type hourlyKey struct {
	deviceID   string
	sensorType models.SensorType
	hour       int64
}

type fakeHourlyRepo struct {
	rows map[hourlyKey]models.HourlyAggregate
}

func newFakeHourlyRepo() *fakeHourlyRepo {
	return &fakeHourlyRepo{rows: map[hourlyKey]models.HourlyAggregate{}}
}

func (f *fakeHourlyRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (f *fakeHourlyRepo) UpsertBatch(ctx context.Context, rows []models.HourlyAggregate) (int64, error) {
	for _, row := range rows {
		key := hourlyKey{row.DeviceID, row.SensorType, row.Hour.Unix()}
		f.rows[key] = row
	}
	return int64(len(rows)), nil
}

func (f *fakeHourlyRepo) matches(row models.HourlyAggregate, query repository.AggregateQuery) bool {
	if query.DeviceID != "" && row.DeviceID != query.DeviceID {
		return false
	}
	if query.SensorType != "" && row.SensorType != query.SensorType {
		return false
	}
	if !query.From.IsZero() && row.Hour.Before(query.From) {
		return false
	}
	if !query.To.IsZero() {
		if query.ToInclusive {
			if row.Hour.After(query.To) {
				return false
			}
		} else if !row.Hour.Before(query.To) {
			return false
		}
	}
	return true
}

func (f *fakeHourlyRepo) List(ctx context.Context, query repository.AggregateQuery) ([]models.HourlyAggregate, error) {
	var out []models.HourlyAggregate
	for _, row := range f.rows {
		if f.matches(row, query) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Hour.Equal(out[j].Hour) {
			return out[i].Hour.Before(out[j].Hour)
		}
		if out[i].DeviceID != out[j].DeviceID {
			return out[i].DeviceID < out[j].DeviceID
		}
		return out[i].SensorType < out[j].SensorType
	})
	if query.Offset > 0 {
		if query.Offset >= len(out) {
			return nil, nil
		}
		out = out[query.Offset:]
	}
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (f *fakeHourlyRepo) Count(ctx context.Context, query repository.AggregateQuery) (int64, error) {
	var total int64
	for _, row := range f.rows {
		if f.matches(row, query) {
			total++
		}
	}
	return total, nil
}

func newTestService(readings *fakeReadingRepo, hourly *fakeHourlyRepo) *Service {
	return New(readings, hourly, nil, "America/Bogota", 92)
}

func mustTime(t string) time.Time {
	parsed, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return parsed
}

func aggregate(deviceID string, sensorType models.SensorType, hour string, avg float64, samples int64, units string) models.HourlyAggregate {
	return models.HourlyAggregate{
		DeviceID:   deviceID,
		SensorType: sensorType,
		Hour:       mustTime(hour),
		Avg:        avg,
		Min:        avg,
		Max:        avg,
		Samples:    samples,
		Units:      units,
	}
}

func reading(deviceID string, sensorType models.SensorType, ts string, value float64, unit string) models.Reading {
	return models.Reading{
		DeviceID:   deviceID,
		SensorType: sensorType,
		Value:      value,
		Unit:       unit,
		Timestamp:  mustTime(ts),
	}
}

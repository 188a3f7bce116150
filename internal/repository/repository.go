// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ReadingWindow selects raw readings with timestamp in [From, To), optionally
// narrowed to a device and/or sensor type.
type ReadingWindow struct {
	From       time.Time
	To         time.Time
	DeviceID   string
	SensorType models.SensorType
}

// ReadingFilters narrows raw-data and stats queries. From/To are inclusive
// bounds; zero values are ignored. Limit applies to raw listings only.
type ReadingFilters struct {
	DeviceID   string
	SensorType models.SensorType
	From       time.Time
	To         time.Time
	Limit      int
}

// AggregateQuery selects hourly aggregates. From is inclusive; To is
// exclusive unless ToInclusive is set (the weekly report uses a closed
// window). Zero time bounds are ignored. Limit/Offset page the result.
type AggregateQuery struct {
	DeviceID    string
	SensorType  models.SensorType
	From        time.Time
	To          time.Time
	ToInclusive bool
	Limit       int
	Offset      int
}

// ReadingRepository defines the interface for raw sensor readings
type ReadingRepository interface {
	database.Repository
	InsertBatch(ctx context.Context, readings []*models.Reading) error
	ListWindow(ctx context.Context, window ReadingWindow) ([]models.Reading, error)
	List(ctx context.Context, filters ReadingFilters) ([]models.Reading, error)
	LatestBySensor(ctx context.Context, deviceID string) ([]models.LatestReading, error)
	Stats(ctx context.Context, filters ReadingFilters) ([]models.ReadingStats, error)
}

// HourlyAggregateRepository defines the interface for the computed hourly
// aggregate store. UpsertBatch must converge on the storage-level unique key
// (device_id, sensor_type, hour) so concurrent recomputations never produce
// duplicate buckets.
type HourlyAggregateRepository interface {
	database.Repository
	UpsertBatch(ctx context.Context, rows []models.HourlyAggregate) (int64, error)
	List(ctx context.Context, query AggregateQuery) ([]models.HourlyAggregate, error)
	Count(ctx context.Context, query AggregateQuery) (int64, error)
}

// DeviceRepository defines the interface for the device registry
type DeviceRepository interface {
	database.Repository
	Create(ctx context.Context, device *models.Device) error
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)
	List(ctx context.Context, offset, limit int) ([]*models.Device, error)
	UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error
}

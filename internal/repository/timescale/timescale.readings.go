// FilePath: internal/repository/timescale/timescale.readings.go
package timescale

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const defaultRawDataLimit = 100

type ReadingRepo struct {
	TimeScaleBaseRepo
}

func NewReadingRepository(db database.DB) (*ReadingRepo, error) {
	repo := &ReadingRepo{TimeScaleBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Raw readings live in a hypertable; the aggregate pipeline only ever reads
// them back by time window. Unique constraints on a hypertable must include
// the partitioning column, so the primary key carries timestamp.
var readingsSchema = []string{
	`CREATE TABLE IF NOT EXISTS sensor_readings (
		id TEXT NOT NULL,
		device_id TEXT NOT NULL,
		sensor_type TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (id, timestamp)
	)`,
	`SELECT create_hypertable('sensor_readings', 'timestamp',
		chunk_time_interval => INTERVAL '1 day',
		if_not_exists => TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sensor_readings_device_sensor_timestamp
     ON sensor_readings(device_id, sensor_type, timestamp DESC)`,
}

func (r *ReadingRepo) initializeSchema() error {
	for _, query := range readingsSchema {
		if _, err := r.ExecContext(context.Background(), query); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReadingRepo) InsertBatch(ctx context.Context, readings []*models.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	for _, reading := range readings {
		if reading.ID == "" {
			reading.ID = nuts.NID("sr", 12)
		}
		if reading.Timestamp.IsZero() {
			reading.Timestamp = time.Now().UTC()
		}
	}

	query := `
		INSERT INTO sensor_readings (id, device_id, sensor_type, value, unit, timestamp)
		VALUES (:id, :device_id, :sensor_type, :value, :unit, :timestamp)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, readings)
	if err != nil {
		return errors.NewDatabaseError("failed to insert sensor readings", err)
	}
	return nil
}

// ListWindow returns readings with timestamp in [From, To), ordered by time.
func (r *ReadingRepo) ListWindow(ctx context.Context, window repository.ReadingWindow) ([]models.Reading, error) {
	query := `
		SELECT id, device_id, sensor_type, value, unit, timestamp
		FROM sensor_readings
		WHERE timestamp >= $1 AND timestamp < $2`
	args := []interface{}{window.From, window.To}

	if window.DeviceID != "" {
		args = append(args, window.DeviceID)
		query += ` AND device_id = $` + strconv.Itoa(len(args))
	}
	if window.SensorType != "" {
		args = append(args, window.SensorType)
		query += ` AND sensor_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY timestamp ASC`

	readings := []models.Reading{}
	err := r.db.GetDB().SelectContext(ctx, &readings, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list readings window", err)
	}
	return readings, nil
}

func (r *ReadingRepo) List(ctx context.Context, filters repository.ReadingFilters) ([]models.Reading, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, device_id, sensor_type, value, unit, timestamp
		FROM sensor_readings
		WHERE 1=1`)

	args := []interface{}{}
	appendReadingFilters(&sb, &args, filters)

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultRawDataLimit
	}
	args = append(args, limit)
	sb.WriteString(` ORDER BY timestamp DESC LIMIT $` + strconv.Itoa(len(args)))

	readings := []models.Reading{}
	err := r.db.GetDB().SelectContext(ctx, &readings, sb.String(), args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}
	return readings, nil
}

// LatestBySensor returns the most recent reading for every sensor type of a
// device, via a window function over the time-descending index.
func (r *ReadingRepo) LatestBySensor(ctx context.Context, deviceID string) ([]models.LatestReading, error) {
	query := `
        WITH ranked AS (
            SELECT device_id, sensor_type, value, unit, timestamp,
                   ROW_NUMBER() OVER (PARTITION BY device_id, sensor_type ORDER BY timestamp DESC) AS rn
            FROM sensor_readings
            WHERE ($1 = '' OR device_id = $1)
        )
        SELECT device_id, sensor_type, value, unit, timestamp
        FROM ranked
        WHERE rn = 1
        ORDER BY device_id ASC, sensor_type ASC`

	readings := []models.LatestReading{}
	err := r.db.GetDB().SelectContext(ctx, &readings, query, deviceID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get latest readings", err)
	}
	return readings, nil
}

func (r *ReadingRepo) Stats(ctx context.Context, filters repository.ReadingFilters) ([]models.ReadingStats, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT device_id, sensor_type,
			(array_agg(unit ORDER BY timestamp DESC))[1] AS unit,
			COUNT(*) AS samples,
			MIN(value) AS min_value,
			MAX(value) AS max_value,
			AVG(value) AS average_value,
			MIN(timestamp) AS first_timestamp,
			MAX(timestamp) AS last_timestamp,
			(array_agg(value ORDER BY timestamp DESC))[1] AS latest_value
		FROM sensor_readings
		WHERE 1=1`)

	args := []interface{}{}
	appendReadingFilters(&sb, &args, filters)
	sb.WriteString(` GROUP BY device_id, sensor_type ORDER BY device_id ASC, sensor_type ASC`)

	stats := []models.ReadingStats{}
	err := r.db.GetDB().SelectContext(ctx, &stats, sb.String(), args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to compute reading stats", err)
	}
	return stats, nil
}

func appendReadingFilters(sb *strings.Builder, args *[]interface{}, filters repository.ReadingFilters) {
	if filters.DeviceID != "" {
		*args = append(*args, filters.DeviceID)
		sb.WriteString(` AND device_id = $` + strconv.Itoa(len(*args)))
	}
	if filters.SensorType != "" {
		*args = append(*args, filters.SensorType)
		sb.WriteString(` AND sensor_type = $` + strconv.Itoa(len(*args)))
	}
	if !filters.From.IsZero() {
		*args = append(*args, filters.From)
		sb.WriteString(` AND timestamp >= $` + strconv.Itoa(len(*args)))
	}
	if !filters.To.IsZero() {
		*args = append(*args, filters.To)
		sb.WriteString(` AND timestamp <= $` + strconv.Itoa(len(*args)))
	}
}

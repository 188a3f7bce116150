// FilePath: internal/repository/timescale/timescale.hourly.go
package timescale

import (
	"context"
	"strconv"
	"strings"

	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
)

type HourlyAggregateRepo struct {
	TimeScaleBaseRepo
}

func NewHourlyAggregateRepository(db database.DB) (*HourlyAggregateRepo, error) {
	repo := &HourlyAggregateRepo{TimeScaleBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

// The unique index on (device_id, sensor_type, hour) is the concurrency
// safety mechanism of the whole aggregation pipeline: overlapping
// recomputations converge per key instead of duplicating buckets.
var hourlySchema = []string{
	`CREATE TABLE IF NOT EXISTS sensor_hourly_averages (
		device_id TEXT NOT NULL,
		sensor_type TEXT NOT NULL,
		hour TIMESTAMPTZ NOT NULL,
		avg DOUBLE PRECISION NOT NULL,
		min DOUBLE PRECISION NOT NULL,
		max DOUBLE PRECISION NOT NULL,
		samples BIGINT NOT NULL,
		units TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS hourly_device_sensor_hour_unique
     ON sensor_hourly_averages(device_id, sensor_type, hour)`,
	`CREATE INDEX IF NOT EXISTS idx_hourly_averages_hour
     ON sensor_hourly_averages(hour)`,
}

func (r *HourlyAggregateRepo) initializeSchema() error {
	for _, query := range hourlySchema {
		if _, err := r.ExecContext(context.Background(), query); err != nil {
			return err
		}
	}
	return nil
}

// upsertChunkSize keeps each statement under the Postgres limit of 65535
// bind parameters (10 per row). A 92-day window across many devices can
// exceed a single statement.
const upsertChunkSize = 1000

// UpsertBatch writes all buckets in multi-row statements inside one
// transaction. Conflicts are resolved per key, so one bad bucket never blocks
// its siblings and no application-level lock is needed. created_at is
// preserved on update.
func (r *HourlyAggregateRepo) UpsertBatch(ctx context.Context, rows []models.HourlyAggregate) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var affected int64
	err := r.withTx(ctx, func(tx database.Transaction) error {
		for start := 0; start < len(rows); start += upsertChunkSize {
			end := start + upsertChunkSize
			if end > len(rows) {
				end = len(rows)
			}

			query, args := buildUpsertStatement(rows[start:end])
			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return errors.NewDatabaseError("failed to upsert hourly aggregates", err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return errors.NewDatabaseError("failed to get rows affected", err)
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func buildUpsertStatement(rows []models.HourlyAggregate) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO sensor_hourly_averages
			(device_id, sensor_type, hour, avg, min, max, samples, units, created_at, updated_at)
		VALUES `)

	args := make([]interface{}, 0, len(rows)*10)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 10
		sb.WriteString("(")
		for j := 1; j <= 10; j++ {
			if j > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString("$" + strconv.Itoa(base+j))
		}
		sb.WriteString(")")
		args = append(args,
			row.DeviceID, row.SensorType, row.Hour,
			row.Avg, row.Min, row.Max, row.Samples, row.Units,
			row.CreatedAt, row.UpdatedAt,
		)
	}

	sb.WriteString(`
		ON CONFLICT (device_id, sensor_type, hour) DO UPDATE SET
			avg = EXCLUDED.avg,
			min = EXCLUDED.min,
			max = EXCLUDED.max,
			samples = EXCLUDED.samples,
			units = EXCLUDED.units,
			updated_at = EXCLUDED.updated_at`)

	return sb.String(), args
}

func (r *HourlyAggregateRepo) List(ctx context.Context, query repository.AggregateQuery) ([]models.HourlyAggregate, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT device_id, sensor_type, hour, avg, min, max, samples, units, created_at, updated_at
		FROM sensor_hourly_averages
		WHERE 1=1`)

	args := []interface{}{}
	appendAggregateFilters(&sb, &args, query)
	sb.WriteString(` ORDER BY hour ASC, device_id ASC, sensor_type ASC`)

	if query.Limit > 0 {
		args = append(args, query.Limit)
		sb.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	}
	if query.Offset > 0 {
		args = append(args, query.Offset)
		sb.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
	}

	aggregates := []models.HourlyAggregate{}
	err := r.db.GetDB().SelectContext(ctx, &aggregates, sb.String(), args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hourly aggregates", err)
	}
	return aggregates, nil
}

func (r *HourlyAggregateRepo) Count(ctx context.Context, query repository.AggregateQuery) (int64, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM sensor_hourly_averages WHERE 1=1`)

	args := []interface{}{}
	appendAggregateFilters(&sb, &args, query)

	var count int64
	err := r.db.GetDB().GetContext(ctx, &count, sb.String(), args...)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count hourly aggregates", err)
	}
	return count, nil
}

func appendAggregateFilters(sb *strings.Builder, args *[]interface{}, query repository.AggregateQuery) {
	if query.DeviceID != "" {
		*args = append(*args, query.DeviceID)
		sb.WriteString(` AND device_id = $` + strconv.Itoa(len(*args)))
	}
	if query.SensorType != "" {
		*args = append(*args, query.SensorType)
		sb.WriteString(` AND sensor_type = $` + strconv.Itoa(len(*args)))
	}
	if !query.From.IsZero() {
		*args = append(*args, query.From)
		sb.WriteString(` AND hour >= $` + strconv.Itoa(len(*args)))
	}
	if !query.To.IsZero() {
		*args = append(*args, query.To)
		if query.ToInclusive {
			sb.WriteString(` AND hour <= $` + strconv.Itoa(len(*args)))
		} else {
			sb.WriteString(` AND hour < $` + strconv.Itoa(len(*args)))
		}
	}
}

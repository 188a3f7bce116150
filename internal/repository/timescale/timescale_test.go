// FilePath: internal/repository/timescale/timescale_test.go
package timescale

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/agrosense/agrohub/internal/models"
)

func sampleAggregates(n int) []models.HourlyAggregate {
	rows := make([]models.HourlyAggregate, 0, n)
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows = append(rows, models.HourlyAggregate{
			DeviceID:   "dev" + strconv.Itoa(i%3),
			SensorType: models.Temperature,
			Hour:       base.Add(time.Duration(i) * time.Hour),
			Avg:        20.0,
			Min:        18.0,
			Max:        22.0,
			Samples:    4,
			Units:      "°C",
			CreatedAt:  base,
			UpdatedAt:  base,
		})
	}
	return rows
}

func TestBuildUpsertStatement(t *testing.T) {
	rows := sampleAggregates(3)
	query, args := buildUpsertStatement(rows)

	if len(args) != 30 {
		t.Fatalf("expected 10 args per row, got %d", len(args))
	}
	for i := 1; i <= 30; i++ {
		if !strings.Contains(query, "$"+strconv.Itoa(i)) {
			t.Errorf("missing placeholder $%d", i)
		}
	}
	if strings.Contains(query, "$31") {
		t.Errorf("unexpected extra placeholder")
	}
	if !strings.Contains(query, "ON CONFLICT (device_id, sensor_type, hour) DO UPDATE") {
		t.Errorf("upsert statement must converge on the unique triple")
	}
	if strings.Contains(query, "created_at = EXCLUDED") {
		t.Errorf("created_at must be preserved on update")
	}
}

func TestUpsertChunkSizeStaysUnderParameterLimit(t *testing.T) {
	// Postgres caps a statement at 65535 bind parameters; each row binds 10
	if upsertChunkSize*10 > 65535 {
		t.Errorf("chunk size %d overflows the bind parameter limit", upsertChunkSize)
	}
}

func TestReadingsSchemaKeyIncludesPartitioningColumn(t *testing.T) {
	// A hypertable rejects unique constraints that omit the time column
	table := readingsSchema[0]
	if !strings.Contains(table, "PRIMARY KEY (id, timestamp)") {
		t.Errorf("readings primary key must include the timestamp column")
	}
	if strings.Contains(table, "id TEXT PRIMARY KEY") {
		t.Errorf("standalone id primary key is invalid on a hypertable")
	}
}

func TestHourlySchemaHasUniqueTriple(t *testing.T) {
	var found bool
	for _, stmt := range hourlySchema {
		if strings.Contains(stmt, "CREATE UNIQUE INDEX") &&
			strings.Contains(stmt, "(device_id, sensor_type, hour)") {
			found = true
		}
	}
	if !found {
		t.Errorf("hourly schema must enforce the unique (device_id, sensor_type, hour) triple")
	}
}

// FilePath: internal/reports/daily_test.go
package reports

import (
	"context"
	"testing"
	"time"

	"github.com/agrosense/agrohub/internal/models"
)

// bogotaHour returns the UTC instant of the given local hour on 2025-03-10
// in America/Bogota (UTC-5, no DST).
func bogotaHour(hour int) string {
	return time.Date(2025, 3, 10, hour+5, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func TestGetDailyReportRowsAndSummaries(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		aggregate("dev1", models.Temperature, bogotaHour(10), 20.0, 4, "°C"),
		aggregate("dev1", models.Temperature, bogotaHour(14), 25.456, 4, "°C"),
		aggregate("dev1", models.Humidity, bogotaHour(10), 61.0, 4, "%"),
		aggregate("dev1", models.Humidity, bogotaHour(14), 63.0, 4, "%"),
		aggregate("dev1", models.SolarRadiation, bogotaHour(12), 800.0, 4, "W/m²"),
		aggregate("dev1", models.SolarRadiation, bogotaHour(13), 600.0, 4, "W/m²"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	payload, err := svc.GetDailyReport(context.Background(), DailyReportParams{
		DeviceID: "dev1",
		Date:     mustTime("2025-03-10T05:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.Date != "2025-03-10" {
		t.Errorf("expected date 2025-03-10, got %q", payload.Date)
	}
	if len(payload.Rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(payload.Rows))
	}
	for i, row := range payload.Rows {
		if row.Hour != i {
			t.Fatalf("row %d carries hour %d", i, row.Hour)
		}
	}

	if payload.Rows[0].TemperatureAvg != nil {
		t.Errorf("expected empty hour to have no temperature")
	}
	if got := *payload.Rows[14].TemperatureAvg; got != 25.46 {
		t.Errorf("expected rounded row value 25.46, got %v", got)
	}

	if got := *payload.Temperature.Tmax; got != 25.46 {
		t.Errorf("expected tmax 25.46, got %v", got)
	}
	if got := *payload.Temperature.Tmin; got != 20.0 {
		t.Errorf("expected tmin 20, got %v", got)
	}
	if got := *payload.Temperature.Tpro; got != 22.73 {
		t.Errorf("expected tpro 22.73, got %v", got)
	}
	if got := *payload.Humidity.Hpro; got != 62.0 {
		t.Errorf("expected hpro 62, got %v", got)
	}
	if got := *payload.Radiation.RadTot; got != 1400.0 {
		t.Errorf("expected radTot 1400, got %v", got)
	}
	if got := *payload.Radiation.RadPro; got != 700.0 {
		t.Errorf("expected radPro 700, got %v", got)
	}
	if got := *payload.Radiation.RadMax; got != 800.0 {
		t.Errorf("expected radMax 800, got %v", got)
	}
}

func TestGetDailyReportMarksAllTiedExtremes(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// 25.456 and 25.462 both round to 25.46; both rows must be flagged
		aggregate("dev1", models.Temperature, bogotaHour(13), 25.456, 4, "°C"),
		aggregate("dev1", models.Temperature, bogotaHour(15), 25.462, 4, "°C"),
		aggregate("dev1", models.Temperature, bogotaHour(3), 12.0, 4, "°C"),
		aggregate("dev1", models.Temperature, bogotaHour(4), 12.0, 4, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	payload, err := svc.GetDailyReport(context.Background(), DailyReportParams{
		DeviceID: "dev1",
		Date:     mustTime("2025-03-10T05:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !payload.Rows[13].IsTmax || !payload.Rows[15].IsTmax {
		t.Errorf("expected both tied maxima flagged")
	}
	if !payload.Rows[3].IsTmin || !payload.Rows[4].IsTmin {
		t.Errorf("expected both tied minima flagged")
	}
	if payload.Rows[13].IsTmin || payload.Rows[3].IsTmax {
		t.Errorf("extremum flags crossed over")
	}
}

func TestGetDailyReportEmptyDay(t *testing.T) {
	svc := newTestService(&fakeReadingRepo{}, newFakeHourlyRepo())

	payload, err := svc.GetDailyReport(context.Background(), DailyReportParams{
		DeviceID: "dev1",
		Date:     mustTime("2025-03-10T05:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Rows) != 24 {
		t.Fatalf("expected 24 rows for an empty day, got %d", len(payload.Rows))
	}
	if payload.Temperature.Tmax != nil || payload.Humidity.Hpro != nil || payload.Radiation.RadTot != nil {
		t.Errorf("expected empty summaries, got %+v %+v %+v",
			payload.Temperature, payload.Humidity, payload.Radiation)
	}
}

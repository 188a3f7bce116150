// FilePath: internal/reports/weekly_test.go
package reports

import (
	"context"
	"testing"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
)

func TestGetWeeklySensorAveragesWeighted(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// weighted: (20*10 + 30*5) / 15 = 23.33
		aggregate("dev1", models.Temperature, "2025-03-08T15:00:00Z", 20.0, 10, "°C"),
		aggregate("dev1", models.Temperature, "2025-03-09T15:00:00Z", 30.0, 5, "°C"),
		aggregate("dev1", models.Humidity, "2025-03-09T15:00:00Z", 60.0, 8, "%"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	payload, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID:  "dev1",
		Reference: mustTime("2025-03-10T12:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.Days != 7 {
		t.Errorf("expected default window of 7 days, got %d", payload.Days)
	}
	if len(payload.Sensors) != 2 {
		t.Fatalf("expected 2 sensor entries, got %d", len(payload.Sensors))
	}

	temp := payload.Sensors[0]
	if temp.SensorType != models.Temperature {
		t.Fatalf("expected temperature first in report order, got %s", temp.SensorType)
	}
	if temp.Average != 23.33 || temp.Samples != 15 {
		t.Errorf("expected weighted average 23.33 over 15 samples, got %v over %d",
			temp.Average, temp.Samples)
	}

	hum := payload.Sensors[1]
	if hum.SensorType != models.Humidity || hum.Average != 60.0 {
		t.Errorf("unexpected humidity entry: %+v", hum)
	}
}

func TestGetWeeklySensorAveragesDailyBreakdown(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// 2025-03-08 local in Bogota (Saturday)
		aggregate("dev1", models.Temperature, "2025-03-08T15:00:00Z", 20.0, 10, "°C"),
		// 2025-03-10 local (Monday)
		aggregate("dev1", models.Temperature, "2025-03-10T15:00:00Z", 30.0, 5, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	payload, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID:  "dev1",
		Reference: mustTime("2025-03-10T21:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payload.Daily) != 7 {
		t.Fatalf("expected 7 daily entries, got %d", len(payload.Daily))
	}
	if payload.Daily[0].Date != "2025-03-04T00:00:00-05:00" {
		t.Errorf("expected breakdown starting 2025-03-04, got %s", payload.Daily[0].Date)
	}
	if payload.Daily[6].Date != "2025-03-10T00:00:00-05:00" {
		t.Errorf("expected breakdown ending 2025-03-10, got %s", payload.Daily[6].Date)
	}

	saturday := payload.Daily[4]
	if saturday.Weekday != 6 || saturday.WeekdayName != "Sábado" {
		t.Errorf("unexpected Saturday labels: %d %q", saturday.Weekday, saturday.WeekdayName)
	}
	if len(saturday.Sensors) != 1 || saturday.Sensors[0].Average != 20.0 {
		t.Errorf("unexpected Saturday sensors: %+v", saturday.Sensors)
	}

	monday := payload.Daily[6]
	if monday.Weekday != 1 || monday.WeekdayName != "Lunes" {
		t.Errorf("unexpected Monday labels: %d %q", monday.Weekday, monday.WeekdayName)
	}

	empty := payload.Daily[0]
	if len(empty.Sensors) != 0 {
		t.Errorf("expected no sensors on a day without data, got %+v", empty.Sensors)
	}

	if payload.Range.From != "2025-03-03T16:00:00-05:00" {
		t.Errorf("unexpected range start: %s", payload.Range.From)
	}
	if payload.Range.To != "2025-03-10T16:00:00-05:00" {
		t.Errorf("unexpected range end: %s", payload.Range.To)
	}
}

func TestGetWeeklySensorAveragesWindowStartsAtReferenceMinusDays(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// 2025-11-02T12:00Z sits inside [ref-7d, ref] but before the first
		// breakdown day; it must still count toward the overall averages
		aggregate("dev1", models.Temperature, "2025-11-02T12:00:00Z", 30.0, 5, "°C"),
		aggregate("dev1", models.Temperature, "2025-11-05T12:00:00Z", 20.0, 5, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	// midnight Bogota on 2025-11-09
	payload, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID:  "dev1",
		Reference: mustTime("2025-11-09T05:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payload.Sensors) != 1 {
		t.Fatalf("expected 1 sensor entry, got %d", len(payload.Sensors))
	}
	temp := payload.Sensors[0]
	if temp.Average != 25.0 || temp.Samples != 10 {
		t.Errorf("expected both aggregates weighted (25 over 10 samples), got %v over %d",
			temp.Average, temp.Samples)
	}
	if payload.Range.From != "2025-11-02T00:00:00-05:00" {
		t.Errorf("expected range starting a full 7 days back, got %s", payload.Range.From)
	}
	if payload.Daily[0].Date != "2025-11-03T00:00:00-05:00" {
		t.Errorf("expected breakdown anchored on local days, got %s", payload.Daily[0].Date)
	}
}

func TestGetWeeklySensorAveragesClosedWindow(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// exactly at the reference instant; the closed window keeps it
		aggregate("dev1", models.Temperature, "2025-03-10T15:00:00Z", 25.0, 3, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	payload, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID:  "dev1",
		Reference: mustTime("2025-03-10T15:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload.Sensors) != 1 || payload.Sensors[0].Samples != 3 {
		t.Errorf("expected the boundary aggregate to be included, got %+v", payload.Sensors)
	}
}

func TestGetWeeklySensorAveragesDaysValidation(t *testing.T) {
	svc := newTestService(&fakeReadingRepo{}, newFakeHourlyRepo())

	_, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID: "dev1",
		Days:     31,
	})
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error for days > 30, got %v", err)
	}

	payload, err := svc.GetWeeklySensorAverages(context.Background(), WeeklyReportParams{
		DeviceID:  "dev1",
		Days:      3,
		Reference: mustTime("2025-03-10T12:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Days != 3 || len(payload.Daily) != 3 {
		t.Errorf("expected a 3-day breakdown, got days=%d len=%d", payload.Days, len(payload.Daily))
	}
}

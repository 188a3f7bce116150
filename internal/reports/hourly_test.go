// FilePath: internal/reports/hourly_test.go
package reports

import (
	"context"
	"testing"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
)

func seedHourly(t *testing.T, hourly *fakeHourlyRepo, rows ...models.HourlyAggregate) {
	t.Helper()
	if _, err := hourly.UpsertBatch(context.Background(), rows); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
}

func TestGetHourlyReportPagination(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		aggregate("dev1", models.Temperature, "2025-03-10T10:00:00Z", 20.0, 4, "°C"),
		aggregate("dev1", models.Temperature, "2025-03-10T11:00:00Z", 21.0, 4, "°C"),
		aggregate("dev1", models.Temperature, "2025-03-10T12:00:00Z", 22.0, 4, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	result, err := svc.GetHourlyReport(context.Background(), HourlyReportFilters{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected 1 row on page 2, got %d", len(result.Data))
	}
	if result.Pagination.Total != 3 || result.Pagination.Pages != 2 || result.Pagination.Page != 2 {
		t.Errorf("unexpected pagination: %+v", result.Pagination)
	}
	if result.Data[0].Avg != 22.0 {
		t.Errorf("expected the third row by hour order, got avg=%v", result.Data[0].Avg)
	}
}

func TestGetHourlyReportEmptyResultHasOnePage(t *testing.T) {
	svc := newTestService(&fakeReadingRepo{}, newFakeHourlyRepo())

	result, err := svc.GetHourlyReport(context.Background(), HourlyReportFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pagination.Pages != 1 || result.Pagination.Total != 0 {
		t.Errorf("unexpected pagination for empty set: %+v", result.Pagination)
	}
	if result.Pagination.Limit != 500 || result.Pagination.Page != 1 {
		t.Errorf("expected defaults limit=500 page=1, got %+v", result.Pagination)
	}
}

func TestGetHourlyReportRendersZonedHour(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		aggregate("dev1", models.Temperature, "2025-03-10T04:00:00Z", 23.333, 3, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	result, err := svc.GetHourlyReport(context.Background(), HourlyReportFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Data))
	}
	row := result.Data[0]
	if row.Hour != "2025-03-09T23:00:00-05:00" {
		t.Errorf("expected zoned hour rendering, got %q", row.Hour)
	}
	if row.Avg != 23.33 {
		t.Errorf("expected rounded avg 23.33, got %v", row.Avg)
	}
}

func TestGetHourlyReportFilterConflicts(t *testing.T) {
	svc := newTestService(&fakeReadingRepo{}, newFakeHourlyRepo())
	date := mustTime("2025-03-10T05:00:00Z")
	from := mustTime("2025-03-10T00:00:00Z")
	to := mustTime("2025-03-11T00:00:00Z")

	tests := []struct {
		name    string
		filters HourlyReportFilters
	}{
		{"date with from", HourlyReportFilters{Date: &date, From: &from}},
		{"date with to", HourlyReportFilters{Date: &date, To: &to}},
		{"lone from", HourlyReportFilters{From: &from}},
		{"lone to", HourlyReportFilters{To: &to}},
		{"inverted range", HourlyReportFilters{From: &to, To: &from}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetHourlyReport(context.Background(), tt.filters)
			if !errors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetHourlyReportDateSelectsLocalDay(t *testing.T) {
	hourly := newFakeHourlyRepo()
	seedHourly(t, hourly,
		// 23:00 local on 2025-03-09 in Bogota; outside the 2025-03-10 day
		aggregate("dev1", models.Temperature, "2025-03-10T04:00:00Z", 18.0, 2, "°C"),
		// 00:00 local on 2025-03-10
		aggregate("dev1", models.Temperature, "2025-03-10T05:00:00Z", 19.0, 2, "°C"),
		// 23:00 local on 2025-03-10
		aggregate("dev1", models.Temperature, "2025-03-11T04:00:00Z", 20.0, 2, "°C"),
		// 00:00 local on 2025-03-11; outside again
		aggregate("dev1", models.Temperature, "2025-03-11T05:00:00Z", 21.0, 2, "°C"),
	)
	svc := newTestService(&fakeReadingRepo{}, hourly)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.FixedZone("-05", -5*3600))
	result, err := svc.GetHourlyReport(context.Background(), HourlyReportFilters{Date: &date})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected the 2 rows of the local day, got %d", len(result.Data))
	}
	if result.Data[0].Avg != 19.0 || result.Data[1].Avg != 20.0 {
		t.Errorf("unexpected rows: %+v", result.Data)
	}
}

// FilePath: internal/models/models.report.go
package models

// Report payloads are computed views over hourly aggregates. They are never
// persisted; numeric fields are rounded to two decimals at the render boundary.

// HourlyReportEntry is one hourly aggregate rendered for the API, with the
// hour formatted as a zoned ISO-8601 string.
type HourlyReportEntry struct {
	DeviceID   string     `json:"deviceId"`
	SensorType SensorType `json:"sensorType"`
	Hour       string     `json:"hour"`
	Avg        float64    `json:"avg"`
	Min        float64    `json:"min"`
	Max        float64    `json:"max"`
	Samples    int64      `json:"samples"`
	Units      string     `json:"units"`
}

// Pagination describes the page window of a report query. Pages is never
// below 1, even for empty result sets.
type Pagination struct {
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

type HourlyReportResult struct {
	Data       []HourlyReportEntry `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// DailyReportRow is one local hour of the daily report. Metric fields are
// absent when no aggregate exists for that sensor in that hour.
type DailyReportRow struct {
	Hour              int      `json:"hour"`
	SolarRadiationAvg *float64 `json:"solar_radiation_avg,omitempty"`
	HumidityAvg       *float64 `json:"humidity_avg,omitempty"`
	TemperatureAvg    *float64 `json:"temperature_avg,omitempty"`
	IsTmax            bool     `json:"isTmax,omitempty"`
	IsTmin            bool     `json:"isTmin,omitempty"`
}

type DailyTemperatureSummary struct {
	Tmax *float64 `json:"tmax,omitempty"`
	Tmin *float64 `json:"tmin,omitempty"`
	Tpro *float64 `json:"tpro,omitempty"`
}

type DailyHumiditySummary struct {
	Hpro *float64 `json:"hpro,omitempty"`
}

type DailyRadiationSummary struct {
	RadTot *float64 `json:"radTot,omitempty"`
	RadPro *float64 `json:"radPro,omitempty"`
	RadMax *float64 `json:"radMax,omitempty"`
}

type DailyReportPayload struct {
	DeviceID    string                  `json:"deviceId"`
	Date        string                  `json:"date"`
	Rows        []DailyReportRow        `json:"rows"`
	Temperature DailyTemperatureSummary `json:"temperature"`
	Humidity    DailyHumiditySummary    `json:"humidity"`
	Radiation   DailyRadiationSummary   `json:"radiation"`
}

// MonthlyDay carries per-day extrema and averages derived from that day's
// hourly aggregates. Days without data keep every metric field absent.
type MonthlyDay struct {
	Day    int      `json:"day"`
	RadTot *float64 `json:"RadTot,omitempty"`
	RadPro *float64 `json:"RadPro,omitempty"`
	RadMax *float64 `json:"RadMax,omitempty"`
	HR     *float64 `json:"HR,omitempty"`
	Tmax   *float64 `json:"Tmax,omitempty"`
	Tmin   *float64 `json:"Tmin,omitempty"`
	Tpro   *float64 `json:"Tpro,omitempty"`
}

type MonthlyReportPayload struct {
	DeviceID string       `json:"deviceId"`
	Year     int          `json:"year"`
	Month    int          `json:"month"`
	Days     []MonthlyDay `json:"days"`
}

// WeeklySensorAverage is a samples-weighted average for one sensor type
// across all hourly aggregates in the weekly window.
type WeeklySensorAverage struct {
	SensorType SensorType `json:"sensorType"`
	Average    float64    `json:"average"`
	Samples    int64      `json:"samples"`
	Units      string     `json:"units"`
}

// WeeklyDay is the per-day breakdown entry of the weekly report. Weekday is
// the ISO index (1 = Monday .. 7 = Sunday).
type WeeklyDay struct {
	Date        string                `json:"date"`
	Weekday     int                   `json:"weekday"`
	WeekdayName string                `json:"weekdayName"`
	Sensors     []WeeklySensorAverage `json:"sensors"`
}

type WeeklyRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type WeeklyAveragesPayload struct {
	DeviceID string                `json:"deviceId"`
	Days     int                   `json:"days"`
	Range    WeeklyRange           `json:"range"`
	Sensors  []WeeklySensorAverage `json:"sensors"`
	Daily    []WeeklyDay           `json:"daily"`
}

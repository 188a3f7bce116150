// FilePath: internal/models/api.models.filters.go
package models

// Query parameter shapes decoded by gorilla/schema in the API layer. Date
// strings stay raw here; parsing and validation happen against the resolved
// timezone in the handlers.

// HourlyReportQuery backs GET /reports/hourly.
type HourlyReportQuery struct {
	DeviceID   string `schema:"deviceId"`
	SensorType string `schema:"sensorType"`
	Date       string `schema:"date"`
	From       string `schema:"from"`
	To         string `schema:"to"`
	Timezone   string `schema:"timezone"`
	Limit      int    `schema:"limit"`
	Page       int    `schema:"page"`
}

// DailyReportQuery backs GET /reports/daily.
type DailyReportQuery struct {
	DeviceID string `schema:"deviceId"`
	Date     string `schema:"date"`
	Timezone string `schema:"timezone"`
}

// MonthlyReportQuery backs GET /reports/monthly.
type MonthlyReportQuery struct {
	DeviceID string `schema:"deviceId"`
	Year     int    `schema:"year"`
	Month    int    `schema:"month"`
	Timezone string `schema:"timezone"`
}

// WeeklyReportQuery backs GET /reports/weekly.
type WeeklyReportQuery struct {
	DeviceID string `schema:"deviceId"`
	Days     int    `schema:"days"`
	Timezone string `schema:"timezone"`
}

// ReadingsQuery backs the raw data and stats endpoints.
type ReadingsQuery struct {
	DeviceID   string `schema:"deviceId"`
	SensorType string `schema:"sensorType"`
	From       string `schema:"from"`
	To         string `schema:"to"`
	Limit      int    `schema:"limit"`
}

// RecalculateRequest is the JSON body of POST /reports/hourly/recalculate.
type RecalculateRequest struct {
	DeviceID   string `json:"deviceId"`
	SensorType string `json:"sensorType"`
	From       string `json:"from"`
	To         string `json:"to"`
	Timezone   string `json:"timezone"`
}

// FilePath: api/resources/api.resource.reports.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/hubservice"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/reports"
	"github.com/agrosense/agrohub/internal/timeutil"
)

const maxPageLimit = 2000

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// ReportHandlers encapsulates the report-related HTTP handlers
type ReportHandlers struct {
	hubservice      *hubservice.HubService
	defaultTimezone string
}

func (h *ReportHandlers) resolveZone(name string) (*time.Location, error) {
	if name == "" {
		name = h.defaultTimezone
	}
	return timeutil.ResolveZone(name)
}

// @Summary Get hourly aggregates
// @Description Paginated hourly averages filtered by device, sensor type and time window
// @Tags reports
// @Produce json
// @Param deviceId query string false "Device ID"
// @Param sensorType query string false "Sensor type"
// @Param date query string false "Local calendar day (YYYY-MM-DD)"
// @Param from query string false "Window start (ISO-8601)"
// @Param to query string false "Window end (ISO-8601)"
// @Param timezone query string false "IANA timezone"
// @Param limit query int false "Page size (max 2000)"
// @Param page query int false "Page number"
// @Success 200 {object} models.HourlyReportResult
// @Failure 400 {object} errors.APIError
// @Router /reports/hourly [get]
func (h *ReportHandlers) GetHourlyReport(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.HourlyReportQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.Limit > maxPageLimit {
		respondWithError(w, errors.NewValidationError("limit must not exceed 2000", nil).WithRequestID(requestID))
		return
	}

	sensorType, err := parseSensorType(query.SensorType)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	loc, err := h.resolveZone(query.Timezone)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	filters := reports.HourlyReportFilters{
		DeviceID:   query.DeviceID,
		SensorType: sensorType,
		Timezone:   query.Timezone,
		Limit:      query.Limit,
		Page:       query.Page,
	}
	if filters.Date, err = parseOptionalDate(query.Date, loc); err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}
	if filters.From, err = parseOptionalInstant(query.From, loc); err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}
	if filters.To, err = parseOptionalInstant(query.To, loc); err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	result, err := h.hubservice.Reports.GetHourlyReport(r.Context(), filters)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// @Summary Recalculate hourly aggregates
// @Description Recompute and upsert hourly averages for a time window
// @Tags reports
// @Accept json
// @Produce json
// @Param window body models.RecalculateRequest true "Aggregation window"
// @Success 200 {object} reports.UpsertResult
// @Failure 400 {object} errors.APIError
// @Router /reports/hourly/recalculate [post]
func (h *ReportHandlers) RecalculateHourly(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var body models.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if body.From == "" || body.To == "" {
		respondWithError(w, errors.NewValidationError("'from' and 'to' are required", nil).WithRequestID(requestID))
		return
	}

	sensorType, err := parseSensorType(body.SensorType)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	loc, err := h.resolveZone(body.Timezone)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	from, err := timeutil.ParseInstant(body.From, loc)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}
	to, err := timeutil.ParseInstant(body.To, loc)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	result, err := h.hubservice.Reports.UpsertHourlyAverages(r.Context(), reports.UpsertParams{
		From:       from,
		To:         to,
		DeviceID:   body.DeviceID,
		SensorType: sensorType,
		Timezone:   body.Timezone,
	})
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// @Summary Get daily report
// @Description 24-row hourly breakdown of one local calendar day with temperature extremes
// @Tags reports
// @Produce json
// @Param deviceId query string true "Device ID"
// @Param date query string true "Local calendar day (YYYY-MM-DD)"
// @Param timezone query string false "IANA timezone"
// @Success 200 {object} models.DailyReportPayload
// @Failure 400 {object} errors.APIError
// @Router /reports/daily [get]
func (h *ReportHandlers) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.DailyReportQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.DeviceID == "" || query.Date == "" {
		respondWithError(w, errors.NewValidationError("'deviceId' and 'date' are required", nil).WithRequestID(requestID))
		return
	}

	loc, err := h.resolveZone(query.Timezone)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}
	date, err := timeutil.ParseLocalDate(query.Date, loc)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	payload, err := h.hubservice.Reports.GetDailyReport(r.Context(), reports.DailyReportParams{
		DeviceID: query.DeviceID,
		Date:     date,
		Timezone: query.Timezone,
	})
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

// @Summary Get monthly report
// @Description One row per calendar day with temperature, humidity and radiation summaries
// @Tags reports
// @Produce json
// @Param deviceId query string true "Device ID"
// @Param year query int true "Year (2000-2100)"
// @Param month query int true "Month (1-12)"
// @Param timezone query string false "IANA timezone"
// @Success 200 {object} models.MonthlyReportPayload
// @Failure 400 {object} errors.APIError
// @Router /reports/monthly [get]
func (h *ReportHandlers) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.MonthlyReportQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.DeviceID == "" {
		respondWithError(w, errors.NewValidationError("'deviceId' is required", nil).WithRequestID(requestID))
		return
	}

	payload, err := h.hubservice.Reports.GetMonthlyReport(r.Context(), reports.MonthlyReportParams{
		DeviceID: query.DeviceID,
		Year:     query.Year,
		Month:    query.Month,
		Timezone: query.Timezone,
	})
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

// @Summary Get weekly sensor averages
// @Description Samples-weighted averages per sensor type over a trailing window with a daily breakdown
// @Tags reports
// @Produce json
// @Param deviceId query string true "Device ID"
// @Param days query int false "Trailing window length in days (1-30, default 7)"
// @Param timezone query string false "IANA timezone"
// @Success 200 {object} models.WeeklyAveragesPayload
// @Failure 400 {object} errors.APIError
// @Router /reports/weekly [get]
func (h *ReportHandlers) GetWeeklyAverages(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var query models.WeeklyReportQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if query.DeviceID == "" {
		respondWithError(w, errors.NewValidationError("'deviceId' is required", nil).WithRequestID(requestID))
		return
	}

	payload, err := h.hubservice.Reports.GetWeeklySensorAverages(r.Context(), reports.WeeklyReportParams{
		DeviceID: query.DeviceID,
		Days:     query.Days,
		Timezone: query.Timezone,
	})
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

// Helper functions

func parseSensorType(raw string) (models.SensorType, error) {
	if raw == "" {
		return "", nil
	}
	sensorType := models.SensorType(raw)
	if !sensorType.IsValid() {
		return "", errors.NewValidationError("unsupported sensor type: "+raw, nil)
	}
	return sensorType, nil
}

func parseOptionalDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := timeutil.ParseLocalDate(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalInstant(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := timeutil.ParseInstant(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// respondWithAPIError passes structured service errors through unchanged and
// wraps anything else as internal.
func respondWithAPIError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("request failed", err).WithRequestID(requestID))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/hubservice"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	"github.com/agrosense/agrohub/internal/timeutil"
)

// ReadingHandlers encapsulates the raw-data and device HTTP handlers
type ReadingHandlers struct {
	hubservice      *hubservice.HubService
	defaultTimezone string
}

// ingestRequest is the JSON body of POST /readings.
type ingestRequest struct {
	Readings []*models.Reading `json:"readings"`
}

type ingestResponse struct {
	Inserted int `json:"inserted"`
}

// @Summary Ingest sensor readings
// @Description Store a batch of raw sensor readings; unknown devices are auto-registered
// @Tags readings
// @Accept json
// @Produce json
// @Param batch body ingestRequest true "Readings batch"
// @Success 201 {object} ingestResponse
// @Failure 400 {object} errors.APIError
// @Router /readings [post]
func (h *ReadingHandlers) IngestReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var body ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.RecordReadings(r.Context(), body.Readings); err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, ingestResponse{Inserted: len(body.Readings)})
}

// @Summary List raw readings
// @Description Raw readings newest-first, filtered by device, sensor type and time window
// @Tags readings
// @Produce json
// @Param deviceId query string false "Device ID"
// @Param sensorType query string false "Sensor type"
// @Param from query string false "Window start (ISO-8601)"
// @Param to query string false "Window end (ISO-8601)"
// @Param limit query int false "Maximum rows"
// @Success 200 {array} models.Reading
// @Failure 400 {object} errors.APIError
// @Router /readings [get]
func (h *ReadingHandlers) ListReadings(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters, err := h.readingFilters(r)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	readings, err := h.hubservice.RawReadings(r.Context(), filters)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}

// @Summary Get reading statistics
// @Description Per-device, per-sensor summary of raw readings in a window
// @Tags readings
// @Produce json
// @Param deviceId query string false "Device ID"
// @Param sensorType query string false "Sensor type"
// @Param from query string false "Window start (ISO-8601)"
// @Param to query string false "Window end (ISO-8601)"
// @Success 200 {array} models.ReadingStats
// @Failure 400 {object} errors.APIError
// @Router /readings/stats [get]
func (h *ReadingHandlers) GetReadingStats(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filters, err := h.readingFilters(r)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	stats, err := h.hubservice.ReadingStats(r.Context(), filters)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// @Summary Get latest readings for a device
// @Description The most recent value per sensor type of one device
// @Tags devices
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {array} models.LatestReading
// @Failure 400 {object} errors.APIError
// @Router /devices/{deviceId}/latest [get]
func (h *ReadingHandlers) GetLatestReadings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["deviceId"]
	requestID := nuts.NID("req", 12)

	latest, err := h.hubservice.LatestReadings(r.Context(), deviceID)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, latest)
}

// @Summary List devices
// @Description Paginated listing of the device registry
// @Tags devices
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Device
// @Router /devices [get]
func (h *ReadingHandlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	devices, err := h.hubservice.ListDevices(r.Context(), offset, limit)
	if err != nil {
		respondWithAPIError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// readingFilters decodes the shared query shape of the raw-data endpoints.
func (h *ReadingHandlers) readingFilters(r *http.Request) (repository.ReadingFilters, error) {
	var query models.ReadingsQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		return repository.ReadingFilters{}, errors.NewValidationError("invalid query parameters", err)
	}

	tz := h.defaultTimezone
	loc, err := timeutil.ResolveZone(tz)
	if err != nil {
		return repository.ReadingFilters{}, err
	}

	filters := repository.ReadingFilters{
		DeviceID:   query.DeviceID,
		SensorType: models.SensorType(query.SensorType),
		Limit:      query.Limit,
	}

	var from, to time.Time
	if query.From != "" {
		if from, err = timeutil.ParseInstant(query.From, loc); err != nil {
			return repository.ReadingFilters{}, err
		}
	}
	if query.To != "" {
		if to, err = timeutil.ParseInstant(query.To, loc); err != nil {
			return repository.ReadingFilters{}, err
		}
	}
	filters.From, filters.To = from, to

	return filters, nil
}

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/agrosense/agrohub/api/middleware"
	"github.com/agrosense/agrohub/api/resources"
	"github.com/agrosense/agrohub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	logging   *middleware.LoggingMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, defaultTimezone string) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		logging:   middleware.NewLoggingMiddleware(),
		resources: resources.NewResources(svc, defaultTimezone),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.logging.Log)

	// Operational routes; handlers are set after construction, so go through
	// a closure rather than binding a possibly-nil func here
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		r.resources.HealthCheck(w, req)
	}).Methods(http.MethodGet)
	api.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.Metrics == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		r.resources.Metrics(w, req)
	}).Methods(http.MethodGet)

	// Readings
	readings := api.PathPrefix("/readings").Subrouter()
	readings.HandleFunc("", r.resources.Readings.IngestReadings).Methods(http.MethodPost)
	readings.HandleFunc("", r.resources.Readings.ListReadings).Methods(http.MethodGet)
	readings.HandleFunc("/stats", r.resources.Readings.GetReadingStats).Methods(http.MethodGet)

	// Devices
	devices := api.PathPrefix("/devices").Subrouter()
	devices.HandleFunc("", r.resources.Readings.ListDevices).Methods(http.MethodGet)
	devices.HandleFunc("/{deviceId}/latest", r.resources.Readings.GetLatestReadings).Methods(http.MethodGet)

	// Reports
	reports := api.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/hourly", r.resources.Reports.GetHourlyReport).Methods(http.MethodGet)
	reports.HandleFunc("/hourly/recalculate", r.resources.Reports.RecalculateHourly).Methods(http.MethodPost)
	reports.HandleFunc("/daily", r.resources.Reports.GetDailyReport).Methods(http.MethodGet)
	reports.HandleFunc("/monthly", r.resources.Reports.GetMonthlyReport).Methods(http.MethodGet)
	reports.HandleFunc("/weekly", r.resources.Reports.GetWeeklyAverages).Methods(http.MethodGet)
}

// SetHealthCheck sets the health check handler
func (r *Router) SetHealthCheck(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetHealthCheck(h)
}

// SetMetrics sets the metrics handler
func (r *Router) SetMetrics(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetMetrics(h)
}

// Handler returns the router wrapped with panic recovery and CORS handling.
func (r *Router) Handler() http.Handler {
	return handlers.RecoveryHandler()(
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(r.router))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

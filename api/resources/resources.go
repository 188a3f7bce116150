// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/agrosense/agrohub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Reports     *ReportHandlers
	Readings    *ReadingHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Metrics     func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance. defaultTimezone applies to
// date parameters of requests that omit an explicit timezone.
func NewResources(svc *hubservice.HubService, defaultTimezone string) *Resources {
	return &Resources{
		Reports:  &ReportHandlers{hubservice: svc, defaultTimezone: defaultTimezone},
		Readings: &ReadingHandlers{hubservice: svc, defaultTimezone: defaultTimezone},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetMetrics sets the metrics handler
func (r *Resources) SetMetrics(h func(w http.ResponseWriter, r *http.Request)) {
	r.Metrics = h
}

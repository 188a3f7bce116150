// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/reports"
	"github.com/agrosense/agrohub/internal/repository"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Devices  repository.DeviceRepository
	Readings repository.ReadingRepository
	Hourly   repository.HourlyAggregateRepository
	Reports  *reports.Service
}

// New creates a new HubService instance
func New(
	devices repository.DeviceRepository,
	readings repository.ReadingRepository,
	hourly repository.HourlyAggregateRepository,
	reportsService *reports.Service,
) *HubService {
	return &HubService{
		Devices:  devices,
		Readings: readings,
		Hourly:   hourly,
		Reports:  reportsService,
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Devices == nil {
		return ErrMissingRepository("devices")
	}
	if s.Readings == nil {
		return ErrMissingRepository("readings")
	}
	if s.Hourly == nil {
		return ErrMissingRepository("hourly")
	}
	if s.Reports == nil {
		return ErrMissingRepository("reports")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

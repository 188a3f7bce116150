// FilePath: internal/hubservice/hubservice.readings.go
package hubservice

import (
	"context"
	"time"

	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	"github.com/agrosense/agrohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// RecordReadings validates and stores a batch of raw sensor readings. Devices
// unknown to the registry are auto-registered; registry bookkeeping failures
// are logged but never fail the ingest.
func (s *HubService) RecordReadings(ctx context.Context, readings []*models.Reading) error {
	if len(readings) == 0 {
		return errors.NewValidationError("no readings provided", nil)
	}

	now := time.Now().UTC()
	lastSeen := map[string]time.Time{}
	for _, reading := range readings {
		if reading.DeviceID == "" {
			return errors.NewValidationError("reading is missing deviceId", nil)
		}
		if !reading.SensorType.IsValid() {
			return errors.NewValidationError(
				"unsupported sensor type: "+string(reading.SensorType), nil)
		}
		if reading.Timestamp.IsZero() {
			reading.Timestamp = now
		}
		if reading.Timestamp.After(lastSeen[reading.DeviceID]) {
			lastSeen[reading.DeviceID] = reading.Timestamp
		}
	}

	if err := s.Readings.InsertBatch(ctx, readings); err != nil {
		return err
	}

	for deviceID, seenAt := range lastSeen {
		if err := s.touchDevice(ctx, deviceID, seenAt); err != nil {
			nuts.L.Warnf("[HubService] Failed to update device %s registry: %v", deviceID, err)
		}
	}
	return nil
}

// touchDevice registers an unknown device and bumps its last-seen timestamp.
func (s *HubService) touchDevice(ctx context.Context, deviceID string, seenAt time.Time) error {
	_, err := s.Devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return err
		}
		if err := s.Devices.Create(ctx, &models.Device{DeviceID: deviceID}); err != nil {
			return err
		}
	}
	return s.Devices.UpdateLastSeen(ctx, deviceID, seenAt)
}

// LatestReadings returns the most recent value per sensor type for a device.
func (s *HubService) LatestReadings(ctx context.Context, deviceID string) ([]models.LatestReading, error) {
	if deviceID == "" {
		return nil, errors.NewValidationError("deviceId is required", nil)
	}
	return s.Readings.LatestBySensor(ctx, deviceID)
}

// RawReadings lists raw readings newest-first under the given filters.
func (s *HubService) RawReadings(ctx context.Context, filters repository.ReadingFilters) ([]models.Reading, error) {
	if filters.SensorType != "" && !filters.SensorType.IsValid() {
		return nil, errors.NewValidationError(
			"unsupported sensor type: "+string(filters.SensorType), nil)
	}
	return s.Readings.List(ctx, filters)
}

// ReadingStats summarizes raw readings per device and sensor type.
func (s *HubService) ReadingStats(ctx context.Context, filters repository.ReadingFilters) ([]models.ReadingStats, error) {
	if filters.SensorType != "" && !filters.SensorType.IsValid() {
		return nil, errors.NewValidationError(
			"unsupported sensor type: "+string(filters.SensorType), nil)
	}
	return s.Readings.Stats(ctx, filters)
}

// ListDevices pages through the device registry.
func (s *HubService) ListDevices(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Devices.List(ctx, offset, limit)
}

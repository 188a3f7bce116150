// FilePath: internal/models/models.aggregate.go
package models

import "time"

// HourlyAggregate holds the computed statistics for one device, sensor type
// and hour bucket. The triple (DeviceID, SensorType, Hour) is unique; Hour is
// always truncated to the top of an hour in the report timezone before storage.
type HourlyAggregate struct {
	DeviceID   string     `json:"deviceId" db:"device_id"`
	SensorType SensorType `json:"sensorType" db:"sensor_type"`
	Hour       time.Time  `json:"hour" db:"hour"`
	Avg        float64    `json:"avg" db:"avg"`
	Min        float64    `json:"min" db:"min"`
	Max        float64    `json:"max" db:"max"`
	Samples    int64      `json:"samples" db:"samples"`
	Units      string     `json:"units" db:"units"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

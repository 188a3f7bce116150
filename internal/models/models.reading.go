// FilePath: internal/models/models.reading.go
package models

import "time"

type SensorType string

const (
	Temperature    SensorType = "temperature"
	Humidity       SensorType = "humidity"
	SoilHumidity   SensorType = "soil_humidity"
	SolarRadiation SensorType = "solar_radiation"
)

// SensorTypes lists every supported sensor type in report ordering.
var SensorTypes = []SensorType{Temperature, Humidity, SoilHumidity, SolarRadiation}

// IsValid reports whether the sensor type is one of the supported four.
func (t SensorType) IsValid() bool {
	switch t {
	case Temperature, Humidity, SoilHumidity, SolarRadiation:
		return true
	}
	return false
}

// Reading represents a single raw sensor measurement
type Reading struct {
	ID         string     `json:"id" db:"id"`
	DeviceID   string     `json:"deviceId" db:"device_id"`
	SensorType SensorType `json:"sensorType" db:"sensor_type"`
	Value      float64    `json:"value" db:"value"`
	Unit       string     `json:"unit" db:"unit"`
	Timestamp  time.Time  `json:"timestamp" db:"timestamp"`
}

// LatestReading is the most recent value per device and sensor type
type LatestReading struct {
	DeviceID   string     `json:"deviceId" db:"device_id"`
	SensorType SensorType `json:"sensorType" db:"sensor_type"`
	Value      float64    `json:"value" db:"value"`
	Unit       string     `json:"unit" db:"unit"`
	Timestamp  time.Time  `json:"timestamp" db:"timestamp"`
}

// ReadingStats summarizes raw readings per device and sensor type
type ReadingStats struct {
	DeviceID       string     `json:"deviceId" db:"device_id"`
	SensorType     SensorType `json:"sensorType" db:"sensor_type"`
	Unit           string     `json:"unit" db:"unit"`
	Samples        int64      `json:"samples" db:"samples"`
	MinValue       float64    `json:"minValue" db:"min_value"`
	MaxValue       float64    `json:"maxValue" db:"max_value"`
	AverageValue   float64    `json:"averageValue" db:"average_value"`
	FirstTimestamp time.Time  `json:"firstTimestamp" db:"first_timestamp"`
	LastTimestamp  time.Time  `json:"lastTimestamp" db:"last_timestamp"`
	LatestValue    float64    `json:"latestValue" db:"latest_value"`
}

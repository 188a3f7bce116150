// FilePath: internal/models/models.device.go
package models

import "time"

// Device is a registered physical device carrying one or more sensors.
type Device struct {
	ID         string    `json:"id" db:"id"`
	DeviceID   string    `json:"deviceId" db:"device_id"`
	Name       string    `json:"name" db:"name"`
	Location   string    `json:"location" db:"location"`
	LastSeenAt time.Time `json:"lastSeenAt" db:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

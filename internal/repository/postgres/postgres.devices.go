// FilePath: internal/repository/postgres/postgres.devices.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrosense/agrohub/internal/database"
	"github.com/agrosense/agrohub/internal/errors"
	"github.com/agrosense/agrohub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type DeviceRepo struct {
	PostgresBaseRepo
}

func NewDeviceRepository(db database.DB) (*DeviceRepo, error) {
	repo := &DeviceRepo{PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *DeviceRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS devices (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			last_seen_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`

	if _, err := r.ExecContext(context.Background(), query); err != nil {
		return err
	}
	return nil
}

func (r *DeviceRepo) Create(ctx context.Context, device *models.Device) error {
	now := time.Now().UTC()
	if device.ID == "" {
		device.ID = nuts.NID("dev", 12)
	}
	if device.Name == "" {
		device.Name = device.DeviceID
	}
	device.CreatedAt = now
	device.UpdatedAt = now
	if device.LastSeenAt.IsZero() {
		device.LastSeenAt = now
	}

	query := `
		INSERT INTO devices (id, device_id, name, location, last_seen_at, created_at, updated_at)
		VALUES (:id, :device_id, :name, :location, :last_seen_at, :created_at, :updated_at)
		ON CONFLICT (device_id) DO NOTHING`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		return errors.NewDatabaseError("failed to create device", err)
	}
	return nil
}

func (r *DeviceRepo) GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	device := &models.Device{}
	query := `SELECT * FROM devices WHERE device_id = $1`

	err := r.db.GetDB().GetContext(ctx, device, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("device not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get device", err)
	}
	return device, nil
}

func (r *DeviceRepo) List(ctx context.Context, offset, limit int) ([]*models.Device, error) {
	devices := []*models.Device{}
	query := `SELECT * FROM devices ORDER BY device_id ASC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &devices, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list devices", err)
	}
	return devices, nil
}

func (r *DeviceRepo) UpdateLastSeen(ctx context.Context, deviceID string, lastSeen time.Time) error {
	query := `
		UPDATE devices SET
			last_seen_at = $1,
			updated_at = $1
		WHERE device_id = $2`

	if _, err := r.ExecContext(ctx, query, lastSeen, deviceID); err != nil {
		return err
	}
	return nil
}

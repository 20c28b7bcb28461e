package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

const imageColumns = `id, tenant_id, vehicle_id, storage_key, content_type, file_size, is_primary, status, created_on`

func (r *imageRepository) Create(ctx context.Context, img *domain.VehicleImage) error {
	query := `INSERT INTO vehicle_images (tenant_id, vehicle_id, storage_key, content_type, file_size, is_primary, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, img.TenantID, img.VehicleID, img.StorageKey, img.ContentType,
		img.FileSize, img.IsPrimary, img.Status, time.Now()).Scan(&img.ID)
}

func (r *imageRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.VehicleImage, error) {
	img := &domain.VehicleImage{}
	query := `SELECT ` + imageColumns + ` FROM vehicle_images WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&img.ID, &img.TenantID, &img.VehicleID,
		&img.StorageKey, &img.ContentType, &img.FileSize, &img.IsPrimary, &img.Status, &img.CreatedOn)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *imageRepository) Confirm(ctx context.Context, tenantID, id int32, fileSize int64) error {
	query := `UPDATE vehicle_images SET status = $1, file_size = $2 WHERE id = $3 AND tenant_id = $4`
	_, err := r.db.ExecContext(ctx, query, domain.ImageStatusConfirmed, fileSize, id, tenantID)
	return err
}

func (r *imageRepository) Delete(ctx context.Context, tenantID, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_images WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	return err
}

func (r *imageRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.VehicleImage, error) {
	query := `SELECT ` + imageColumns + ` FROM vehicle_images WHERE vehicle_id = $1 AND status = $2 ORDER BY is_primary DESC, created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, domain.ImageStatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.VehicleImage
	for rows.Next() {
		var img domain.VehicleImage
		if err := rows.Scan(&img.ID, &img.TenantID, &img.VehicleID, &img.StorageKey, &img.ContentType,
			&img.FileSize, &img.IsPrimary, &img.Status, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *imageRepository) DeleteExpiredPending(ctx context.Context, olderThan time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`DELETE FROM vehicle_images WHERE status = $1 AND created_on < $2 RETURNING storage_key`,
		domain.ImageStatusPending, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/storage"
)

const presignedURLTTL = 15 * time.Minute

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrUploadNotFound   = errors.New("uploaded file not found in storage")
	ErrBadContentType   = errors.New("unsupported content type")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type imageService struct {
	imageRepo repository.ImageRepository
	store     storage.Storage
}

func NewImageService(imageRepo repository.ImageRepository, store storage.Storage) ImageService {
	return &imageService{imageRepo: imageRepo, store: store}
}

func (s *imageService) GetUploadURL(ctx context.Context, tenantID int32, vehicleID *int32, filename, contentType string) (*domain.VehicleImage, string, error) {
	if !allowedContentTypes[contentType] {
		return nil, "", ErrBadContentType
	}

	key := fmt.Sprintf("tenants/%d/%s%s", tenantID, uuid.NewString(), filepath.Ext(filename))
	img := &domain.VehicleImage{
		TenantID:    tenantID,
		VehicleID:   vehicleID,
		StorageKey:  key,
		ContentType: contentType,
		Status:      domain.ImageStatusPending,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		return nil, "", err
	}

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, presignedURLTTL)
	if err != nil {
		return nil, "", err
	}
	return img, uploadURL, nil
}

func (s *imageService) ConfirmUpload(ctx context.Context, tenantID, imageID int32, fileSize int64) (*domain.VehicleImage, error) {
	img, err := s.imageRepo.GetByID(ctx, tenantID, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}

	exists, size, err := s.store.FileExists(ctx, img.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUploadNotFound
	}

	if err := s.imageRepo.Confirm(ctx, tenantID, imageID, size); err != nil {
		return nil, err
	}
	img.Status = domain.ImageStatusConfirmed
	img.FileSize = size
	return img, nil
}

func (s *imageService) GetDownloadURL(ctx context.Context, tenantID, imageID int32) (string, error) {
	img, err := s.imageRepo.GetByID(ctx, tenantID, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrImageNotFound
		}
		return "", err
	}
	return s.store.GeneratePresignedDownloadURL(ctx, img.StorageKey, presignedURLTTL)
}

func (s *imageService) DeleteImage(ctx context.Context, tenantID, imageID int32) error {
	img, err := s.imageRepo.GetByID(ctx, tenantID, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.store.DeleteFile(ctx, img.StorageKey); err != nil {
		return err
	}
	return s.imageRepo.Delete(ctx, tenantID, imageID)
}

func (s *imageService) ListVehicleImages(ctx context.Context, tenantID, vehicleID int32) ([]domain.VehicleImage, error) {
	images, err := s.imageRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	// ListByVehicle is keyed by vehicle only; filter to the caller's tenant.
	filtered := images[:0]
	for _, img := range images {
		if img.TenantID == tenantID {
			filtered = append(filtered, img)
		}
	}
	return filtered, nil
}

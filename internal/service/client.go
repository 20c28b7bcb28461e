package service

import (
	"context"
	"database/sql"
	"errors"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) AddClient(ctx context.Context, c *domain.Client) error {
	return s.clientRepo.Create(ctx, c)
}

func (s *clientService) GetClient(ctx context.Context, tenantID, id int32) (*domain.Client, error) {
	c, err := s.clientRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) UpdateClient(ctx context.Context, c *domain.Client) error {
	if _, err := s.GetClient(ctx, c.TenantID, c.ID); err != nil {
		return err
	}
	return s.clientRepo.Update(ctx, c)
}

func (s *clientService) DeleteClient(ctx context.Context, tenantID, id int32) error {
	if _, err := s.GetClient(ctx, tenantID, id); err != nil {
		return err
	}
	// The contract foreign key restricts the delete when rentals exist.
	if err := s.clientRepo.Delete(ctx, tenantID, id); err != nil {
		return ErrClientHasContracts
	}
	return nil
}

func (s *clientService) ListClients(ctx context.Context, tenantID int32, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.clientRepo.List(ctx, tenantID, search, page, pageSize)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/whatsapp"
)

// Messenger is the outbound WhatsApp transport. Satisfied by
// whatsapp.Client; tests substitute a fake.
type Messenger interface {
	SendText(ctx context.Context, to, body string) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
	clientRepo   repository.ClientRepository
	messenger    Messenger
}

func NewTemplateService(
	templateRepo repository.TemplateRepository,
	clientRepo repository.ClientRepository,
	messenger Messenger,
) TemplateService {
	return &templateService{templateRepo: templateRepo, clientRepo: clientRepo, messenger: messenger}
}

func (s *templateService) AddTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error {
	return s.templateRepo.Create(ctx, t)
}

func (s *templateService) GetTemplate(ctx context.Context, tenantID, id int32) (*domain.WhatsAppTemplate, error) {
	t, err := s.templateRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, t *domain.WhatsAppTemplate) error {
	if _, err := s.GetTemplate(ctx, t.TenantID, t.ID); err != nil {
		return err
	}
	return s.templateRepo.Update(ctx, t)
}

func (s *templateService) DeleteTemplate(ctx context.Context, tenantID, id int32) error {
	if _, err := s.GetTemplate(ctx, tenantID, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, tenantID, id)
}

func (s *templateService) ListTemplates(ctx context.Context, tenantID int32) ([]domain.WhatsAppTemplate, error) {
	return s.templateRepo.List(ctx, tenantID)
}

func (s *templateService) Preview(ctx context.Context, tenantID, id int32, values map[string]string) (string, error) {
	t, err := s.GetTemplate(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return whatsapp.Render(t.Body, values), nil
}

func (s *templateService) SendToClient(ctx context.Context, tenantID, clientID int32, templateName string, values map[string]string) error {
	client, err := s.clientRepo.GetByID(ctx, tenantID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClientNotFound
		}
		return err
	}
	if client.Phone == "" {
		return fmt.Errorf("client %d has no phone number", clientID)
	}

	t, err := s.templateRepo.GetByName(ctx, tenantID, templateName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTemplateNotFound
		}
		return err
	}

	if values == nil {
		values = map[string]string{}
	}
	if _, ok := values["client_name"]; !ok {
		values["client_name"] = client.Name
	}
	if err := whatsapp.Validate(t.Body, values); err != nil {
		return err
	}

	return s.messenger.SendText(ctx, client.Phone, whatsapp.Render(t.Body, values))
}

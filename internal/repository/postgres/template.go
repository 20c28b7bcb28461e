package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) repository.TemplateRepository {
	return &templateRepository{db: db}
}

const templateColumns = `id, tenant_id, name, body, created_on, updated_on`

func (r *templateRepository) Create(ctx context.Context, t *domain.WhatsAppTemplate) error {
	query := `INSERT INTO whatsapp_templates (tenant_id, name, body, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, t.TenantID, t.Name, t.Body, now, now).Scan(&t.ID)
}

func (r *templateRepository) GetByID(ctx context.Context, tenantID, id int32) (*domain.WhatsAppTemplate, error) {
	t := &domain.WhatsAppTemplate{}
	query := `SELECT ` + templateColumns + ` FROM whatsapp_templates WHERE id = $1 AND tenant_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(&t.ID, &t.TenantID, &t.Name, &t.Body, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepository) GetByName(ctx context.Context, tenantID int32, name string) (*domain.WhatsAppTemplate, error) {
	t := &domain.WhatsAppTemplate{}
	query := `SELECT ` + templateColumns + ` FROM whatsapp_templates WHERE tenant_id = $1 AND name = $2`
	err := r.db.QueryRowContext(ctx, query, tenantID, name).Scan(&t.ID, &t.TenantID, &t.Name, &t.Body, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *templateRepository) Update(ctx context.Context, t *domain.WhatsAppTemplate) error {
	query := `UPDATE whatsapp_templates SET name=$1, body=$2, updated_on=$3 WHERE id=$4 AND tenant_id=$5`
	_, err := r.db.ExecContext(ctx, query, t.Name, t.Body, time.Now(), t.ID, t.TenantID)
	return err
}

func (r *templateRepository) Delete(ctx context.Context, tenantID, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM whatsapp_templates WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	return err
}

func (r *templateRepository) List(ctx context.Context, tenantID int32) ([]domain.WhatsAppTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM whatsapp_templates WHERE tenant_id = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.WhatsAppTemplate
	for rows.Next() {
		var t domain.WhatsAppTemplate
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.Body, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/google/uuid"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) repository.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `id, organization_id, name, description, state, active, COALESCE(rules, ''), COALESCE(whatsapp_link, ''), created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := row.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Description, &c.State, &c.Active,
		&c.Rules, &c.WhatsappLink, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	query := `INSERT INTO campaigns (id, organization_id, name, description, state, active, rules, whatsapp_link, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.OrganizationID, c.Name, c.Description,
		c.State, c.Active, c.Rules, c.WhatsappLink, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return domain.NewWriteError("create campaign", err)
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError("get campaign", err)
	}
	return c, nil
}

func (r *campaignRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE organization_id = $1 ORDER BY state, name`
	return r.list(ctx, query, orgID)
}

func (r *campaignRepository) ListByState(ctx context.Context, orgID, state string) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE organization_id = $1 AND state = $2 ORDER BY name`
	return r.list(ctx, query, orgID, state)
}

func (r *campaignRepository) list(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewFetchError("list campaigns", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, domain.NewFetchError("list campaigns", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *campaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE campaigns SET name=$1, description=$2, state=$3, active=$4, rules=$5, whatsapp_link=$6, updated_at=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.State, c.Active, c.Rules, c.WhatsappLink, c.UpdatedAt, c.ID)
	if err != nil {
		return domain.NewWriteError("update campaign", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewWriteError("update campaign", domain.ErrNotFound)
	}
	return nil
}

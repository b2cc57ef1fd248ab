package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, name, owner_uid, owner_email, plan_id, status, assigned_states, visible, plan_expires_at, created_at, updated_at`

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	o := &domain.Organization{}
	var planExpiresAt sql.NullTime
	err := row.Scan(&o.ID, &o.Name, &o.OwnerUID, &o.OwnerEmail, &o.PlanID, &o.Status,
		pq.Array(&o.AssignedStates), &o.Visible, &planExpiresAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if planExpiresAt.Valid {
		t := planExpiresAt.Time
		o.PlanExpiresAt = &t
	}
	return o, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now
	query := `INSERT INTO organizations (id, name, owner_uid, owner_email, plan_id, status, assigned_states, visible, plan_expires_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.db.ExecContext(ctx, query, org.ID, org.Name, org.OwnerUID, org.OwnerEmail,
		org.PlanID, org.Status, pq.Array(org.AssignedStates), org.Visible, org.PlanExpiresAt,
		org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return domain.NewWriteError("create organization", err)
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	o, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError("get organization", err)
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context, includeHidden bool) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations`
	if !includeHidden {
		query += ` WHERE status != 'hidden' AND visible`
	}
	query += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewFetchError("list organizations", err)
	}
	defer rows.Close()

	var out []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, domain.NewFetchError("list organizations", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *organizationRepository) ListExpiredPlans(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations
		WHERE status IN ('active', 'trial') AND plan_expires_at IS NOT NULL AND plan_expires_at < NOW()`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewFetchError("list expired plans", err)
	}
	defer rows.Close()

	var out []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, domain.NewFetchError("list expired plans", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	org.UpdatedAt = time.Now().UTC()
	query := `UPDATE organizations SET name=$1, owner_uid=$2, owner_email=$3, plan_id=$4, status=$5,
		assigned_states=$6, visible=$7, plan_expires_at=$8, updated_at=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, org.Name, org.OwnerUID, org.OwnerEmail, org.PlanID,
		org.Status, pq.Array(org.AssignedStates), org.Visible, org.PlanExpiresAt, org.UpdatedAt, org.ID)
	if err != nil {
		return domain.NewWriteError("update organization", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewWriteError("update organization", domain.ErrNotFound)
	}
	return nil
}

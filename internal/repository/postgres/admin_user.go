package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/lib/pq"
)

type adminUserRepository struct {
	db *sql.DB
}

func NewAdminUserRepository(db *sql.DB) repository.AdminUserRepository {
	return &adminUserRepository{db: db}
}

const adminUserColumns = `uid, email, name, organization_id, role, assigned_states, assigned_campaigns, created_at, updated_at`

func scanAdminUser(row interface{ Scan(...any) error }) (*domain.AdminUser, error) {
	a := &domain.AdminUser{}
	var campaignsJSON []byte
	err := row.Scan(&a.UID, &a.Email, &a.Name, &a.OrganizationID, &a.Role,
		pq.Array(&a.AssignedStates), &campaignsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(campaignsJSON) > 0 {
		if err := json.Unmarshal(campaignsJSON, &a.AssignedCampaigns); err != nil {
			return nil, fmt.Errorf("decode assigned campaigns: %w", err)
		}
	}
	return a, nil
}

func marshalAssignments(a *domain.AdminUser) ([]byte, error) {
	if len(a.AssignedCampaigns) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(a.AssignedCampaigns)
}

func (r *adminUserRepository) Create(ctx context.Context, a *domain.AdminUser) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Email = domain.NormalizeEmail(a.Email)
	campaignsJSON, err := marshalAssignments(a)
	if err != nil {
		return domain.NewWriteError("create admin user", err)
	}
	query := `INSERT INTO admin_users (uid, email, name, organization_id, role, assigned_states, assigned_campaigns, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := r.db.ExecContext(ctx, query, a.UID, a.Email, a.Name, a.OrganizationID, a.Role,
		pq.Array(a.AssignedStates), campaignsJSON, a.CreatedAt, a.UpdatedAt); err != nil {
		return domain.NewWriteError("create admin user", err)
	}
	return nil
}

func (r *adminUserRepository) GetByUID(ctx context.Context, uid string) (*domain.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE uid = $1`
	a, err := scanAdminUser(r.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError("get admin user", err)
	}
	return a, nil
}

func (r *adminUserRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE organization_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, domain.NewFetchError("list admin users", err)
	}
	defer rows.Close()

	var out []domain.AdminUser
	for rows.Next() {
		a, err := scanAdminUser(rows)
		if err != nil {
			return nil, domain.NewFetchError("list admin users", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *adminUserRepository) Update(ctx context.Context, a *domain.AdminUser) error {
	a.UpdatedAt = time.Now().UTC()
	campaignsJSON, err := marshalAssignments(a)
	if err != nil {
		return domain.NewWriteError("update admin user", err)
	}
	query := `UPDATE admin_users SET email=$1, name=$2, role=$3, assigned_states=$4, assigned_campaigns=$5, updated_at=$6 WHERE uid=$7`
	res, err := r.db.ExecContext(ctx, query, a.Email, a.Name, a.Role,
		pq.Array(a.AssignedStates), campaignsJSON, a.UpdatedAt, a.UID)
	if err != nil {
		return domain.NewWriteError("update admin user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewWriteError("update admin user", domain.ErrNotFound)
	}
	return nil
}

func (r *adminUserRepository) Delete(ctx context.Context, uid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE uid = $1`, uid)
	if err != nil {
		return domain.NewWriteError("delete admin user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

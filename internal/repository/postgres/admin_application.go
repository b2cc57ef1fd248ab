package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type adminApplicationRepository struct {
	db *sql.DB
}

func NewAdminApplicationRepository(db *sql.DB) repository.AdminApplicationRepository {
	return &adminApplicationRepository{db: db}
}

const applicationColumns = `id, uid, email, name, organization_id, requested_role, COALESCE(message, ''), created_at`

func scanApplication(row interface{ Scan(...any) error }) (*domain.AdminApplication, error) {
	app := &domain.AdminApplication{}
	err := row.Scan(&app.ID, &app.UID, &app.Email, &app.Name, &app.OrganizationID,
		&app.RequestedRole, &app.Message, &app.CreatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *adminApplicationRepository) Create(ctx context.Context, app *domain.AdminApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now().UTC()
	app.Email = domain.NormalizeEmail(app.Email)
	query := `INSERT INTO admin_applications (id, uid, email, name, organization_id, requested_role, message, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.db.ExecContext(ctx, query, app.ID, app.UID, app.Email, app.Name,
		app.OrganizationID, app.RequestedRole, app.Message, app.CreatedAt); err != nil {
		return domain.NewWriteError("create admin application", err)
	}
	return nil
}

func (r *adminApplicationRepository) GetByID(ctx context.Context, id string) (*domain.AdminApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM admin_applications WHERE id = $1`
	app, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError("get admin application", err)
	}
	return app, nil
}

func (r *adminApplicationRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.AdminApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM admin_applications WHERE organization_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, domain.NewFetchError("list admin applications", err)
	}
	defer rows.Close()

	var out []domain.AdminApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, domain.NewFetchError("list admin applications", err)
		}
		out = append(out, *app)
	}
	return out, rows.Err()
}

// Approve runs the three-part approval as one transaction: the admin record
// is inserted, the application row deleted, and the organization stamped.
// A failure at any step rolls the whole thing back.
func (r *adminApplicationRepository) Approve(ctx context.Context, app *domain.AdminApplication, admin *domain.AdminUser) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewWriteError("approve admin application", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	admin.Email = domain.NormalizeEmail(admin.Email)
	campaignsJSON, err := marshalAssignments(admin)
	if err != nil {
		return domain.NewWriteError("approve admin application", err)
	}
	insertAdmin := `INSERT INTO admin_users (uid, email, name, organization_id, role, assigned_states, assigned_campaigns, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	if _, err := tx.ExecContext(ctx, insertAdmin, admin.UID, admin.Email, admin.Name,
		admin.OrganizationID, admin.Role, pq.Array(admin.AssignedStates), campaignsJSON,
		admin.CreatedAt, admin.UpdatedAt); err != nil {
		return domain.NewWriteError("approve admin application", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM admin_applications WHERE id = $1`, app.ID)
	if err != nil {
		return domain.NewWriteError("approve admin application", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewWriteError("approve admin application",
			fmt.Errorf("application %s: %w", app.ID, domain.ErrNotFound))
	}

	if _, err := tx.ExecContext(ctx, `UPDATE organizations SET updated_at = $1 WHERE id = $2`,
		now, admin.OrganizationID); err != nil {
		return domain.NewWriteError("approve admin application", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewWriteError("approve admin application", err)
	}
	return nil
}

func (r *adminApplicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_applications WHERE id = $1`, id)
	if err != nil {
		return domain.NewWriteError("delete admin application", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

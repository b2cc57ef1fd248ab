package postgres

import (
	"context"
	"database/sql"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/google/uuid"
)

type rejectionReasonRepository struct {
	db *sql.DB
}

func NewRejectionReasonRepository(db *sql.DB) repository.RejectionReasonRepository {
	return &rejectionReasonRepository{db: db}
}

func (r *rejectionReasonRepository) Create(ctx context.Context, reason *domain.RejectionReason) error {
	if reason.ID == "" {
		reason.ID = uuid.NewString()
	}
	reason.CreatedAt = time.Now().UTC()
	query := `INSERT INTO rejection_reasons (id, organization_id, text, created_at) VALUES ($1,$2,$3,$4)`
	if _, err := r.db.ExecContext(ctx, query, reason.ID, reason.OrganizationID, reason.Text, reason.CreatedAt); err != nil {
		return domain.NewWriteError("create rejection reason", err)
	}
	return nil
}

func (r *rejectionReasonRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.RejectionReason, error) {
	query := `SELECT id, organization_id, text, created_at FROM rejection_reasons WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, domain.NewFetchError("list rejection reasons", err)
	}
	defer rows.Close()

	var out []domain.RejectionReason
	for rows.Next() {
		var reason domain.RejectionReason
		if err := rows.Scan(&reason.ID, &reason.OrganizationID, &reason.Text, &reason.CreatedAt); err != nil {
			return nil, domain.NewFetchError("list rejection reasons", err)
		}
		out = append(out, reason)
	}
	return out, rows.Err()
}

func (r *rejectionReasonRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rejection_reasons WHERE id = $1`, id)
	if err != nil {
		return domain.NewWriteError("delete rejection reason", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type promoterRepository struct {
	db *sql.DB
}

func NewPromoterRepository(db *sql.DB) repository.PromoterRepository {
	return &promoterRepository{db: db}
}

const promoterColumns = `id, organization_id, COALESCE(campaign_name, ''), associated_campaigns, all_campaigns,
	status, name, email, whatsapp, instagram, COALESCE(tiktok, ''), date_of_birth, state, photo_urls,
	COALESCE(face_photo_url, ''), COALESCE(rejection_reason, ''), has_joined_group, COALESCE(observation, ''),
	COALESCE(action_taken_by_uid, ''), COALESCE(action_taken_by_email, ''), status_changed_at, created_at, updated_at`

func scanPromoter(row interface{ Scan(...any) error }) (*domain.Promoter, error) {
	p := &domain.Promoter{}
	var statusChangedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.CampaignName,
		pq.Array(&p.AssociatedCampaigns), pq.Array(&p.AllCampaigns),
		&p.Status, &p.Name, &p.Email, &p.Whatsapp, &p.Instagram, &p.Tiktok,
		&p.DateOfBirth, &p.State, pq.Array(&p.PhotoURLs),
		&p.FacePhotoURL, &p.RejectionReason, &p.HasJoinedGroup, &p.Observation,
		&p.ActionTakenByUID, &p.ActionTakenByEmail, &statusChangedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if statusChangedAt.Valid {
		t := statusChangedAt.Time
		p.StatusChangedAt = &t
	}
	return p, nil
}

func (r *promoterRepository) Create(ctx context.Context, p *domain.Promoter) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.Email = domain.NormalizeEmail(p.Email)
	p.AllCampaigns = domain.UnionCampaigns(p.CampaignName, p.AssociatedCampaigns)

	query := `INSERT INTO promoters (id, organization_id, campaign_name, associated_campaigns, all_campaigns,
		status, name, email, whatsapp, instagram, tiktok, date_of_birth, state, photo_urls, face_photo_url,
		rejection_reason, has_joined_group, observation, action_taken_by_uid, action_taken_by_email,
		status_changed_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.OrganizationID, p.CampaignName,
		pq.Array(p.AssociatedCampaigns), pq.Array(p.AllCampaigns),
		p.Status, p.Name, p.Email, p.Whatsapp, p.Instagram, p.Tiktok,
		p.DateOfBirth, p.State, pq.Array(p.PhotoURLs), p.FacePhotoURL,
		p.RejectionReason, p.HasJoinedGroup, p.Observation,
		p.ActionTakenByUID, p.ActionTakenByEmail, p.StatusChangedAt,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.NewWriteError("create promoter", err)
	}
	return nil
}

func (r *promoterRepository) GetByID(ctx context.Context, id string) (*domain.Promoter, error) {
	query := `SELECT ` + promoterColumns + ` FROM promoters WHERE id = $1`
	p, err := scanPromoter(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.NewFetchError("get promoter", err)
	}
	return p, nil
}

// filterClauses builds the WHERE fragment shared by ListPage and Stats.
// A "rejected" status filter covers both rejected variants; a campaign
// filter matches the denormalized all_campaigns union. Scope restrictions
// (VisibleStates, CampaignSubsets) become clauses of the same query so page
// counts and stats reflect exactly what the caller may see.
func filterClauses(filters domain.PromoterFilters, args []any) ([]string, []any) {
	var clauses []string
	if filters.OrganizationID != "" {
		args = append(args, filters.OrganizationID)
		clauses = append(clauses, fmt.Sprintf("organization_id = $%d", len(args)))
	}
	if filters.Status != "" {
		if filters.Status == domain.PromoterStatusRejected {
			args = append(args, string(domain.PromoterStatusRejected), string(domain.PromoterStatusRejectedEditable))
			clauses = append(clauses, fmt.Sprintf("status IN ($%d, $%d)", len(args)-1, len(args)))
		} else {
			args = append(args, string(filters.Status))
			clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
		}
	}
	if filters.State != "" {
		args = append(args, filters.State)
		clauses = append(clauses, fmt.Sprintf("state = $%d", len(args)))
	}
	if filters.Campaign != "" {
		args = append(args, filters.Campaign)
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(all_campaigns)", len(args)))
	}
	if len(filters.VisibleStates) > 0 {
		args = append(args, pq.Array(filters.VisibleStates))
		clauses = append(clauses, fmt.Sprintf("state = ANY($%d)", len(args)))
	}
	if len(filters.CampaignSubsets) > 0 {
		states := make([]string, 0, len(filters.CampaignSubsets))
		for state := range filters.CampaignSubsets {
			states = append(states, state)
		}
		sort.Strings(states)
		for _, state := range states {
			args = append(args, state, pq.Array(filters.CampaignSubsets[state]))
			clauses = append(clauses, fmt.Sprintf("(state <> $%d OR campaign_name = ANY($%d))", len(args)-1, len(args)))
		}
	}
	return clauses, args
}

func (r *promoterRepository) ListPage(ctx context.Context, filters domain.PromoterFilters, pageSize int, cursor string) (*repository.PromoterPage, error) {
	if pageSize <= 0 {
		return nil, domain.NewFetchError("list promoters", fmt.Errorf("page size must be positive, got %d", pageSize))
	}
	var args []any
	clauses, args := filterClauses(filters, args)
	if cursor != "" {
		createdAt, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, domain.NewFetchError("list promoters", err)
		}
		args = append(args, createdAt, id)
		clauses = append(clauses, fmt.Sprintf("(created_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + promoterColumns + ` FROM promoters`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, pageSize)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	logger.DatabaseCall("ListPage", query, "filters", filters, "cursor_set", cursor != "")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewFetchError("list promoters", err)
	}
	defer rows.Close()

	page := &repository.PromoterPage{}
	for rows.Next() {
		p, err := scanPromoter(rows)
		if err != nil {
			return nil, domain.NewFetchError("list promoters", err)
		}
		page.Items = append(page.Items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewFetchError("list promoters", err)
	}
	if len(page.Items) == pageSize {
		last := page.Items[len(page.Items)-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
	}
	return page, nil
}

func (r *promoterRepository) Stats(ctx context.Context, filters domain.PromoterFilters) (*domain.PromoterStats, error) {
	// Status is intentionally excluded: stats always break down the whole
	// filtered population by status.
	countFilters := filters
	countFilters.Status = ""
	var args []any
	clauses, args := filterClauses(countFilters, args)

	query := `SELECT COUNT(*),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'approved'),
		COUNT(*) FILTER (WHERE status IN ('rejected', 'rejected_editable')),
		COUNT(*) FILTER (WHERE status = 'removed')
		FROM promoters`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	stats := &domain.PromoterStats{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected, &stats.Removed,
	)
	if err != nil {
		return nil, domain.NewFetchError("promoter stats", err)
	}
	return stats, nil
}

func (r *promoterRepository) Update(ctx context.Context, p *domain.Promoter) error {
	query := `UPDATE promoters SET campaign_name=$1, associated_campaigns=$2, all_campaigns=$3, status=$4,
		name=$5, email=$6, whatsapp=$7, instagram=$8, tiktok=$9, date_of_birth=$10, state=$11,
		photo_urls=$12, face_photo_url=$13, rejection_reason=$14, has_joined_group=$15, observation=$16,
		action_taken_by_uid=$17, action_taken_by_email=$18, status_changed_at=$19, updated_at=$20
		WHERE id=$21`
	res, err := r.db.ExecContext(ctx, query,
		p.CampaignName, pq.Array(p.AssociatedCampaigns), pq.Array(p.AllCampaigns), p.Status,
		p.Name, p.Email, p.Whatsapp, p.Instagram, p.Tiktok, p.DateOfBirth, p.State,
		pq.Array(p.PhotoURLs), p.FacePhotoURL, p.RejectionReason, p.HasJoinedGroup, p.Observation,
		p.ActionTakenByUID, p.ActionTakenByEmail, p.StatusChangedAt, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return domain.NewWriteError("update promoter", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewWriteError("update promoter", domain.ErrNotFound)
	}
	return nil
}

func (r *promoterRepository) FindByEmail(ctx context.Context, normalizedEmail, organizationID string) ([]domain.Promoter, error) {
	query := `SELECT ` + promoterColumns + ` FROM promoters WHERE email = $1`
	args := []any{normalizedEmail}
	if organizationID != "" {
		args = append(args, organizationID)
		query += " AND organization_id = $2"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewFetchError("find promoters by email", err)
	}
	defer rows.Close()

	var out []domain.Promoter
	for rows.Next() {
		p, err := scanPromoter(rows)
		if err != nil {
			return nil, domain.NewFetchError("find promoters by email", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *promoterRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promoters WHERE id = $1`, id)
	if err != nil {
		return domain.NewWriteError("delete promoter", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

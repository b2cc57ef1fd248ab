package repository

import (
	"context"

	"promodesk-backend/internal/domain"
)

// PromoterPage is one page of a cursor-paginated listing. NextCursor is an
// opaque token for the start of the following page; empty means the backend
// issued no continuation.
type PromoterPage struct {
	Items      []domain.Promoter
	NextCursor string
}

type PromoterRepository interface {
	Create(ctx context.Context, p *domain.Promoter) error
	GetByID(ctx context.Context, id string) (*domain.Promoter, error)
	// ListPage returns promoters matching the filters, newest-first by
	// creation time with id as tiebreak, starting after the opaque cursor
	// (empty cursor means the first page).
	ListPage(ctx context.Context, filters domain.PromoterFilters, pageSize int, cursor string) (*PromoterPage, error)
	// Stats is an aggregate count query over the same filter population,
	// independent of pagination.
	Stats(ctx context.Context, filters domain.PromoterFilters) (*domain.PromoterStats, error)
	Update(ctx context.Context, p *domain.Promoter) error
	// FindByEmail matches a normalized email, optionally restricted to one
	// organization; an empty organizationID searches across all tenants.
	FindByEmail(ctx context.Context, normalizedEmail, organizationID string) ([]domain.Promoter, error)
	Delete(ctx context.Context, id string) error
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context, includeHidden bool) ([]domain.Organization, error)
	ListExpiredPlans(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

type CampaignRepository interface {
	Create(ctx context.Context, c *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.Campaign, error)
	ListByState(ctx context.Context, orgID, state string) ([]domain.Campaign, error)
	Update(ctx context.Context, c *domain.Campaign) error
}

type AdminUserRepository interface {
	Create(ctx context.Context, a *domain.AdminUser) error
	GetByUID(ctx context.Context, uid string) (*domain.AdminUser, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.AdminUser, error)
	Update(ctx context.Context, a *domain.AdminUser) error
	Delete(ctx context.Context, uid string) error
}

type RejectionReasonRepository interface {
	Create(ctx context.Context, r *domain.RejectionReason) error
	ListByOrg(ctx context.Context, orgID string) ([]domain.RejectionReason, error)
	Delete(ctx context.Context, id string) error
}

type AdminApplicationRepository interface {
	Create(ctx context.Context, app *domain.AdminApplication) error
	GetByID(ctx context.Context, id string) (*domain.AdminApplication, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.AdminApplication, error)
	// Approve creates the admin record and removes the application in one
	// transaction; either both effects are visible or neither.
	Approve(ctx context.Context, app *domain.AdminApplication, admin *domain.AdminUser) error
	Delete(ctx context.Context, id string) error
}

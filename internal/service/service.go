package service

import (
	"context"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"
)

// PromoterService is the stateless data-access surface the console list
// controller and the HTTP handlers drive. Every operation takes the caller's
// AccessScope and enforces tenant and state/campaign visibility before
// touching the store.
type PromoterService interface {
	GetPromoter(ctx context.Context, scope domain.AccessScope, id string) (*domain.Promoter, error)
	ListPage(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters, pageSize int, cursor string) (*repository.PromoterPage, error)
	Stats(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters) (*domain.PromoterStats, error)
	// Approve moves the promoter to approved, stamping the audit fields.
	Approve(ctx context.Context, scope domain.AccessScope, id string) error
	// Reject moves the promoter to rejected, or rejected_editable when the
	// applicant is allowed to fix their profile, and records the reason.
	Reject(ctx context.Context, scope domain.AccessScope, id, reason string, allowFurtherEdits bool) error
	// ApplyEdit performs a general field update under the domain invariants.
	ApplyEdit(ctx context.Context, scope domain.AccessScope, id string, update domain.PromoterUpdate) (*domain.Promoter, error)
	// LookupByEmail fetches all records matching a normalized email; the
	// search crosses tenants only for superadmins.
	LookupByEmail(ctx context.Context, scope domain.AccessScope, email string) ([]domain.Promoter, error)
	// FilterOptions returns the states and campaigns the scope may filter by.
	FilterOptions(ctx context.Context, scope domain.AccessScope) (states []string, campaignsByState map[string][]string, err error)
}

type OrganizationService interface {
	ListOrganizations(ctx context.Context, scope domain.AccessScope) ([]domain.Organization, error)
	GetOrganization(ctx context.Context, scope domain.AccessScope, id string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, scope domain.AccessScope, org *domain.Organization) error
	ListCampaigns(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.Campaign, error)
	// ExpirePlans flips active/trial organizations past their plan expiry to
	// expired and returns how many were changed. Used by the scheduler.
	ExpirePlans(ctx context.Context) (int, error)
}

type AdminService interface {
	GetAdmin(ctx context.Context, uid string) (*domain.AdminUser, error)
	ListAdmins(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.AdminUser, error)
	// UpdateAssignments replaces an admin's state list and per-state campaign
	// subsets, applying the all-vs-subset collapse rule against the full
	// campaign set of each state.
	UpdateAssignments(ctx context.Context, scope domain.AccessScope, uid string, states []string, campaigns map[string][]string) (*domain.AdminUser, error)
	ListApplications(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.AdminApplication, error)
	// ApproveApplication atomically creates the admin record and deletes the
	// application, then notifies the applicant.
	ApproveApplication(ctx context.Context, scope domain.AccessScope, applicationID string, role domain.AdminRole, states []string) (*domain.AdminUser, error)
	RejectApplication(ctx context.Context, scope domain.AccessScope, applicationID string) error
}

type RejectionReasonService interface {
	// ListOptions merges the organization's canned reasons with the built-in
	// fallback set, tenant entries first.
	ListOptions(ctx context.Context, orgID string) ([]domain.RejectionReason, error)
	CreateReason(ctx context.Context, scope domain.AccessScope, orgID, text string) (*domain.RejectionReason, error)
	DeleteReason(ctx context.Context, scope domain.AccessScope, id string) error
}

// EmailService sends promoter-facing notifications. Delivery failures are
// reported to the caller but never block the state change they follow.
type EmailService interface {
	SendStatusNotification(ctx context.Context, toEmail, toName, campaign, status, reason string) error
	SendAdminWelcome(ctx context.Context, toEmail, toName, orgName string) error
}

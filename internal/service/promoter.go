package service

import (
	"context"
	"fmt"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository"
)

type promoterService struct {
	promoterRepo repository.PromoterRepository
	campaignRepo repository.CampaignRepository
	orgRepo      repository.OrganizationRepository
	emailSvc     EmailService
}

func NewPromoterService(
	promoterRepo repository.PromoterRepository,
	campaignRepo repository.CampaignRepository,
	orgRepo repository.OrganizationRepository,
	emailSvc EmailService,
) PromoterService {
	return &promoterService{
		promoterRepo: promoterRepo,
		campaignRepo: campaignRepo,
		orgRepo:      orgRepo,
		emailSvc:     emailSvc,
	}
}

// scopeFilters validates the requested filters against the caller's scope
// and pins the organization for non-superadmins.
func scopeFilters(scope domain.AccessScope, filters domain.PromoterFilters) (domain.PromoterFilters, error) {
	if scope.Role != domain.AdminRoleSuperadmin {
		filters.OrganizationID = scope.OrganizationID
	}
	if filters.State != "" && !scope.AllowsState(filters.State) {
		return filters, domain.NewValidationError("state", fmt.Sprintf("state %q is not assigned to this admin", filters.State))
	}
	if filters.Campaign != "" && filters.State != "" && !scope.AllowsCampaign(filters.State, filters.Campaign) {
		return filters, domain.NewValidationError("campaign", fmt.Sprintf("campaign %q is not assigned to this admin", filters.Campaign))
	}
	// Visibility restrictions ride along in the query. Paring the page down
	// after the fetch would under-fill it and break the cursor chain.
	if !scope.Unrestricted() {
		if filters.State == "" {
			filters.VisibleStates = scope.AssignedStates
		}
		filters.CampaignSubsets = scope.CampaignSubsets()
	}
	return filters, nil
}

func (s *promoterService) GetPromoter(ctx context.Context, scope domain.AccessScope, id string) (*domain.Promoter, error) {
	p, err := s.promoterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope.Role != domain.AdminRoleSuperadmin && p.OrganizationID != scope.OrganizationID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *promoterService) ListPage(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters, pageSize int, cursor string) (*repository.PromoterPage, error) {
	filters, err := scopeFilters(scope, filters)
	if err != nil {
		return nil, err
	}
	return s.promoterRepo.ListPage(ctx, filters, pageSize, cursor)
}

func (s *promoterService) Stats(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters) (*domain.PromoterStats, error) {
	filters, err := scopeFilters(scope, filters)
	if err != nil {
		return nil, err
	}
	return s.promoterRepo.Stats(ctx, filters)
}

func (s *promoterService) Approve(ctx context.Context, scope domain.AccessScope, id string) error {
	status := domain.PromoterStatusApproved
	return s.changeStatus(ctx, scope, id, domain.PromoterUpdate{Status: &status})
}

func (s *promoterService) Reject(ctx context.Context, scope domain.AccessScope, id, reason string, allowFurtherEdits bool) error {
	status := domain.PromoterStatusRejected
	if allowFurtherEdits {
		status = domain.PromoterStatusRejectedEditable
	}
	if reason == "" {
		reason = domain.DefaultRejectionMessage
	}
	return s.changeStatus(ctx, scope, id, domain.PromoterUpdate{Status: &status, RejectionReason: &reason})
}

func (s *promoterService) changeStatus(ctx context.Context, scope domain.AccessScope, id string, update domain.PromoterUpdate) error {
	if !scope.Role.CanMutatePromoters() {
		return domain.NewValidationError("role", "role "+string(scope.Role)+" may not change promoter status")
	}
	p, err := s.GetPromoter(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := p.Apply(update, scope.Actor(), time.Now().UTC()); err != nil {
		return err
	}
	if err := s.promoterRepo.Update(ctx, p); err != nil {
		return err
	}
	s.notifyStatusChange(ctx, p)
	return nil
}

func (s *promoterService) notifyStatusChange(ctx context.Context, p *domain.Promoter) {
	if s.emailSvc == nil || p.Email == "" {
		return
	}
	if err := s.emailSvc.SendStatusNotification(ctx, p.Email, p.Name, p.CampaignName, string(p.Status), p.RejectionReason); err != nil {
		logger.Error("Failed to send status notification", "promoter_id", p.ID, "error", err)
	}
}

func (s *promoterService) ApplyEdit(ctx context.Context, scope domain.AccessScope, id string, update domain.PromoterUpdate) (*domain.Promoter, error) {
	if !scope.Role.CanMutatePromoters() {
		return nil, domain.NewValidationError("role", "role "+string(scope.Role)+" may not edit promoters")
	}
	p, err := s.GetPromoter(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	statusChanging := update.Status != nil && *update.Status != p.Status
	if err := p.Apply(update, scope.Actor(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.promoterRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	if statusChanging {
		s.notifyStatusChange(ctx, p)
	}
	return p, nil
}

func (s *promoterService) LookupByEmail(ctx context.Context, scope domain.AccessScope, email string) ([]domain.Promoter, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	orgID := scope.OrganizationID
	if scope.Role == domain.AdminRoleSuperadmin {
		orgID = "" // cross-tenant lookup
	}
	return s.promoterRepo.FindByEmail(ctx, normalized, orgID)
}

func (s *promoterService) FilterOptions(ctx context.Context, scope domain.AccessScope) ([]string, map[string][]string, error) {
	if scope.OrganizationID == "" {
		// A superadmin outside any tenant has no organization to draw
		// filter options from.
		return nil, map[string][]string{}, nil
	}
	org, err := s.orgRepo.GetByID(ctx, scope.OrganizationID)
	if err != nil {
		return nil, nil, err
	}
	states := org.AssignedStates
	if !scope.Unrestricted() {
		states = scope.AssignedStates
	}

	campaignsByState := make(map[string][]string, len(states))
	for _, state := range states {
		campaigns, err := s.campaignRepo.ListByState(ctx, org.ID, state)
		if err != nil {
			return nil, nil, err
		}
		var names []string
		for _, c := range campaigns {
			if scope.AllowsCampaign(state, c.Name) {
				names = append(names, c.Name)
			}
		}
		campaignsByState[state] = names
	}
	return states, campaignsByState, nil
}

package service

import (
	"context"
	"time"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository"
)

type organizationService struct {
	orgRepo      repository.OrganizationRepository
	campaignRepo repository.CampaignRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, campaignRepo repository.CampaignRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo, campaignRepo: campaignRepo}
}

func (s *organizationService) ListOrganizations(ctx context.Context, scope domain.AccessScope) ([]domain.Organization, error) {
	if scope.Role == domain.AdminRoleSuperadmin {
		return s.orgRepo.List(ctx, true)
	}
	org, err := s.orgRepo.GetByID(ctx, scope.OrganizationID)
	if err != nil {
		return nil, err
	}
	return []domain.Organization{*org}, nil
}

func (s *organizationService) GetOrganization(ctx context.Context, scope domain.AccessScope, id string) (*domain.Organization, error) {
	if scope.Role != domain.AdminRoleSuperadmin && id != scope.OrganizationID {
		return nil, domain.ErrNotFound
	}
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) UpdateOrganization(ctx context.Context, scope domain.AccessScope, org *domain.Organization) error {
	if scope.Role != domain.AdminRoleSuperadmin {
		return domain.NewValidationError("role", "only superadmins may edit organizations")
	}
	return s.orgRepo.Update(ctx, org)
}

func (s *organizationService) ListCampaigns(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.Campaign, error) {
	if scope.Role != domain.AdminRoleSuperadmin {
		orgID = scope.OrganizationID
	}
	campaigns, err := s.campaignRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if scope.Unrestricted() {
		return campaigns, nil
	}
	visible := campaigns[:0]
	for _, c := range campaigns {
		if scope.AllowsCampaign(c.State, c.Name) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *organizationService) ExpirePlans(ctx context.Context) (int, error) {
	expired, err := s.orgRepo.ListExpiredPlans(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	now := time.Now().UTC()
	for i := range expired {
		org := &expired[i]
		if !org.PlanExpired(now) {
			continue
		}
		org.Status = domain.OrganizationStatusExpired
		if err := s.orgRepo.Update(ctx, org); err != nil {
			logger.Error("Failed to expire organization plan", "org_id", org.ID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"promodesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrganizationService_ExpirePlans(t *testing.T) {
	mockOrgs := new(MockOrganizationRepo)
	svc := NewOrganizationService(mockOrgs, nil)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)
	expired := []domain.Organization{
		{ID: "org-1", Status: domain.OrganizationStatusActive, PlanExpiresAt: &past},
		{ID: "org-2", Status: domain.OrganizationStatusTrial, PlanExpiresAt: &future},
		{ID: "org-3", Status: domain.OrganizationStatusActive, PlanExpiresAt: nil},
	}

	mockOrgs.On("ListExpiredPlans", ctx).Return(expired, nil).Once()
	mockOrgs.On("Update", ctx, mock.MatchedBy(func(o *domain.Organization) bool {
		return o.ID == "org-1" && o.Status == domain.OrganizationStatusExpired
	})).Return(nil).Once()

	count, err := svc.ExpirePlans(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	mockOrgs.AssertExpectations(t)
}

func TestOrganizationService_ListCampaigns(t *testing.T) {
	mockOrgs := new(MockOrganizationRepo)
	mockCampaigns := new(MockCampaignRepo)
	svc := NewOrganizationService(mockOrgs, mockCampaigns)
	ctx := context.Background()

	campaigns := []domain.Campaign{
		{Name: "Verao2026", State: "SP"},
		{Name: "Inverno2026", State: "RJ"},
	}
	mockCampaigns.On("ListByOrg", ctx, "org-1").Return(campaigns, nil)

	t.Run("RestrictedScopeSeesOnlyAssigned", func(t *testing.T) {
		scope := domain.AccessScope{
			OrganizationID: "org-1",
			Role:           domain.AdminRoleApprover,
			AssignedStates: []string{"SP"},
		}
		got, err := svc.ListCampaigns(ctx, scope, "org-1")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Verao2026", got[0].Name)
	})
}

func TestOrganizationService_UpdateOrganization(t *testing.T) {
	mockOrgs := new(MockOrganizationRepo)
	svc := NewOrganizationService(mockOrgs, nil)
	ctx := context.Background()

	err := svc.UpdateOrganization(ctx, domain.AccessScope{Role: domain.AdminRoleAdmin}, &domain.Organization{ID: "org-1"})
	assert.True(t, domain.IsValidation(err))

	mockOrgs.On("Update", ctx, mock.Anything).Return(nil).Once()
	err = svc.UpdateOrganization(ctx, domain.AccessScope{Role: domain.AdminRoleSuperadmin}, &domain.Organization{ID: "org-1"})
	assert.NoError(t, err)
	mockOrgs.AssertExpectations(t)
}

package service

import (
	"context"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockPromoterRepo
type MockPromoterRepo struct {
	mock.Mock
}

func (m *MockPromoterRepo) Create(ctx context.Context, p *domain.Promoter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPromoterRepo) GetByID(ctx context.Context, id string) (*domain.Promoter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}
func (m *MockPromoterRepo) ListPage(ctx context.Context, filters domain.PromoterFilters, pageSize int, cursor string) (*repository.PromoterPage, error) {
	args := m.Called(ctx, filters, pageSize, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PromoterPage), args.Error(1)
}
func (m *MockPromoterRepo) Stats(ctx context.Context, filters domain.PromoterFilters) (*domain.PromoterStats, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoterStats), args.Error(1)
}
func (m *MockPromoterRepo) Update(ctx context.Context, p *domain.Promoter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPromoterRepo) FindByEmail(ctx context.Context, normalizedEmail, organizationID string) ([]domain.Promoter, error) {
	args := m.Called(ctx, normalizedEmail, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promoter), args.Error(1)
}
func (m *MockPromoterRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context, includeHidden bool) ([]domain.Organization, error) {
	args := m.Called(ctx, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) ListExpiredPlans(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockCampaignRepo
type MockCampaignRepo struct {
	mock.Mock
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Campaign, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) ListByState(ctx context.Context, orgID, state string) ([]domain.Campaign, error) {
	args := m.Called(ctx, orgID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}
func (m *MockCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockAdminUserRepo
type MockAdminUserRepo struct {
	mock.Mock
}

func (m *MockAdminUserRepo) Create(ctx context.Context, a *domain.AdminUser) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAdminUserRepo) GetByUID(ctx context.Context, uid string) (*domain.AdminUser, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}
func (m *MockAdminUserRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.AdminUser, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminUser), args.Error(1)
}
func (m *MockAdminUserRepo) Update(ctx context.Context, a *domain.AdminUser) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAdminUserRepo) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// MockRejectionReasonRepo
type MockRejectionReasonRepo struct {
	mock.Mock
}

func (m *MockRejectionReasonRepo) Create(ctx context.Context, r *domain.RejectionReason) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRejectionReasonRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.RejectionReason, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RejectionReason), args.Error(1)
}
func (m *MockRejectionReasonRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdminApplicationRepo
type MockAdminApplicationRepo struct {
	mock.Mock
}

func (m *MockAdminApplicationRepo) Create(ctx context.Context, app *domain.AdminApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockAdminApplicationRepo) GetByID(ctx context.Context, id string) (*domain.AdminApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminApplication), args.Error(1)
}
func (m *MockAdminApplicationRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.AdminApplication, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminApplication), args.Error(1)
}
func (m *MockAdminApplicationRepo) Approve(ctx context.Context, app *domain.AdminApplication, admin *domain.AdminUser) error {
	args := m.Called(ctx, app, admin)
	return args.Error(0)
}
func (m *MockAdminApplicationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendStatusNotification(ctx context.Context, toEmail, toName, campaign, status, reason string) error {
	args := m.Called(ctx, toEmail, toName, campaign, status, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminWelcome(ctx context.Context, toEmail, toName, orgName string) error {
	args := m.Called(ctx, toEmail, toName, orgName)
	return args.Error(0)
}

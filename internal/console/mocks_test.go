package console

import (
	"context"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockPromoterService
type MockPromoterService struct {
	mock.Mock
}

func (m *MockPromoterService) GetPromoter(ctx context.Context, scope domain.AccessScope, id string) (*domain.Promoter, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}
func (m *MockPromoterService) ListPage(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters, pageSize int, cursor string) (*repository.PromoterPage, error) {
	args := m.Called(ctx, scope, filters, pageSize, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PromoterPage), args.Error(1)
}
func (m *MockPromoterService) Stats(ctx context.Context, scope domain.AccessScope, filters domain.PromoterFilters) (*domain.PromoterStats, error) {
	args := m.Called(ctx, scope, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoterStats), args.Error(1)
}
func (m *MockPromoterService) Approve(ctx context.Context, scope domain.AccessScope, id string) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}
func (m *MockPromoterService) Reject(ctx context.Context, scope domain.AccessScope, id, reason string, allowFurtherEdits bool) error {
	args := m.Called(ctx, scope, id, reason, allowFurtherEdits)
	return args.Error(0)
}
func (m *MockPromoterService) ApplyEdit(ctx context.Context, scope domain.AccessScope, id string, update domain.PromoterUpdate) (*domain.Promoter, error) {
	args := m.Called(ctx, scope, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}
func (m *MockPromoterService) LookupByEmail(ctx context.Context, scope domain.AccessScope, email string) ([]domain.Promoter, error) {
	args := m.Called(ctx, scope, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promoter), args.Error(1)
}
func (m *MockPromoterService) FilterOptions(ctx context.Context, scope domain.AccessScope) ([]string, map[string][]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).(map[string][]string), args.Error(2)
}

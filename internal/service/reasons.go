package service

import (
	"context"
	"strings"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/repository"
)

type rejectionReasonService struct {
	reasonRepo repository.RejectionReasonRepository
}

func NewRejectionReasonService(reasonRepo repository.RejectionReasonRepository) RejectionReasonService {
	return &rejectionReasonService{reasonRepo: reasonRepo}
}

func (s *rejectionReasonService) ListOptions(ctx context.Context, orgID string) ([]domain.RejectionReason, error) {
	tenant, err := s.reasonRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return domain.MergeRejectionReasons(tenant, domain.BuiltInRejectionReasons), nil
}

func (s *rejectionReasonService) CreateReason(ctx context.Context, scope domain.AccessScope, orgID, text string) (*domain.RejectionReason, error) {
	if scope.Role != domain.AdminRoleSuperadmin && scope.Role != domain.AdminRoleAdmin {
		return nil, domain.NewValidationError("role", "role "+string(scope.Role)+" may not manage rejection reasons")
	}
	if scope.Role != domain.AdminRoleSuperadmin {
		orgID = scope.OrganizationID
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError("text", "reason text is required")
	}
	reason := &domain.RejectionReason{OrganizationID: orgID, Text: text}
	if err := s.reasonRepo.Create(ctx, reason); err != nil {
		return nil, err
	}
	return reason, nil
}

func (s *rejectionReasonService) DeleteReason(ctx context.Context, scope domain.AccessScope, id string) error {
	if scope.Role != domain.AdminRoleSuperadmin && scope.Role != domain.AdminRoleAdmin {
		return domain.NewValidationError("role", "role "+string(scope.Role)+" may not manage rejection reasons")
	}
	return s.reasonRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository"
)

type adminService struct {
	adminRepo    repository.AdminUserRepository
	appRepo      repository.AdminApplicationRepository
	campaignRepo repository.CampaignRepository
	orgRepo      repository.OrganizationRepository
	emailSvc     EmailService
}

func NewAdminService(
	adminRepo repository.AdminUserRepository,
	appRepo repository.AdminApplicationRepository,
	campaignRepo repository.CampaignRepository,
	orgRepo repository.OrganizationRepository,
	emailSvc EmailService,
) AdminService {
	return &adminService{
		adminRepo:    adminRepo,
		appRepo:      appRepo,
		campaignRepo: campaignRepo,
		orgRepo:      orgRepo,
		emailSvc:     emailSvc,
	}
}

func requireAdminRole(scope domain.AccessScope) error {
	if scope.Role != domain.AdminRoleSuperadmin && scope.Role != domain.AdminRoleAdmin {
		return domain.NewValidationError("role", "role "+string(scope.Role)+" may not manage admins")
	}
	return nil
}

func (s *adminService) GetAdmin(ctx context.Context, uid string) (*domain.AdminUser, error) {
	return s.adminRepo.GetByUID(ctx, uid)
}

func (s *adminService) ListAdmins(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.AdminUser, error) {
	if err := requireAdminRole(scope); err != nil {
		return nil, err
	}
	if scope.Role != domain.AdminRoleSuperadmin {
		orgID = scope.OrganizationID
	}
	return s.adminRepo.ListByOrg(ctx, orgID)
}

func (s *adminService) UpdateAssignments(ctx context.Context, scope domain.AccessScope, uid string, states []string, campaigns map[string][]string) (*domain.AdminUser, error) {
	if err := requireAdminRole(scope); err != nil {
		return nil, err
	}
	admin, err := s.adminRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if scope.Role != domain.AdminRoleSuperadmin && admin.OrganizationID != scope.OrganizationID {
		return nil, domain.ErrNotFound
	}

	admin.SetAssignedStates(states)
	for state, names := range campaigns {
		if !contains(states, state) {
			return nil, domain.NewValidationError("campaigns",
				fmt.Sprintf("campaign assignment for unassigned state %q", state))
		}
		full, err := s.campaignRepo.ListByState(ctx, admin.OrganizationID, state)
		if err != nil {
			return nil, err
		}
		fullNames := make([]string, 0, len(full))
		for _, c := range full {
			fullNames = append(fullNames, c.Name)
		}
		admin.SetCampaignAssignment(state, names, fullNames)
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) ListApplications(ctx context.Context, scope domain.AccessScope, orgID string) ([]domain.AdminApplication, error) {
	if err := requireAdminRole(scope); err != nil {
		return nil, err
	}
	if scope.Role != domain.AdminRoleSuperadmin {
		orgID = scope.OrganizationID
	}
	return s.appRepo.ListByOrg(ctx, orgID)
}

// ApproveApplication turns an application into an admin record. The insert
// and the application deletion are one transaction in the repository; the
// welcome email goes out only after the transaction commits.
func (s *adminService) ApproveApplication(ctx context.Context, scope domain.AccessScope, applicationID string, role domain.AdminRole, states []string) (*domain.AdminUser, error) {
	if err := requireAdminRole(scope); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", "unknown role: "+string(role))
	}
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if scope.Role != domain.AdminRoleSuperadmin && app.OrganizationID != scope.OrganizationID {
		return nil, domain.ErrNotFound
	}

	admin := &domain.AdminUser{
		UID:            app.UID,
		Email:          app.Email,
		Name:           app.Name,
		OrganizationID: app.OrganizationID,
		Role:           role,
		AssignedStates: states,
	}
	if err := s.appRepo.Approve(ctx, app, admin); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		orgName := app.OrganizationID
		if org, err := s.orgRepo.GetByID(ctx, app.OrganizationID); err == nil {
			orgName = org.Name
		}
		if err := s.emailSvc.SendAdminWelcome(ctx, admin.Email, admin.Name, orgName); err != nil {
			logger.Error("Failed to send admin welcome email", "uid", admin.UID, "error", err)
		}
	}
	return admin, nil
}

func (s *adminService) RejectApplication(ctx context.Context, scope domain.AccessScope, applicationID string) error {
	if err := requireAdminRole(scope); err != nil {
		return err
	}
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if scope.Role != domain.AdminRoleSuperadmin && app.OrganizationID != scope.OrganizationID {
		return domain.ErrNotFound
	}
	return s.appRepo.Delete(ctx, app.ID)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

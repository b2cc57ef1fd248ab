package postgres

import (
	"database/sql"

	"promodesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PromoterRepository
	repository.OrganizationRepository
	repository.CampaignRepository
	repository.AdminUserRepository
	repository.RejectionReasonRepository
	repository.AdminApplicationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		PromoterRepository:         NewPromoterRepository(db),
		OrganizationRepository:     NewOrganizationRepository(db),
		CampaignRepository:         NewCampaignRepository(db),
		AdminUserRepository:        NewAdminUserRepository(db),
		RejectionReasonRepository:  NewRejectionReasonRepository(db),
		AdminApplicationRepository: NewAdminApplicationRepository(db),
	}
}

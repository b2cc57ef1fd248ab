package domain

import "time"

type OrganizationStatus string

const (
	OrganizationStatusActive  OrganizationStatus = "active"
	OrganizationStatusTrial   OrganizationStatus = "trial"
	OrganizationStatusExpired OrganizationStatus = "expired"
	OrganizationStatusHidden  OrganizationStatus = "hidden"
)

// Organization is a tenant: the top-level owner of campaigns, promoters and
// admin users.
type Organization struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	OwnerUID       string             `json:"owner_uid"`
	OwnerEmail     string             `json:"owner_email"`
	PlanID         string             `json:"plan_id"`
	Status         OrganizationStatus `json:"status"`
	AssignedStates []string           `json:"assigned_states"`
	Visible        bool               `json:"visible"`
	PlanExpiresAt  *time.Time         `json:"plan_expires_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// PlanExpired reports whether the organization's plan expiry has passed.
// Organizations without an expiry never expire.
func (o *Organization) PlanExpired(now time.Time) bool {
	if o.PlanExpiresAt == nil {
		return false
	}
	return now.After(*o.PlanExpiresAt)
}

// Campaign is a named recruiting drive scoped to one organization and one
// state.
type Campaign struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	State          string    `json:"state"`
	Active         bool      `json:"active"`
	Rules          string    `json:"rules,omitempty"`
	WhatsappLink   string    `json:"whatsapp_link,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

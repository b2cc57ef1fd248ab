package domain

import "time"

// AdminApplication is a request from an authenticated identity to become an
// admin of an organization. Approval creates the admin record and deletes
// the application row in one transaction; either all effects are visible or
// none.
type AdminApplication struct {
	ID             string    `json:"id"`
	UID            string    `json:"uid"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id"`
	RequestedRole  AdminRole `json:"requested_role"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

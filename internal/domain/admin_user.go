package domain

import "time"

type AdminRole string

const (
	AdminRoleSuperadmin AdminRole = "superadmin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleApprover   AdminRole = "approver"
	AdminRoleViewer     AdminRole = "viewer"
	AdminRolePoster     AdminRole = "poster"
)

func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleSuperadmin, AdminRoleAdmin, AdminRoleApprover, AdminRoleViewer, AdminRolePoster:
		return true
	}
	return false
}

// CanMutatePromoters reports whether the role may approve, reject or edit
// promoter records.
func (r AdminRole) CanMutatePromoters() bool {
	switch r {
	case AdminRoleSuperadmin, AdminRoleAdmin, AdminRoleApprover:
		return true
	}
	return false
}

type AssignmentKind string

const (
	AssignmentAll    AssignmentKind = "all"
	AssignmentSubset AssignmentKind = "subset"
)

// CampaignAssignment encodes "all campaigns in a state" vs an explicit
// subset as a tagged variant, so the two semantically different shapes can
// never be confused. Names is only meaningful when Kind is AssignmentSubset.
type CampaignAssignment struct {
	Kind  AssignmentKind `json:"kind"`
	Names []string       `json:"names,omitempty"`
}

// AllCampaignsAssignment is the canonical "no restriction" value.
func AllCampaignsAssignment() CampaignAssignment {
	return CampaignAssignment{Kind: AssignmentAll}
}

// NewCampaignAssignment builds an assignment from an explicit name subset,
// collapsing to All when the subset is empty or exactly equals the full
// known campaign set for the state. Every place campaign assignment is
// edited must go through this so "all" has a single representation.
func NewCampaignAssignment(names []string, fullSet []string) CampaignAssignment {
	if len(names) == 0 {
		return AllCampaignsAssignment()
	}
	if len(fullSet) > 0 && len(names) == len(fullSet) {
		want := make(map[string]struct{}, len(fullSet))
		for _, n := range fullSet {
			want[n] = struct{}{}
		}
		all := true
		for _, n := range names {
			if _, ok := want[n]; !ok {
				all = false
				break
			}
		}
		if all {
			return AllCampaignsAssignment()
		}
	}
	return CampaignAssignment{Kind: AssignmentSubset, Names: SortedCampaigns(names)}
}

// Allows reports whether the assignment permits the given campaign name.
func (a CampaignAssignment) Allows(campaign string) bool {
	if a.Kind != AssignmentSubset {
		return true
	}
	for _, n := range a.Names {
		if n == campaign {
			return true
		}
	}
	return false
}

// AdminUser is a permission record keyed by the external identity UID.
// An empty AssignedStates means unrestricted access to every state; a state
// with no AssignedCampaigns entry means every campaign in that state.
type AdminUser struct {
	UID               string                        `json:"uid"`
	Email             string                        `json:"email"`
	Name              string                        `json:"name"`
	OrganizationID    string                        `json:"organization_id"`
	Role              AdminRole                     `json:"role"`
	AssignedStates    []string                      `json:"assigned_states,omitempty"`
	AssignedCampaigns map[string]CampaignAssignment `json:"assigned_campaigns,omitempty"`
	CreatedAt         time.Time                     `json:"created_at"`
	UpdatedAt         time.Time                     `json:"updated_at"`
}

// SetAssignedStates replaces the state list and drops campaign assignments
// for states no longer present, keeping the two consistent.
func (a *AdminUser) SetAssignedStates(states []string) {
	a.AssignedStates = states
	if a.AssignedCampaigns == nil {
		return
	}
	keep := make(map[string]struct{}, len(states))
	for _, s := range states {
		keep[s] = struct{}{}
	}
	for s := range a.AssignedCampaigns {
		if _, ok := keep[s]; !ok {
			delete(a.AssignedCampaigns, s)
		}
	}
}

// SetCampaignAssignment records the campaign subset for a state, applying
// the collapse rule against the full known set. An All result removes the
// explicit entry entirely.
func (a *AdminUser) SetCampaignAssignment(state string, names []string, fullSet []string) {
	assignment := NewCampaignAssignment(names, fullSet)
	if assignment.Kind == AssignmentAll {
		delete(a.AssignedCampaigns, state)
		return
	}
	if a.AssignedCampaigns == nil {
		a.AssignedCampaigns = make(map[string]CampaignAssignment)
	}
	a.AssignedCampaigns[state] = assignment
}

// Scope derives the visibility scope this admin evaluates promoter and
// campaign listings under.
func (a *AdminUser) Scope() AccessScope {
	return AccessScope{
		UID:               a.UID,
		Email:             a.Email,
		OrganizationID:    a.OrganizationID,
		Role:              a.Role,
		AssignedStates:    a.AssignedStates,
		AssignedCampaigns: a.AssignedCampaigns,
	}
}

// AccessScope is the explicit auth context handed to controllers and
// services: who is acting, for which tenant, and what they may see.
type AccessScope struct {
	UID               string
	Email             string
	OrganizationID    string
	Role              AdminRole
	AssignedStates    []string
	AssignedCampaigns map[string]CampaignAssignment
}

// Unrestricted reports whether the scope has no state restriction at all.
// An empty assigned-state list is treated the same as superadmin; the
// platform has always behaved this way for freshly created admins.
func (s AccessScope) Unrestricted() bool {
	return s.Role == AdminRoleSuperadmin || len(s.AssignedStates) == 0
}

// AllowsState reports whether the given state may be selected as a filter.
func (s AccessScope) AllowsState(state string) bool {
	if s.Unrestricted() {
		return true
	}
	for _, st := range s.AssignedStates {
		if st == state {
			return true
		}
	}
	return false
}

// AllowsCampaign reports whether a promoter whose primary campaign is the
// given name within the given state is visible.
func (s AccessScope) AllowsCampaign(state, campaign string) bool {
	if !s.AllowsState(state) {
		return false
	}
	if s.Role == AdminRoleSuperadmin {
		return true
	}
	assignment, ok := s.AssignedCampaigns[state]
	if !ok {
		return true
	}
	return assignment.Allows(campaign)
}

// CampaignSubsets returns the explicit per-state campaign subsets this scope
// is limited to, keyed by state. States assigned as All have no entry. Nil
// when the scope carries no campaign-level restriction.
func (s AccessScope) CampaignSubsets() map[string][]string {
	if s.Role == AdminRoleSuperadmin || len(s.AssignedCampaigns) == 0 {
		return nil
	}
	out := make(map[string][]string, len(s.AssignedCampaigns))
	for state, assignment := range s.AssignedCampaigns {
		if assignment.Kind == AssignmentSubset {
			out[state] = assignment.Names
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Actor returns the audit identity for this scope.
func (s AccessScope) Actor() Actor {
	return Actor{UID: s.UID, Email: s.Email}
}

package domain

import (
	"sort"
	"strings"
	"time"
)

type PromoterStatus string

const (
	PromoterStatusPending          PromoterStatus = "pending"
	PromoterStatusApproved         PromoterStatus = "approved"
	PromoterStatusRejected         PromoterStatus = "rejected"
	PromoterStatusRejectedEditable PromoterStatus = "rejected_editable"
	PromoterStatusRemoved          PromoterStatus = "removed"
)

// IsRejected reports whether the status is one of the rejected variants.
func (s PromoterStatus) IsRejected() bool {
	return s == PromoterStatusRejected || s == PromoterStatusRejectedEditable
}

func (s PromoterStatus) Valid() bool {
	switch s {
	case PromoterStatusPending, PromoterStatusApproved, PromoterStatusRejected,
		PromoterStatusRejectedEditable, PromoterStatusRemoved:
		return true
	}
	return false
}

// Promoter is an application/profile record tracked through the
// pending -> approved/rejected lifecycle. "removed" is a status, not a
// deletion; records are only physically deleted by an explicit superadmin
// action elsewhere.
type Promoter struct {
	ID                  string         `json:"id"`
	OrganizationID      string         `json:"organization_id"`
	CampaignName        string         `json:"campaign_name,omitempty"`
	AssociatedCampaigns []string       `json:"associated_campaigns,omitempty"`
	AllCampaigns        []string       `json:"all_campaigns"`
	Status              PromoterStatus `json:"status"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Whatsapp            string         `json:"whatsapp"`
	Instagram           string         `json:"instagram"`
	Tiktok              string         `json:"tiktok,omitempty"`
	DateOfBirth         string         `json:"date_of_birth"`
	State               string         `json:"state"`
	PhotoURLs           []string       `json:"photo_urls"`
	FacePhotoURL        string         `json:"face_photo_url,omitempty"`
	RejectionReason     string         `json:"rejection_reason,omitempty"`
	HasJoinedGroup      bool           `json:"has_joined_group"`
	Observation         string         `json:"observation,omitempty"`
	ActionTakenByUID    string         `json:"action_taken_by_uid,omitempty"`
	ActionTakenByEmail  string         `json:"action_taken_by_email,omitempty"`
	StatusChangedAt     *time.Time     `json:"status_changed_at,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// PromoterUpdate is a partial edit. Nil pointers leave the field untouched.
// Field names on the wire match the Promoter serialization, so a snapshot
// row can be edited and sent back as-is.
type PromoterUpdate struct {
	Name                *string         `json:"name,omitempty"`
	Email               *string         `json:"email,omitempty"`
	Whatsapp            *string         `json:"whatsapp,omitempty"`
	Instagram           *string         `json:"instagram,omitempty"`
	Tiktok              *string         `json:"tiktok,omitempty"`
	DateOfBirth         *string         `json:"date_of_birth,omitempty"`
	State               *string         `json:"state,omitempty"`
	CampaignName        *string         `json:"campaign_name,omitempty"`
	AssociatedCampaigns *[]string       `json:"associated_campaigns,omitempty"`
	Status              *PromoterStatus `json:"status,omitempty"`
	RejectionReason     *string         `json:"rejection_reason,omitempty"`
	HasJoinedGroup      *bool           `json:"has_joined_group,omitempty"`
	Observation         *string         `json:"observation,omitempty"`
	FacePhotoURL        *string         `json:"face_photo_url,omitempty"`
}

// Actor identifies the admin performing a mutation, for the audit trail.
type Actor struct {
	UID   string
	Email string
}

// NormalizeEmail lower-cases and trims an email address. Every write path
// stores emails in this form so lookups by email are exact matches.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UnionCampaigns returns the deduplicated union of the primary campaign name
// (if any) and the associated campaign set, primary first, associated in
// their given order.
func UnionCampaigns(primary string, associated []string) []string {
	seen := make(map[string]struct{}, len(associated)+1)
	var out []string
	if primary != "" {
		seen[primary] = struct{}{}
		out = append(out, primary)
	}
	for _, c := range associated {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Apply merges the update into the promoter, enforcing the record invariants:
// AllCampaigns is always recomputed from campaign inputs, rejection reason
// only survives on a rejected variant, group membership only on approved, and
// any status change stamps the audit fields.
func (p *Promoter) Apply(u PromoterUpdate, by Actor, now time.Time) error {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		p.Email = NormalizeEmail(*u.Email)
	}
	if u.Whatsapp != nil {
		p.Whatsapp = strings.TrimSpace(*u.Whatsapp)
	}
	if u.Instagram != nil {
		p.Instagram = strings.TrimSpace(*u.Instagram)
	}
	if u.Tiktok != nil {
		p.Tiktok = strings.TrimSpace(*u.Tiktok)
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = *u.DateOfBirth
	}
	if u.State != nil {
		p.State = *u.State
	}
	if u.Observation != nil {
		p.Observation = *u.Observation
	}
	if u.FacePhotoURL != nil {
		p.FacePhotoURL = *u.FacePhotoURL
	}
	if u.CampaignName != nil {
		p.CampaignName = *u.CampaignName
	}
	if u.AssociatedCampaigns != nil {
		p.AssociatedCampaigns = *u.AssociatedCampaigns
	}
	p.AllCampaigns = UnionCampaigns(p.CampaignName, p.AssociatedCampaigns)

	if u.RejectionReason != nil {
		p.RejectionReason = *u.RejectionReason
	}
	if u.HasJoinedGroup != nil {
		p.HasJoinedGroup = *u.HasJoinedGroup
	}

	if u.Status != nil && *u.Status != p.Status {
		if !u.Status.Valid() {
			return NewValidationError("status", "unknown promoter status: "+string(*u.Status))
		}
		p.Status = *u.Status
		p.ActionTakenByUID = by.UID
		p.ActionTakenByEmail = by.Email
		changed := now
		p.StatusChangedAt = &changed
	}

	// Status-dependent fields never outlive the status that gave them meaning.
	if !p.Status.IsRejected() {
		p.RejectionReason = ""
	}
	if p.Status != PromoterStatusApproved {
		p.HasJoinedGroup = false
	}

	p.UpdatedAt = now
	return nil
}

// MatchesSearch reports whether the promoter matches a local substring
// search over name, email, instagram and whatsapp. An empty query matches
// everything.
func (p *Promoter) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Email, p.Instagram, p.Whatsapp} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// PromoterStats are server-computed aggregate counts for one filter set,
// independent of pagination.
type PromoterStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Removed  int `json:"removed"`
}

// PromoterFilters select the population a page and its stats are drawn from.
// Empty fields mean "any". A status filter of "rejected" covers both
// rejected variants. VisibleStates and CampaignSubsets carry the caller's
// visibility restrictions into the query itself, so a returned page is
// full-sized after restriction; they are derived from the access scope,
// never from client input.
type PromoterFilters struct {
	OrganizationID  string              `json:"organization_id,omitempty"`
	Status          PromoterStatus      `json:"status,omitempty"`
	State           string              `json:"state,omitempty"`
	Campaign        string              `json:"campaign,omitempty"`
	VisibleStates   []string            `json:"-"`
	CampaignSubsets map[string][]string `json:"-"`
}

// SortedCampaigns returns a sorted copy, used where a canonical order is
// needed for comparison.
func SortedCampaigns(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

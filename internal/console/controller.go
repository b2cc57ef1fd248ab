// Package console holds the stateful promoter list controller backing one
// admin console view: a page of promoters under an active filter set,
// aggregate stats, cursor-based pagination with backward navigation, and
// optimistic status mutations reconciled against the backend.
package console

import (
	"context"
	"errors"
	"sync"

	"promodesk-backend/internal/domain"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/service"
)

// DefaultPageSize is the fixed promoter page size.
const DefaultPageSize = 30

// FilterDimension names one axis of the active filter set.
type FilterDimension string

const (
	FilterStatus   FilterDimension = "status"
	FilterState    FilterDimension = "state"
	FilterCampaign FilterDimension = "campaign"
)

// ErrFetchInFlight is returned by NextPage when a page fetch has not
// resolved yet; the call is a no-op.
var ErrFetchInFlight = errors.New("a page fetch is already in flight")

// Controller owns the list state for one console session. All reads and
// writes of the page, cursor chain and stats go through its methods; no
// other component mutates them. Backend calls run outside the lock, so a
// filter change can overtake a slow fetch; resolution-time fingerprint
// comparison makes the last filter win.
type Controller struct {
	svc      service.PromoterService
	scope    domain.AccessScope
	pageSize int

	mu          sync.Mutex
	filters     domain.PromoterFilters
	page        []domain.Promoter
	chain       []string // cursor per page after the first; top fetched the current page
	nextCursor  string
	hasMore     bool
	stats       domain.PromoterStats
	localSearch string
	generation  uint64 // bumped whenever the filter snapshot changes
	fetching    bool
	inFlight    map[string]bool
	fetchErr    error
}

// New builds a controller for the given access scope. The organization
// filter is pinned from the scope for everyone below superadmin; the status
// filter starts at pending, which is what reviewers open the console for.
func New(svc service.PromoterService, scope domain.AccessScope, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		svc:      svc,
		scope:    scope,
		pageSize: pageSize,
		filters: domain.PromoterFilters{
			OrganizationID: scope.OrganizationID,
			Status:         domain.PromoterStatusPending,
		},
		inFlight: make(map[string]bool),
	}
}

// Load performs the initial first-page fetch.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.chain = nil
	gen := c.generation
	c.mu.Unlock()
	return c.fetch(ctx, gen, "", true)
}

// SetFilter replaces one filter dimension, invalidates the cursor chain and
// refetches the first page plus fresh stats. Any fetch still in flight for
// the previous filters is discarded when it resolves.
func (c *Controller) SetFilter(ctx context.Context, dim FilterDimension, value string) error {
	c.mu.Lock()
	switch dim {
	case FilterStatus:
		status := domain.PromoterStatus(value)
		if value != "" && !status.Valid() {
			c.mu.Unlock()
			return domain.NewValidationError("status", "unknown status filter: "+value)
		}
		c.filters.Status = status
	case FilterState:
		if value != "" && !c.scope.AllowsState(value) {
			c.mu.Unlock()
			return domain.NewValidationError("state", "state "+value+" is not assigned to this admin")
		}
		c.filters.State = value
		// A state change invalidates any campaign picked under the old state.
		c.filters.Campaign = ""
	case FilterCampaign:
		c.filters.Campaign = value
	default:
		c.mu.Unlock()
		return domain.NewValidationError("filter", "unknown filter dimension: "+string(dim))
	}
	c.generation++
	c.chain = nil
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, gen, "", true)
}

// SetLocalSearch updates the client-only substring filter. It touches
// neither pagination nor stats.
func (c *Controller) SetLocalSearch(query string) {
	c.mu.Lock()
	c.localSearch = query
	c.mu.Unlock()
}

// NextPage pushes the current page's end cursor and fetches the next page.
// No-op when no further page is indicated or a fetch is running.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return ErrFetchInFlight
	}
	if !c.hasMore || c.nextCursor == "" {
		c.mu.Unlock()
		return nil
	}
	c.chain = append(c.chain, c.nextCursor)
	// Claimed before the lock is released; a concurrent call must not push
	// the same cursor a second time.
	c.fetching = true
	gen := c.generation
	cursor := c.nextCursor
	c.mu.Unlock()

	return c.fetch(ctx, gen, cursor, false)
}

// PrevPage pops the cursor chain and refetches the page under the new top
// of chain, or the first page when the chain empties. The backend has no
// backward cursor; going back is always pop-and-refetch.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return ErrFetchInFlight
	}
	if len(c.chain) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.chain = c.chain[:len(c.chain)-1]
	c.fetching = true
	cursor := ""
	if len(c.chain) > 0 {
		cursor = c.chain[len(c.chain)-1]
	}
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, gen, cursor, false)
}

// Approve optimistically removes the promoter from the page, shifts the
// pending/approved counters, then confirms with the backend write.
func (c *Controller) Approve(ctx context.Context, promoterID string) error {
	return c.runOptimistic(ctx, promoterID, optimisticCommand{
		name: "approve",
		apply: func() {
			c.removeFromPage(promoterID)
			c.stats.Pending = floorZero(c.stats.Pending - 1)
			c.stats.Approved++
		},
		confirm: func(ctx context.Context) error {
			return c.svc.Approve(ctx, c.scope, promoterID)
		},
	})
}

// Reject optimistically removes the promoter and shifts pending/rejected,
// then writes the rejected status (editable variant when further edits are
// allowed) and the reason.
func (c *Controller) Reject(ctx context.Context, promoterID, reason string, allowFurtherEdits bool) error {
	return c.runOptimistic(ctx, promoterID, optimisticCommand{
		name: "reject",
		apply: func() {
			c.removeFromPage(promoterID)
			c.stats.Pending = floorZero(c.stats.Pending - 1)
			c.stats.Rejected++
		},
		confirm: func(ctx context.Context) error {
			return c.svc.Reject(ctx, c.scope, promoterID, reason, allowFurtherEdits)
		},
	})
}

// ApplyEdit is not optimistic: it waits for the backend write and then
// refetches the current page under the same cursor so the view reflects
// server state.
func (c *Controller) ApplyEdit(ctx context.Context, promoterID string, update domain.PromoterUpdate) error {
	c.mu.Lock()
	if c.inFlight[promoterID] {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	c.inFlight[promoterID] = true
	c.mu.Unlock()

	_, err := c.svc.ApplyEdit(ctx, c.scope, promoterID, update)

	c.mu.Lock()
	delete(c.inFlight, promoterID)
	cursor := ""
	if len(c.chain) > 0 {
		cursor = c.chain[len(c.chain)-1]
	}
	gen := c.generation
	c.mu.Unlock()

	if err != nil {
		return err
	}
	return c.fetch(ctx, gen, cursor, true)
}

// LookupByEmail is independent of the page state and filters; it never
// mutates the controller.
func (c *Controller) LookupByEmail(ctx context.Context, email string) ([]domain.Promoter, error) {
	return c.svc.LookupByEmail(ctx, c.scope, email)
}

// Snapshot is an immutable view of the controller for rendering.
type Snapshot struct {
	Filters     domain.PromoterFilters `json:"filters"`
	Items       []domain.Promoter      `json:"items"`
	Stats       domain.PromoterStats   `json:"stats"`
	HasMore     bool                   `json:"has_more"`
	PageDepth   int                    `json:"page_depth"` // 0 = first page
	LocalSearch string                 `json:"local_search,omitempty"`
	FetchError  string                 `json:"fetch_error,omitempty"`
}

// Snapshot returns the current visible state. The local search filter is
// applied to the loaded page only; stats and pagination are untouched by it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.Promoter, 0, len(c.page))
	for _, p := range c.page {
		if p.MatchesSearch(c.localSearch) {
			items = append(items, p)
		}
	}
	snap := Snapshot{
		Filters:     c.filters,
		Items:       items,
		Stats:       c.stats,
		HasMore:     c.hasMore,
		PageDepth:   len(c.chain),
		LocalSearch: c.localSearch,
	}
	if c.fetchErr != nil {
		snap.FetchError = c.fetchErr.Error()
	}
	return snap
}

// Scope returns the access scope the controller was built with.
func (c *Controller) Scope() domain.AccessScope {
	return c.scope
}

// fetch loads one page (and optionally stats) for the given generation.
// If the generation moved on while the calls were in flight, the result is
// thrown away: the response belongs to a filter set nobody is looking at.
func (c *Controller) fetch(ctx context.Context, gen uint64, cursor string, withStats bool) error {
	c.mu.Lock()
	c.fetching = true
	filters := c.filters
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.fetching = false
		c.mu.Unlock()
	}()

	page, err := c.svc.ListPage(ctx, c.scope, filters, c.pageSize, cursor)
	var stats *domain.PromoterStats
	if err == nil && withStats {
		stats, err = c.svc.Stats(ctx, c.scope, filters)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// Stale response, a newer filter snapshot owns the view now.
		logger.Debug("Discarding stale page fetch", "generation", gen, "current", c.generation)
		return nil
	}
	if err != nil {
		c.fetchErr = err
		c.page = nil
		c.nextCursor = ""
		c.hasMore = false
		return err
	}
	c.fetchErr = nil
	c.page = page.Items
	c.nextCursor = page.NextCursor
	// Fewer rows than a full page means this is the last one. A full page
	// may still be the last; the next fetch then comes back empty and
	// simply clears hasMore.
	c.hasMore = len(page.Items) == c.pageSize && page.NextCursor != ""
	if stats != nil {
		c.stats = *stats
	}
	return nil
}

// forceRefetch is the failure-recovery path: drop everything and re-read
// the current filter set from the first page.
func (c *Controller) forceRefetch(ctx context.Context) {
	c.mu.Lock()
	c.chain = nil
	gen := c.generation
	c.mu.Unlock()
	if err := c.fetch(ctx, gen, "", true); err != nil {
		logger.Error("Recovery refetch failed", "error", err)
	}
}

func (c *Controller) removeFromPage(promoterID string) {
	for i, p := range c.page {
		if p.ID == promoterID {
			c.page = append(c.page[:i], c.page[i+1:]...)
			return
		}
	}
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

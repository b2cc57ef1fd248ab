package console

import (
	"context"
	"errors"
)

// ErrMutationInFlight is returned when a second status-changing action is
// attempted on a promoter whose previous action has not resolved yet.
var ErrMutationInFlight = errors.New("a mutation for this promoter is already in flight")

// optimisticCommand is the single reviewed pattern every status-changing
// action follows: apply mutates controller state immediately (called with
// the lock held), confirm performs the backend write (called without the
// lock). On confirm failure the controller discards the local mutation by
// refetching the whole filter set from scratch; there is no partial
// rollback, because whether the write applied is not reliably observable.
type optimisticCommand struct {
	name    string
	apply   func()
	confirm func(ctx context.Context) error
}

// runOptimistic executes the command under the per-promoter in-flight
// guard. The guard is what prevents duplicate submission for one record
// while leaving actions on other records untouched.
func (c *Controller) runOptimistic(ctx context.Context, promoterID string, cmd optimisticCommand) error {
	c.mu.Lock()
	if c.inFlight[promoterID] {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	c.inFlight[promoterID] = true
	cmd.apply()
	c.mu.Unlock()

	err := cmd.confirm(ctx)

	c.mu.Lock()
	delete(c.inFlight, promoterID)
	c.mu.Unlock()

	if err != nil {
		// Recovery policy is refetch-everything: cursor chain cleared,
		// first page and stats re-read from the backend.
		c.forceRefetch(ctx)
		return err
	}
	return nil
}

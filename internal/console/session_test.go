package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager(t *testing.T) {
	svc := new(MockPromoterService)
	mgr := NewSessionManager(svc, 30)

	scope := testScope()
	id, ctrl := mgr.Open(scope)
	assert.NotEmpty(t, id)
	assert.NotNil(t, ctrl)

	t.Run("OwnerCanGet", func(t *testing.T) {
		got, ok := mgr.Get(id, scope.UID)
		assert.True(t, ok)
		assert.Same(t, ctrl, got)
	})

	t.Run("OtherAdminRefused", func(t *testing.T) {
		got, ok := mgr.Get(id, "someone-else")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("UnknownSessionRefused", func(t *testing.T) {
		_, ok := mgr.Get("no-such-session", scope.UID)
		assert.False(t, ok)
	})

	t.Run("CloseRemoves", func(t *testing.T) {
		mgr.Close(id)
		_, ok := mgr.Get(id, scope.UID)
		assert.False(t, ok)
	})
}

func TestSessionManagerSweep(t *testing.T) {
	svc := new(MockPromoterService)
	mgr := NewSessionManager(svc, 30)
	scope := testScope()

	idleID, _ := mgr.Open(scope)
	activeID, _ := mgr.Open(scope)

	// Backdate the idle session past the cutoff.
	mgr.mu.Lock()
	mgr.sessions[idleID].lastUsed = time.Now().Add(-2 * time.Hour)
	mgr.mu.Unlock()

	removed := mgr.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := mgr.Get(idleID, scope.UID)
	assert.False(t, ok)
	_, ok = mgr.Get(activeID, scope.UID)
	assert.True(t, ok)
}

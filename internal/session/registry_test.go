package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(RegistryConfig{})

	id, err := r.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, r.Len())

	c, err := r.Get(id)
	require.NoError(t, err)
	assert.NotNil(t, c)

	again, err := r.Get(id)
	require.NoError(t, err)
	assert.Same(t, c, again)

	assert.True(t, r.Delete(id))
	assert.False(t, r.Delete(id))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry(RegistryConfig{})

	_, err := r.Get("missing")

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.ID)
}

func TestRegistry_MaxSessions(t *testing.T) {
	r := NewRegistry(RegistryConfig{MaxSessions: 2})

	_, err := r.Create()
	require.NoError(t, err)
	id, err := r.Create()
	require.NoError(t, err)

	_, err = r.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	r.Delete(id)
	_, err = r.Create()
	assert.NoError(t, err)
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	r := NewRegistry(RegistryConfig{})
	a, _ := r.Create()
	b, _ := r.Create()
	assert.NotEqual(t, a, b)

	ca, _ := r.Get(a)
	cb, _ := r.Get(b)
	assert.NotSame(t, ca, cb)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newExpiringRegistry(t *testing.T, maxSessions int, onExpire func(string), opts ...Option) (*Registry, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(RegistryConfig{
		MaxSessions:     maxSessions,
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: time.Hour,
		OnExpire:        onExpire,
		Now:             clock.Now,
	}, opts...)
	t.Cleanup(r.Stop)
	return r, clock
}

func TestRegistry_FullRegistryReclaimsIdleSessions(t *testing.T) {
	var expired []string
	r, clock := newExpiringRegistry(t, 3, func(id string) { expired = append(expired, id) })

	ids := make([]string, 0, 3)
	for range 3 {
		id, err := r.Create()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	_, err := r.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	clock.Advance(31 * time.Minute)

	id, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
	assert.ElementsMatch(t, ids, expired)

	_, err = r.Get(ids[0])
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
	_, err = r.Get(id)
	assert.NoError(t, err)
}

func TestRegistry_ExpireIdle(t *testing.T) {
	r, clock := newExpiringRegistry(t, 0, nil)

	stale, err := r.Create()
	require.NoError(t, err)
	active, err := r.Create()
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = r.Get(active)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	assert.Equal(t, []string{stale}, r.ExpireIdle())
	assert.Equal(t, 1, r.Len())

	_, err = r.Get(active)
	assert.NoError(t, err, "a session used within the timeout survives")
}

func TestRegistry_ExpireIdleKeepsBusySessions(t *testing.T) {
	r, clock := newExpiringRegistry(t, 0, nil, WithDelay(time.Hour))

	id, err := r.Create()
	require.NoError(t, err)
	c, err := r.Get(id)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.RunAnalysis(ctx, testResume(), "Python developer", "")
	}()
	require.Eventually(t, c.Busy, time.Second, time.Millisecond)

	clock.Advance(time.Hour)
	assert.Empty(t, r.ExpireIdle())
	assert.Equal(t, 1, r.Len())

	cancel()
	<-done
	assert.Equal(t, []string{id}, r.ExpireIdle())
}

func TestRegistry_NoExpiryWithoutTimeout(t *testing.T) {
	r := NewRegistry(RegistryConfig{MaxSessions: 1})
	defer r.Stop()

	_, err := r.Create()
	require.NoError(t, err)

	assert.Empty(t, r.ExpireIdle())
	_, err = r.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)
}

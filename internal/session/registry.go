package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCleanupInterval is how often idle sessions are swept when
// RegistryConfig.CleanupInterval is unset.
const DefaultCleanupInterval = time.Minute

// RegistryConfig bounds the sessions a Registry keeps
type RegistryConfig struct {
	// MaxSessions caps live sessions; zero or less means unbounded.
	MaxSessions int
	// IdleTimeout expires sessions not used for this long; zero disables expiry.
	IdleTimeout time.Duration
	// CleanupInterval is the sweep period of the background cleanup.
	CleanupInterval time.Duration
	// OnExpire, when set, is called with the ID of every expired session.
	OnExpire func(id string)
	// Now overrides the clock in tests.
	Now func() time.Time
}

type registryEntry struct {
	controller *Controller
	lastUsed   time.Time
}

// Registry maps session IDs to controllers for multi-user servers
type Registry struct {
	config RegistryConfig
	opts   []Option
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewRegistry creates a registry bounded by config. opts are applied to every
// controller it creates. With an idle timeout set, a background goroutine
// sweeps idle sessions until Stop is called.
func NewRegistry(config RegistryConfig, opts ...Option) *Registry {
	r := &Registry{
		config:   config,
		opts:     opts,
		now:      config.Now,
		sessions: make(map[string]*registryEntry),
	}
	if r.now == nil {
		r.now = time.Now
	}

	if config.IdleTimeout > 0 {
		interval := config.CleanupInterval
		if interval <= 0 {
			interval = DefaultCleanupInterval
		}
		r.cleanupTicker = time.NewTicker(interval)
		r.cleanupStop = make(chan struct{})
		go r.cleanup()
	}

	return r
}

// Create starts a new session and returns its ID. A full registry first
// expires idle sessions to make room.
func (r *Registry) Create() (string, error) {
	r.mu.Lock()
	var expired []string
	if r.config.MaxSessions > 0 && len(r.sessions) >= r.config.MaxSessions {
		expired = r.expireLocked()
	}
	if r.config.MaxSessions > 0 && len(r.sessions) >= r.config.MaxSessions {
		r.mu.Unlock()
		r.notifyExpired(expired)
		return "", ErrTooManySessions
	}

	id := uuid.NewString()
	r.sessions[id] = &registryEntry{controller: NewController(r.opts...), lastUsed: r.now()}
	r.mu.Unlock()

	r.notifyExpired(expired)
	return id, nil
}

// Get returns the controller of the session with the given ID and marks the
// session as used.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	e.lastUsed = r.now()
	return e.controller, nil
}

// Delete ends a session, reporting whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ExpireIdle removes every session idle for at least the idle timeout and
// returns their IDs. Sessions with an analysis in flight are kept.
func (r *Registry) ExpireIdle() []string {
	r.mu.Lock()
	expired := r.expireLocked()
	r.mu.Unlock()

	r.notifyExpired(expired)
	return expired
}

func (r *Registry) expireLocked() []string {
	if r.config.IdleTimeout <= 0 {
		return nil
	}

	now := r.now()
	var expired []string
	for id, e := range r.sessions {
		if e.controller.Busy() || now.Sub(e.lastUsed) < r.config.IdleTimeout {
			continue
		}
		delete(r.sessions, id)
		expired = append(expired, id)
	}
	return expired
}

func (r *Registry) notifyExpired(ids []string) {
	if len(ids) == 0 {
		return
	}
	log.Printf("[session] expired %d idle session(s)", len(ids))
	if r.config.OnExpire == nil {
		return
	}
	for _, id := range ids {
		r.config.OnExpire(id)
	}
}

func (r *Registry) cleanup() {
	for {
		select {
		case <-r.cleanupTicker.C:
			r.ExpireIdle()
		case <-r.cleanupStop:
			return
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		if r.cleanupTicker != nil {
			r.cleanupTicker.Stop()
		}
		if r.cleanupStop != nil {
			close(r.cleanupStop)
		}
	})
}

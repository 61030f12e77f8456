package autosave

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
)

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithKey overrides the storage key. Server sessions use SessionKey.
func WithKey(key string) ManagerOption {
	return func(m *Manager) { m.key = key }
}

// WithMaxAge overrides how old a snapshot may be and still be restored.
func WithMaxAge(d time.Duration) ManagerOption {
	return func(m *Manager) { m.maxAge = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger for swallowed restore failures. nil means log.Default().
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// Manager saves and restores the snapshot under one key
type Manager struct {
	store  Store
	key    string
	maxAge time.Duration
	now    func() time.Time
	logger *log.Logger
}

// NewManager creates a Manager over store using StorageKey and MaxAge.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		key:    StorageKey,
		maxAge: MaxAge,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	return m
}

// Key returns the storage key.
func (m *Manager) Key() string {
	return m.key
}

// Save stores a snapshot of doc and template stamped with the current time.
func (m *Manager) Save(ctx context.Context, doc *types.ResumeDocument, template types.TemplateID) error {
	data, err := NewSnapshot(doc, template, m.now()).Encode()
	if err != nil {
		observability.ObserveAutosave("save", "error")
		return err
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		observability.ObserveAutosave("save", "error")
		return err
	}
	observability.ObserveAutosave("save", "ok")
	return nil
}

// Load reads the stored snapshot. It returns ErrNotFound when nothing is stored,
// a *DecodeError when the blob is malformed and ErrExpired when the snapshot is
// MaxAge old or older.
func (m *Manager) Load(ctx context.Context) (*Snapshot, error) {
	data, err := m.store.Get(ctx, m.key)
	if err != nil {
		return nil, err
	}

	snapshot, err := Decode(data)
	if err != nil {
		return nil, &DecodeError{Key: m.key, Cause: err}
	}

	if snapshot.Age(m.now()) >= m.maxAge {
		return nil, ErrExpired
	}
	return snapshot, nil
}

// Restore is Load for startup: any failure is logged and reported as no saved
// state, so a broken or stale blob never blocks the caller.
func (m *Manager) Restore(ctx context.Context) (*Snapshot, bool) {
	snapshot, err := m.Load(ctx)
	if err == nil {
		observability.ObserveAutosave("restore", "restored")
		return snapshot, true
	}

	var decodeErr *DecodeError
	switch {
	case errors.Is(err, ErrNotFound):
		observability.ObserveAutosave("restore", "missing")
	case errors.Is(err, ErrExpired):
		m.logger.Printf("[autosave] discarding snapshot %s older than %v", m.key, m.maxAge)
		observability.ObserveAutosave("restore", "expired")
	case errors.As(err, &decodeErr):
		m.logger.Printf("[autosave] discarding %v", err)
		observability.ObserveAutosave("restore", "malformed")
	default:
		m.logger.Printf("[autosave] restore failed: %v", err)
		observability.ObserveAutosave("restore", "error")
	}
	return nil, false
}

// Clear deletes the stored snapshot.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, m.key)
}

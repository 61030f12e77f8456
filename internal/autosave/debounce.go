package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-ats/internal/types"
)

// DefaultDebounceDelay is how long the debouncer waits for edits to settle
const DefaultDebounceDelay = 2 * time.Second

type pendingSave struct {
	doc      *types.ResumeDocument
	template types.TemplateID
}

// Debouncer coalesces a burst of changes into a single Save of the last state.
type Debouncer struct {
	manager *Manager
	delay   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending *pendingSave
	stopped bool
}

// NewDebouncer creates a Debouncer writing through manager. A delay of zero or
// less uses DefaultDebounceDelay.
func NewDebouncer(manager *Manager, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{manager: manager, delay: delay}
}

// Notify records a change. The save happens once no further change has arrived
// for the debounce delay. doc is copied immediately. Changes after Stop are ignored.
func (d *Debouncer) Notify(doc *types.ResumeDocument, template types.TemplateID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = &pendingSave{doc: doc.Clone(), template: template}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs when the timer of generation gen expires. A timer that fired while
// being replaced by a newer Notify is ignored.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	current := gen == d.gen
	d.mu.Unlock()
	if !current {
		return
	}

	if err := d.Flush(context.Background()); err != nil {
		d.manager.logger.Printf("[autosave] debounced save failed: %v", err)
	}
}

// Pending reports whether a change is waiting to be saved.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush saves the pending change now, if any.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if pending == nil {
		return nil
	}
	return d.manager.Save(ctx, pending.doc, pending.template)
}

// Stop flushes the pending change and ignores later ones.
func (d *Debouncer) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	return d.Flush(ctx)
}

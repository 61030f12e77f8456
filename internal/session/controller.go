// Package session guards analysis runs so that each resume-editing session has
// at most one run in flight and a single latest result.
package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
)

// Option configures a Controller
type Option func(*Controller)

// WithDelay adds a pacing delay before each run is scored. The delay is
// cosmetic and can be cut short by cancelling the run's context.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithTimeout bounds each run, pacing delay included. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the logger used for run logging. nil means log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller runs analyses for one session and keeps the latest report.
// It is safe for concurrent use; concurrent runs are rejected, not queued.
type Controller struct {
	delay   time.Duration
	timeout time.Duration
	logger  *log.Logger

	busy atomic.Bool

	mu     sync.RWMutex
	latest *types.JobMatchReport
}

// NewController creates a Controller with no pacing delay and no timeout.
func NewController(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// RunAnalysis scores doc against jobDescription and publishes the report as the
// latest result. doc is copied when the run starts, so later edits by the caller
// do not affect the run.
//
// A blank job description returns ErrBlankJobDescription, and a call made while
// another run is in flight returns ErrAnalysisInProgress. In both cases and when
// ctx ends before scoring, nothing is published.
func (c *Controller) RunAnalysis(ctx context.Context, doc *types.ResumeDocument, jobDescription string, template types.TemplateID) (*types.JobMatchReport, error) {
	start := time.Now()

	if strings.TrimSpace(jobDescription) == "" {
		observability.ObserveAnalysis(observability.OutcomeBlank, time.Since(start), 0)
		return nil, ErrBlankJobDescription
	}

	if !c.busy.CompareAndSwap(false, true) {
		observability.ObserveAnalysis(observability.OutcomeBusy, time.Since(start), 0)
		return nil, ErrAnalysisInProgress
	}
	defer c.busy.Store(false)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	snapshot := doc.Clone()

	if err := c.pace(ctx); err != nil {
		c.logger.Printf("[session] analysis cancelled after %v: %v", time.Since(start), err)
		observability.ObserveAnalysis(observability.OutcomeCancelled, time.Since(start), 0)
		return nil, &CancelledError{Cause: err}
	}

	report := ats.Analyze(snapshot, jobDescription, template)

	c.mu.Lock()
	c.latest = report
	c.mu.Unlock()

	observability.ObserveAnalysis(observability.OutcomeOK, time.Since(start), report.Score.Overall)
	return report, nil
}

func (c *Controller) pace(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Busy reports whether a run is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Latest returns the most recently published report, or nil if no run has
// completed. The returned report must not be modified.
func (c *Controller) Latest() *types.JobMatchReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

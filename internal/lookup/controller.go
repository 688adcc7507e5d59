package lookup

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vbonduro/nutrisnap/internal/domain"
	"github.com/vbonduro/nutrisnap/internal/nutrition"
)

// FallbackMessage is shown when a failed lookup carries no message of its own.
const FallbackMessage = "Something went wrong. Please try again."

// Outcome reports what Submit did with a submission.
type Outcome int

const (
	// Completed means the submission was accepted and ran to a terminal state.
	Completed Outcome = iota
	// Ignored means the query was empty or whitespace only.
	Ignored
	// Busy means another lookup was already in flight.
	Busy
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Ignored:
		return "ignored"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of a controller's state.
type Snapshot struct {
	Query  string                  `json:"query"`
	Status domain.Lifecycle        `json:"status"`
	Result *domain.NutritionResult `json:"result,omitempty"`
	Err    string                  `json:"error,omitempty"`
}

// Controller sequences nutrition lookups for one page session. At most one
// lookup is in flight at a time; the result or error of the last one is kept
// until the next accepted submission replaces it.
type Controller struct {
	analyzer     nutrition.Analyzer
	logger       *slog.Logger
	onTransition func(from, to domain.Lifecycle)
	now          func() time.Time

	mu         sync.Mutex
	query      string
	status     domain.Lifecycle
	result     *domain.NutritionResult
	errMsg     string
	lastActive time.Time
}

type Option func(*Controller)

// WithTransitionHook registers fn to be called after every lifecycle change.
// fn runs outside the controller lock.
func WithTransitionHook(fn func(from, to domain.Lifecycle)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

func NewController(analyzer nutrition.Analyzer, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		analyzer: analyzer,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastActive = c.now()
	return c
}

// Submit runs one lookup for query and blocks until it finishes. Blank
// queries and submissions made while a lookup is in flight change nothing.
// There is no retry and no timeout beyond what ctx imposes.
func (c *Controller) Submit(ctx context.Context, query string) Outcome {
	query = strings.TrimSpace(query)
	if query == "" {
		return Ignored
	}

	c.mu.Lock()
	if c.status == domain.LifecycleInFlight {
		c.mu.Unlock()
		c.logger.Info("lookup rejected, already in flight", "query", query)
		return Busy
	}
	c.query = query
	c.result = nil
	c.errMsg = ""
	from := c.setStatus(domain.LifecycleInFlight)
	c.mu.Unlock()
	c.notify(from, domain.LifecycleInFlight)

	c.logger.Info("lookup started", "query", query)
	start := c.now()
	result, err := c.analyzer.Analyze(ctx, query)
	if err == nil && result == nil {
		err = nutrition.ErrEmptyResponse
	}

	c.mu.Lock()
	var to domain.Lifecycle
	if err != nil {
		c.errMsg = errorMessage(err)
		to = domain.LifecycleFailed
	} else {
		c.result = result.Clone()
		to = domain.LifecycleSucceeded
	}
	from = c.setStatus(to)
	c.mu.Unlock()
	c.notify(from, to)

	elapsed := c.now().Sub(start).Milliseconds()
	if err != nil {
		c.logger.Error("lookup failed", "query", query, "duration_ms", elapsed, "error", err)
	} else {
		c.logger.Info("lookup complete", "query", query, "food", result.FoodName, "duration_ms", elapsed)
	}
	return Completed
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Query:  c.query,
		Status: c.status,
		Result: c.result.Clone(),
		Err:    c.errMsg,
	}
}

// idleSince reports when the controller last changed state and whether a
// lookup is currently running.
func (c *Controller) idleSince() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive, c.status == domain.LifecycleInFlight
}

func (c *Controller) touch(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = at
}

// setStatus must be called with c.mu held.
func (c *Controller) setStatus(to domain.Lifecycle) domain.Lifecycle {
	from := c.status
	c.status = to
	c.lastActive = c.now()
	return from
}

func (c *Controller) notify(from, to domain.Lifecycle) {
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

func errorMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

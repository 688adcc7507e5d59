package lookup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/nutrisnap/internal/nutrition"
)

// DefaultIdleTTL is how long an untouched page session is kept.
const DefaultIdleTTL = 30 * time.Minute

// Registry maps page-session ids to their controllers. Each page load opens
// a new session, so reloading the page starts from a clean idle state.
type Registry struct {
	analyzer nutrition.Analyzer
	logger   *slog.Logger
	ttl      time.Duration
	opts     []Option
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewRegistry(analyzer nutrition.Analyzer, ttl time.Duration, logger *slog.Logger, opts ...Option) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		analyzer: analyzer,
		logger:   logger,
		ttl:      ttl,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Controller),
	}
}

// Open starts a new page session and returns its id and controller.
func (r *Registry) Open() (string, *Controller) {
	return r.create(uuid.NewString())
}

// Get returns the controller for id and marks it active, so a session in
// use is never past its TTL when the caller submits to it. An unknown id
// that is a valid UUID is re-created under the same id, so a page outliving
// its session keeps working; anything else gets a freshly minted session.
func (r *Registry) Get(id string) (string, *Controller) {
	r.mu.Lock()
	ctrl, ok := r.sessions[id]
	if ok {
		ctrl.touch(r.now())
	}
	r.mu.Unlock()
	if ok {
		return id, ctrl
	}
	if _, err := uuid.Parse(id); err != nil {
		return r.Open()
	}
	return r.create(id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL. Sessions with a lookup
// in flight are kept regardless of age.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, ctrl := range r.sessions {
		last, inFlight := ctrl.idleSince()
		if inFlight || last.After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps idle sessions every half TTL until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("swept idle sessions", "removed", n, "remaining", r.Len())
			}
		}
	}
}

func (r *Registry) create(id string) (string, *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctrl, ok := r.sessions[id]; ok {
		return id, ctrl
	}
	ctrl := NewController(r.analyzer, r.logger.With("session_id", id), r.opts...)
	ctrl.now = r.now
	ctrl.lastActive = r.now()
	r.sessions[id] = ctrl
	return id, ctrl
}

// Package health runs the readiness checks for the task planner's
// dependencies: the SQLite store and, when export rendering is remote, the
// board formatter.
package health

import (
	"context"
	"maps"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/task-planner/internal/ports"
)

const defaultCheckTimeout = 2 * time.Second

var _ ports.HealthRegistry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds each check. Non-positive values keep the two
// second default.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.checkTimeout = d
		}
	}
}

// Registry holds one checker per name. It is safe for concurrent use.
type Registry struct {
	checkTimeout time.Duration

	mu       sync.RWMutex
	checkers map[string]ports.HealthChecker
}

func New(opts ...Option) *Registry {
	r := &Registry{
		checkTimeout: defaultCheckTimeout,
		checkers:     make(map[string]ports.HealthChecker),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds checker under its Name, replacing an earlier checker with
// the same name.
func (r *Registry) Register(checker ports.HealthChecker) {
	name := checker.Name()

	r.mu.Lock()
	r.checkers[name] = checker
	r.mu.Unlock()
}

// CheckAll runs every check at once, each under its own timeout derived from
// ctx, and waits for all of them.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := maps.Clone(r.checkers)
	r.mu.RUnlock()

	var (
		mu      sync.Mutex
		results = make(map[string]error, len(checkers))
		g       errgroup.Group
	)
	for name, c := range checkers {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, r.checkTimeout)
			defer cancel()
			err := c.HealthCheck(checkCtx)

			mu.Lock()
			results[name] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

package ports

import "context"

// HealthChecker is a dependency the readiness probe can ask about: the SQLite
// store, and the board formatter when rendering is remote.
type HealthChecker interface {
	// Name keys the checker's result, e.g. "database" or "board-formatter".
	Name() string
	// HealthCheck returns nil when the dependency is usable. It must give up
	// when ctx is done.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs the registered checkers for GET /health/ready.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll maps each checker's Name to its HealthCheck error, nil when
	// healthy.
	CheckAll(ctx context.Context) map[string]error
}

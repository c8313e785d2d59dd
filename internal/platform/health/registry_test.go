package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/task-planner/internal/platform/health"
	"github.com/jsamuelsen11/task-planner/mocks"
)

// probe is a checker whose result is fixed or computed by fn.
type probe struct {
	name string
	err  error
	fn   func(ctx context.Context) error
}

func (p probe) Name() string { return p.name }

func (p probe) HealthCheck(ctx context.Context) error {
	if p.fn != nil {
		return p.fn(ctx)
	}
	return p.err
}

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(context.Background())

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestCheckAll_ReportsEachChecker(t *testing.T) {
	t.Parallel()

	locked := errors.New("database is locked")

	r := health.New()
	r.Register(probe{name: "database", err: locked})
	r.Register(probe{name: "board-formatter"})

	results := r.CheckAll(context.Background())

	require.Len(t, results, 2)
	assert.ErrorIs(t, results["database"], locked)
	assert.NoError(t, results["board-formatter"])
}

func TestCheckAll_UsesMockedChecker(t *testing.T) {
	t.Parallel()

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("database")
	checker.EXPECT().HealthCheck(mock.Anything).Return(nil).Once()

	r := health.New()
	r.Register(checker)

	assert.Equal(t, map[string]error{"database": nil}, r.CheckAll(context.Background()))
}

func TestRegister_SameNameReplaces(t *testing.T) {
	t.Parallel()

	second := errors.New("second checker")

	r := health.New()
	r.Register(probe{name: "database"})
	r.Register(probe{name: "database", err: second})

	results := r.CheckAll(context.Background())

	require.Len(t, results, 1)
	assert.ErrorIs(t, results["database"], second)
}

func TestCheckAll_PassesCallerContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := health.New()
	r.Register(probe{name: "database", fn: func(ctx context.Context) error { return ctx.Err() }})

	assert.ErrorIs(t, r.CheckAll(ctx)["database"], context.Canceled)
}

func TestCheckAll_SlowCheckTimesOut(t *testing.T) {
	t.Parallel()

	r := health.New(health.WithCheckTimeout(20 * time.Millisecond))
	r.Register(probe{name: "board-formatter", fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	r.Register(probe{name: "database"})

	start := time.Now()
	results := r.CheckAll(context.Background())

	assert.ErrorIs(t, results["board-formatter"], context.DeadlineExceeded)
	assert.NoError(t, results["database"])
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithCheckTimeout_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	// A zero timeout would expire immediately; the default leaves time for a
	// check that returns at once.
	r := health.New(health.WithCheckTimeout(0))
	r.Register(probe{name: "database", fn: func(ctx context.Context) error { return ctx.Err() }})

	assert.NoError(t, r.CheckAll(context.Background())["database"])
}

func TestCheckAll_RunsChecksConcurrently(t *testing.T) {
	t.Parallel()

	// Each check waits for the other to start; run one at a time they would
	// both time out.
	var started sync.WaitGroup
	started.Add(2)
	bothStarted := make(chan struct{})
	go func() {
		started.Wait()
		close(bothStarted)
	}()

	wait := func(ctx context.Context) error {
		started.Done()
		select {
		case <-bothStarted:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r := health.New(health.WithCheckTimeout(time.Second))
	r.Register(probe{name: "database", fn: wait})
	r.Register(probe{name: "board-formatter", fn: wait})

	for name, err := range r.CheckAll(context.Background()) {
		assert.NoError(t, err, name)
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				r.Register(probe{name: "database"})
				return
			}
			r.CheckAll(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, r.CheckAll(context.Background()), 1)
}

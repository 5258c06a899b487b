package generation

import (
	"context"
	"time"

	"github.com/mafgems/api/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

const defaultSideEffectTimeout = 10 * time.Second

// Runner runs best-effort side effects in the background. Failures and
// panics are logged and counted; they never reach the caller of Go.
type Runner struct {
	wg      conc.WaitGroup
	timeout time.Duration
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewRunner creates a runner whose tasks each get timeout to finish
func NewRunner(timeout time.Duration, log zerolog.Logger, m *metrics.Metrics) *Runner {
	if timeout <= 0 {
		timeout = defaultSideEffectTimeout
	}
	return &Runner{timeout: timeout, log: log, metrics: m}
}

// Go starts fn on a context detached from parent's cancellation. Values on
// parent (request id, logger) are kept.
func (r *Runner) Go(parent context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(parent)

	r.wg.Go(func() {
		ctx, cancel := context.WithTimeout(detached, r.timeout)
		defer cancel()

		var err error
		var pc panics.Catcher
		pc.Try(func() { err = fn(ctx) })
		if rec := pc.Recovered(); rec != nil {
			err = rec.AsError()
		}

		if err != nil {
			r.metrics.IncSideEffectFailure(name)
			r.log.Warn().Err(err).Str("side_effect", name).Msg("[SideEffect] best-effort task failed")
		}
	})
}

// Wait blocks until every started task has returned
func (r *Runner) Wait() {
	r.wg.Wait()
}

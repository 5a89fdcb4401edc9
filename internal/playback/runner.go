package playback

import (
	"context"
	"time"

	"github.com/addcomposites/openaxis/internal/timeutil"
)

// Runner drives a Controller from a wall-clock ticker. It measures the
// real elapsed time between ticks rather than assuming the nominal
// interval, so a late tick still advances the simulation correctly
// (subject to the controller's per-tick clamp).
type Runner struct {
	clock    timeutil.Clock
	interval time.Duration
	ctrl     *Controller

	// OnPublish, if set, is called after every tick that moved the
	// simulated clock. Called without the controller lock held.
	OnPublish func(State)
}

// NewRunner creates a runner ticking at the given interval.
func NewRunner(clock timeutil.Clock, interval time.Duration, ctrl *Controller) *Runner {
	return &Runner{
		clock:    clock,
		interval: interval,
		ctrl:     ctrl,
	}
}

// Run ticks the controller until the context is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C():
			delta := now.Sub(last).Seconds()
			last = now
			if r.ctrl.Tick(delta) && r.OnPublish != nil {
				r.OnPublish(r.ctrl.Snapshot())
			}
		}
	}
}

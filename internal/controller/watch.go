package controller

import (
	"context"
	"time"

	"trainctl/internal/apperrors"
	"trainctl/internal/logger"
	"trainctl/internal/remote"
	"trainctl/pkg/api"
)

// terminalStates is rendered into timeout errors so callers can see what the
// watch loop was waiting for.
const terminalStates = "[JOB_STATE_SUCCEEDED JOB_STATE_FAILED JOB_STATE_CANCELLED JOB_STATE_EXPIRED]"

// watchJob polls the control plane until the job identified by name reaches a
// terminal state or deadline elapses. current is the state observed at
// submission, used to suppress a duplicate transition log on the first poll.
//
// Transient describe failures do not abort the watch: the loop logs them at
// debug and retries on the next tick. The deadline is checked on every
// iteration, poll success or not, so a job that is never describable still
// ends the loop on time, and a job that is merely slow is not abandoned early.
func (c *Controller) watchJob(ctx context.Context, svc remote.JobService, name string, current api.JobState, deadline time.Duration) (*api.CustomJob, error) {
	log := logger.FromContext(ctx, c.logger)

	state := api.JobStateUnspecified
	lastState := current
	start := time.Now()

	var job *api.CustomJob
	for !state.Terminal() {
		latest, err := svc.GetJob(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Intermittently the job is not describable. Keep watching; the
			// deadline below still bounds the loop.
			log.Debug("job not describable, will retry", "error", err)
			c.metrics.RecordPollFailure(ctx)
		} else {
			job = latest
			state = latest.State
			if state != lastState {
				log.Info("job state changed", "from", string(lastState), "to", string(state))
				c.metrics.RecordTransition(ctx, string(state))
				lastState = state
			}
		}

		if elapsed := time.Since(start); elapsed > deadline {
			c.metrics.RecordWatchTimeout(ctx)
			return nil, apperrors.WatchTimeout(name, elapsed.Round(time.Millisecond), terminalStates)
		}

		if state.Terminal() {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}
	}

	return job, nil
}

package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/matcher"
	"github.com/MrSnakeDoc/arbcheck/internal/notifier"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"
)

const (
	InitialBackoff = 30 * time.Second
	MaxBackoff     = 5 * time.Hour
)

type Outcome int

const (
	Success Outcome = iota
	Retry
)

func (o Outcome) String() string {
	if o == Retry {
		return "retry"
	}
	return "success"
}

type Checker interface {
	Execute(ctx context.Context) (*checker.Report, error)
}

// Job is the periodic background check. It never coordinates with
// foreground checks; both may run at the same time.
type Job struct {
	Checker  Checker
	Settings settings.Store
	Notifier notifier.Notifier
	// Sleep waits for d or until ctx is done; replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// RunOnce performs one background check.
//   - notifications disabled: Success, nothing fetched
//   - device properties unreadable: Success, there is nothing to compare
//   - fetch or decode failure: Retry
//   - a higher ARB than the matched build is known: notify
func (j *Job) RunOnce(ctx context.Context) Outcome {
	st, err := j.Settings.Load(ctx)
	if err != nil {
		logger.Warn("background check: cannot load settings: %v", err)
		return Retry
	}
	if !st.NotificationsEnabled {
		logger.Debug("background check skipped: notifications disabled")
		return Success
	}

	rep, err := j.Checker.Execute(ctx)
	if err != nil {
		var se *checker.StageError
		if errors.As(err, &se) && se.Stage == checker.StageReadingDevice {
			logger.Debug("background check skipped: %v", err)
			return Success
		}
		logger.Warn("background check failed, will retry: %v", err)
		return Retry
	}

	log := logger.With("check_id", rep.ID, "model", rep.Props.Model)
	maxARB, alert := matcher.NeedsAlert(rep.Result)
	if !alert {
		log.Debug("background check: nothing to report (%s)", rep.Result.Outcome)
		return Success
	}

	log.Info("higher ARB %d available (current %d)", maxARB, rep.Result.ARB())
	if j.Notifier != nil {
		if err := j.Notifier.Notify(ctx, notifier.ForMaxARB(rep.Props.Model, maxARB)); err != nil {
			log.Warn("notification delivery failed: %v", err)
		}
	}
	return Success
}

// Run loops until ctx is cancelled. The interval is re-read from settings on
// every cycle; failures are retried with an exponential backoff that is reset
// by the next success.
func (j *Job) Run(ctx context.Context) error {
	var backoff time.Duration
	for {
		outcome := j.RunOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}

		interval := j.interval(ctx)
		wait := interval
		if outcome == Retry {
			backoff = NextBackoff(backoff, interval)
			wait = backoff
		} else {
			backoff = 0
		}

		logger.Debug("background check %s, next run in %s", outcome, wait)
		if err := j.sleep(ctx, wait); err != nil {
			return nil
		}
	}
}

func (j *Job) interval(ctx context.Context) time.Duration {
	hours := settings.Defaults().CheckIntervalHours
	if st, err := j.Settings.Load(ctx); err == nil {
		hours = st.CheckIntervalHours
	}
	return time.Duration(hours) * time.Hour
}

func (j *Job) sleep(ctx context.Context, d time.Duration) error {
	if j.Sleep != nil {
		return j.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NextBackoff doubles prev starting at InitialBackoff, capped at MaxBackoff
// and at the regular interval.
func NextBackoff(prev, interval time.Duration) time.Duration {
	next := InitialBackoff
	if prev > 0 {
		next = prev * 2
	}
	limit := MaxBackoff
	if interval > 0 && interval < limit {
		limit = interval
	}
	if next > limit {
		next = limit
	}
	return next
}

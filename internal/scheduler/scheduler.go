// Package scheduler runs the periodic housekeeping of the server: dropping
// expired rate-limit windows and idle login limiters.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"

	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/middleware"
	"github.com/xXmathysxhocine64Xx/V5-test1.0/internal/ratelimit"
)

// Scheduler wraps a cron instance whose jobs recover from panics and never
// overlap with themselves.
type Scheduler struct {
	cron   *cron.Cron
	logger echo.Logger
	jobs   map[string]cron.EntryID
}

func New(logger echo.Logger) *Scheduler {
	cl := cronLogger{logger}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
		jobs:   make(map[string]cron.EntryID),
	}
}

// Add registers fn under name. spec accepts five-field cron expressions and
// descriptors such as "@every 5m".
func (s *Scheduler) Add(name, spec string, fn func()) error {
	if _, dup := s.jobs[name]; dup {
		return fmt.Errorf("job %q already registered", name)
	}
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("schedule %q (%s): %w", name, spec, err)
	}
	s.jobs[name] = id
	s.logger.Infof("[scheduler] %s scheduled %q", name, spec)
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int { return len(s.jobs) }

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("[scheduler] stop timed out with jobs still running")
	}
}

// SweepWindows returns a job dropping rate-limit windows older than window.
func SweepWindows(store *ratelimit.MemoryStore, window time.Duration, logger echo.Logger) func() {
	return func() {
		if n := store.Sweep(time.Now(), window); n > 0 {
			logger.Debugf("[scheduler] swept %d rate-limit windows", n)
		}
	}
}

// CleanupLogins returns a job forgetting login limiters idle for idle.
func CleanupLogins(t *middleware.LoginThrottle, idle time.Duration, logger echo.Logger) func() {
	return func() {
		if n := t.Cleanup(idle); n > 0 {
			logger.Debugf("[scheduler] dropped %d idle login limiters", n)
		}
	}
}

// cronLogger adapts echo.Logger to cron.Logger.
type cronLogger struct{ l echo.Logger }

func (c cronLogger) Info(msg string, kv ...interface{}) {
	c.l.Debugf("[scheduler] %s %v", msg, kv)
}

func (c cronLogger) Error(err error, msg string, kv ...interface{}) {
	c.l.Errorf("[scheduler] %s: %v %v", msg, err, kv)
}

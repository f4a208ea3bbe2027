// FilePath: internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	nuts "github.com/vaudience/go-nuts"
)

// Job is a named periodic batch task entry point
type Job func(ctx context.Context) (bool, error)

// Scheduler wires the batch tasks onto cron schedules. Tasks never
// self-schedule; this is the only place invocation times are decided.
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// New creates a stopped Scheduler; call Start after registering jobs
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// Add registers a job under a cron spec (standard 5-field syntax)
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		s.runJob(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %q: %w", name, err)
	}

	s.jobs[name] = entryID
	nuts.L.Infof("[Scheduler] Job %q scheduled (%s)", name, spec)
	return nil
}

func (s *Scheduler) runJob(name string, job Job) {
	start := time.Now()
	nuts.L.Infof("[Scheduler] Starting job %q", name)

	ok, err := job(context.Background())
	if err != nil {
		nuts.L.Errorf("[Scheduler] Job %q failed after %v: %v", name, time.Since(start), err)
		return
	}

	nuts.L.Infof("[Scheduler] Job %q finished in %v (ok=%t)", name, time.Since(start), ok)
}

// Start begins running registered jobs on their schedules
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	nuts.L.Infof("[Scheduler] Stopped")
}

package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Counter reports how many users are stored
type Counter interface {
	CountUsers() int
}

// Scheduler runs the periodic user statistics report
type Scheduler struct {
	cron    *cron.Cron
	counter Counter
	log     *logrus.Logger
}

// NewScheduler registers the stats job under spec. An empty spec
// yields a scheduler with no jobs.
func NewScheduler(spec string, counter Counter, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		counter: counter,
		log:     log,
	}

	if spec == "" {
		log.Info("Stats report disabled")
		return s, nil
	}
	if _, err := s.cron.AddFunc(spec, s.reportStats); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) reportStats() {
	s.log.WithField("users", s.counter.CountUsers()).Info("User stats")
}

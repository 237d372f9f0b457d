package scheduler

import (
	"context"
	"sync"
	"time"

	"microbank/models"
	"microbank/service"

	log "github.com/sirupsen/logrus"
)

// Schedule is a daily fire time in UTC
type Schedule struct {
	Hour   int
	Minute int
}

// Config holds the scheduler's trigger configuration. DebugMode forces
// both kinds onto a rapid fixed interval for testing and must never be
// the default in production.
type Config struct {
	DebugMode       bool
	DebugInterval   time.Duration // defaults to 10s when zero
	FDSchedule      Schedule
	SavingsSchedule Schedule
}

const defaultDebugInterval = 10 * time.Second

// Scheduler owns the two recurring interest triggers. Construct once at
// process start with New, run with Start, and shut down with Stop.
type Scheduler struct {
	cfg      Config
	svc      service.InterestService
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// per-kind guard so a slow run is skipped rather than overlapped
	running map[models.InterestKind]*sync.Mutex
}

// New creates a scheduler for the given interest service
func New(cfg Config, svc service.InterestService) *Scheduler {
	if cfg.DebugInterval == 0 {
		cfg.DebugInterval = defaultDebugInterval
	}
	return &Scheduler{
		cfg:      cfg,
		svc:      svc,
		stopChan: make(chan struct{}),
		running: map[models.InterestKind]*sync.Mutex{
			models.InterestKindFD:      {},
			models.InterestKindSavings: {},
		},
	}
}

// Start registers both triggers. Each kind runs independently: a failed
// run only logs and never cancels future firings or the other kind's
// trigger.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cfg.DebugMode {
		log.WithField("interval", s.cfg.DebugInterval).
			Warn("Interest scheduler running in DEBUG mode, not for production use")
	}

	s.wg.Add(2)
	go s.runTrigger(ctx, models.InterestKindFD, s.cfg.FDSchedule)
	go s.runTrigger(ctx, models.InterestKindSavings, s.cfg.SavingsSchedule)

	log.WithFields(log.Fields{
		"fdSchedule":      s.cfg.FDSchedule,
		"savingsSchedule": s.cfg.SavingsSchedule,
		"debugMode":       s.cfg.DebugMode,
	}).Info("Interest scheduler started")
}

// Stop halts both triggers and waits for any in-flight firing to return
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	s.wg.Wait()
	log.Info("Interest scheduler stopped")
}

func (s *Scheduler) runTrigger(ctx context.Context, kind models.InterestKind, schedule Schedule) {
	defer s.wg.Done()

	for {
		wait := s.nextFire(schedule)

		select {
		case <-ctx.Done():
			log.WithField("kind", kind).Info("Interest trigger shutting down (context cancelled)")
			return
		case <-s.stopChan:
			log.WithField("kind", kind).Info("Interest trigger shutting down (stop requested)")
			return
		case <-time.After(wait):
			s.fire(ctx, kind)
		}
	}
}

// nextFire returns how long to wait until the trigger's next firing
func (s *Scheduler) nextFire(schedule Schedule) time.Duration {
	if s.cfg.DebugMode {
		return s.cfg.DebugInterval
	}

	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), schedule.Hour, schedule.Minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// fire invokes one batch run. Errors are local to the firing: they are
// logged and the trigger keeps its cadence.
func (s *Scheduler) fire(ctx context.Context, kind models.InterestKind) {
	guard := s.running[kind]
	if !guard.TryLock() {
		log.WithField("kind", kind).Warn("Previous interest run still in progress, skipping this firing")
		return
	}
	defer guard.Unlock()

	summary, err := s.svc.RunInterestBatch(ctx, kind, time.Time{})
	if err != nil {
		log.WithFields(log.Fields{
			"kind":  kind,
			"error": err.Error(),
		}).Error("Interest run failed")
		return
	}

	log.WithFields(log.Fields{
		"kind":          kind,
		"period":        summary.Period.Format("2006-01-02"),
		"itemsCredited": summary.ItemsCredited,
		"totalInterest": summary.TotalInterestCredited.String(),
	}).Debug("Scheduled interest run finished")
}

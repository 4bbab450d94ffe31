package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/config"
	"github.com/yardenfarag/Full-Stack-Assignment/internal/usecases/syncing"
)

// SyncStarter é a parte do orquestrador usada pelo agendador
type SyncStarter interface {
	StartSync(ctx context.Context) (string, error)
}

// Status é o estado exposto em /api/sync/status
type Status struct {
	Enabled         bool       `json:"enabled"`
	CronSchedule    string     `json:"cronSchedule,omitempty"`
	NextRunAt       *time.Time `json:"nextRunAt,omitempty"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt,omitempty"`
	LastRunID       string     `json:"lastRunId,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
}

// SyncScheduler dispara sincronizações completas segundo uma expressão cron
type SyncScheduler struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	cfg       config.Sync
	syncer    SyncStarter

	mu              sync.Mutex
	lastTriggeredAt time.Time
	lastRunID       string
	lastError       string

	now func() time.Time
}

func NewSyncScheduler(cfg config.Sync, syncer SyncStarter) *SyncScheduler {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":    cfg.CronSchedule,
		"schedule_enabled": cfg.ScheduleEnabled,
	}).Info("scheduler: sync schedule loaded")

	return &SyncScheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		syncer:    syncer,
		now:       time.Now,
	}
}

// Start agenda a sincronização e para o agendador quando ctx for cancelado
func (s *SyncScheduler) Start(ctx context.Context) error {
	if !s.cfg.ScheduleEnabled {
		logrus.Info("scheduler: scheduled sync disabled by configuration")
		return nil
	}

	job, err := s.scheduler.Cron(s.cfg.CronSchedule).Do(s.trigger, ctx)
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização (%q): %w", s.cfg.CronSchedule, err)
	}
	s.job = job

	s.scheduler.StartAsync()
	logrus.WithField("cron", s.cfg.CronSchedule).Info("scheduler: sync scheduler started")

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// trigger usa o mesmo caminho do disparo manual; conflito não é erro
func (s *SyncScheduler) trigger(ctx context.Context) {
	runID, err := s.syncer.StartSync(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTriggeredAt = s.now()

	switch {
	case errors.Is(err, syncing.ErrSyncInProgress):
		s.lastError = err.Error()
		logrus.Info("scheduler: sync already in progress, skipping scheduled run")
	case err != nil:
		s.lastError = err.Error()
		logrus.WithError(err).Error("scheduler: failed to start scheduled sync")
	default:
		s.lastRunID = runID
		s.lastError = ""
		logrus.WithField("run_id", runID).Info("scheduler: scheduled sync started")
	}
}

func (s *SyncScheduler) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Enabled:   s.cfg.ScheduleEnabled,
		LastRunID: s.lastRunID,
		LastError: s.lastError,
	}
	if s.cfg.ScheduleEnabled {
		status.CronSchedule = s.cfg.CronSchedule
	}
	if !s.lastTriggeredAt.IsZero() {
		triggeredAt := s.lastTriggeredAt
		status.LastTriggeredAt = &triggeredAt
	}
	if s.job != nil {
		if next := s.job.NextRun(); !next.IsZero() {
			status.NextRunAt = &next
		}
	}

	return status
}

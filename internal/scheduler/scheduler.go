package scheduler

import (
	"context"
	"fmt"

	"IndexBoard/internal/usecase"
	applogger "IndexBoard/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic refresh jobs.
type Scheduler struct {
	cron      *cron.Cron
	refresher *usecase.Refresher
	l         *applogger.Logger
	ctx       context.Context
}

func New(ctx context.Context, refresher *usecase.Refresher, l *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		l:         l,
		ctx:       ctx,
	}
}

// Register wires the chart warm-up and daily history jobs. Specs use the
// six-field form with seconds.
func (s *Scheduler) Register(intradayCron, dailyCron string) error {
	if _, err := s.cron.AddFunc(intradayCron, s.refreshCharts); err != nil {
		return fmt.Errorf("register intraday refresh: %w", err)
	}
	if _, err := s.cron.AddFunc(dailyCron, s.syncDailyHistory); err != nil {
		return fmt.Errorf("register daily sync: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.l.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.l.Info("scheduler stopped")
}

// RunNow executes both jobs immediately, used at startup to warm caches
// and backfill history before traffic arrives.
func (s *Scheduler) RunNow() {
	s.refreshCharts()
	s.syncDailyHistory()
}

func (s *Scheduler) refreshCharts() {
	if err := s.refresher.RefreshCharts(s.ctx); err != nil {
		s.l.Warn("chart refresh incomplete", applogger.Error(err))
	}
}

func (s *Scheduler) syncDailyHistory() {
	if err := s.refresher.SyncDailyHistory(s.ctx); err != nil {
		s.l.Error("daily history sync failed", applogger.Error(err))
	}
}

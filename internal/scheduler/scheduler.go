package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"WeeklyHigh/internal/model"
	"WeeklyHigh/internal/notifier"
	"WeeklyHigh/internal/recorder"
)

// Collector produces one report per call.
type Collector interface {
	Collect(trigger model.Trigger) (*model.HighReport, error)
}

// Scheduler runs the weekly high report on demand or on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector Collector
	Console   notifier.Notifier   // receives the full report
	Chats     []notifier.Notifier // receive the digest
	Recorder  recorder.Recorder
	Ctx       context.Context
	log       zerolog.Logger
}

// NewScheduler creates a new Scheduler. console may be nil for headless runs.
func NewScheduler(ctx context.Context, col Collector, console notifier.Notifier, chats []notifier.Notifier, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Console:   console,
		Chats:     chats,
		Recorder:  rec,
		Ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register schedules the weekly report.
func (s *Scheduler) Register(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) weeklyTask() {
	if _, err := s.RunOnce(model.TriggerScheduled); err != nil {
		s.log.Error().Err(err).Msg("weekly task failed")
	}
}

// RunOnce collects a report, delivers it and records it.
// Delivery and recording failures are logged; only collection failures are returned.
func (s *Scheduler) RunOnce(trigger model.Trigger) (*model.HighReport, error) {
	s.log.Info().Str("trigger", string(trigger)).Msg("running weekly high task")
	rep, err := s.Collector.Collect(trigger)
	if err != nil {
		s.trySend(s.Chats, fmt.Sprintf("Weekly high run failed: %v", err))
		return nil, fmt.Errorf("collect: %w", err)
	}

	if s.Console != nil {
		s.trySend([]notifier.Notifier{s.Console}, notifier.FormatReport(rep))
	}
	s.trySend(s.Chats, notifier.FormatDigest(rep))

	if err := s.Recorder.RecordRun(rep); err != nil {
		s.log.Error().Err(err).Str("run_id", rep.RunID).Msg("record run")
	}
	return rep, nil
}

func (s *Scheduler) trySend(targets []notifier.Notifier, text string) {
	for _, n := range targets {
		if err := n.Send(s.Ctx, text); err != nil {
			s.log.Error().Err(err).Str("notifier", n.Name()).Msg("send failed")
		}
	}
}

// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

/*
Package jobs runs the platform's scheduled background work.

Currently that is a single job: the nightly archiver, which retires events
that ended longer ago than the configured retention. Schedules are evaluated
in the catalog's target time zone so "03:30" means Copenhagen night, not
container-UTC night.
*/
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/byfest/byfest/internal/catalog"
)

// jobTimeout bounds one archiver run; a stuck snapshot read must not pile up
// behind the next scheduled run.
const jobTimeout = 5 * time.Minute

// Archiver is the slice of the events service the job needs.
type Archiver interface {
	ArchiveEnded(context context.Context, now time.Time, retention time.Duration) (int64, error)
}

// # Scheduler

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler constructs a [Scheduler] evaluating schedules in the catalog's
// target zone.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(catalog.TargetLocation())),
		logger: logger,
	}
}

/*
RegisterArchiver schedules the nightly archival run.

Parameters:
  - spec: string (Standard five-field cron expression, e.g. "30 3 * * *")
  - archiver: Archiver
  - retention: time.Duration (Grace period after an event ends)

Returns:
  - error: Malformed cron expression
*/
func (scheduler *Scheduler) RegisterArchiver(spec string, archiver Archiver, retention time.Duration) error {
	_, err := scheduler.cron.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		archived, err := archiver.ArchiveEnded(runCtx, time.Now(), retention)
		if err != nil {
			scheduler.logger.Error("archiver_run_failed", slog.Any("error", err))
			return
		}

		scheduler.logger.Info("archiver_run_completed", slog.Int64("archived", archived))
	})
	if err != nil {
		return err
	}

	scheduler.logger.Info("archiver_scheduled",
		slog.String("spec", spec),
		slog.Duration("retention", retention),
	)
	return nil
}

// Start launches the cron runner in its own goroutine.
func (scheduler *Scheduler) Start() {
	scheduler.cron.Start()
}

// Stop halts scheduling and waits for any running job to finish.
func (scheduler *Scheduler) Stop() {
	stopCtx := scheduler.cron.Stop()
	<-stopCtx.Done()
}

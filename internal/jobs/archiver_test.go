// Copyright (c) 2026 Byfest. All rights reserved.
// Author: kontakt@byfest.dk

package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchiver struct {
	calls     int
	retention time.Duration
}

func (f *fakeArchiver) ArchiveEnded(_ context.Context, _ time.Time, retention time.Duration) (int64, error) {
	f.calls++
	f.retention = retention
	return 3, nil
}

func TestRegisterArchiver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("valid_schedule_registers", func(t *testing.T) {
		scheduler := NewScheduler(logger)
		err := scheduler.RegisterArchiver("30 3 * * *", &fakeArchiver{}, 90*24*time.Hour)
		require.NoError(t, err)
	})

	t.Run("malformed_schedule_rejected", func(t *testing.T) {
		scheduler := NewScheduler(logger)
		err := scheduler.RegisterArchiver("not a cron line", &fakeArchiver{}, time.Hour)
		assert.Error(t, err)
	})

	t.Run("job_invokes_archiver", func(t *testing.T) {
		scheduler := NewScheduler(logger)
		archiver := &fakeArchiver{}

		// @every fires on a fixed interval, which keeps the test clock-free
		// enough to observe at least one run quickly.
		require.NoError(t, scheduler.RegisterArchiver("@every 10ms", archiver, time.Hour))

		scheduler.Start()
		time.Sleep(50 * time.Millisecond)
		scheduler.Stop()

		assert.GreaterOrEqual(t, archiver.calls, 1)
		assert.Equal(t, time.Hour, archiver.retention)
	})
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Nikulin

package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/anikulin/note-taker-pro/internal/logger"
)

// Job runs the sync engine periodically in the background. It is idle
// until Start is called. Conflicts found by background runs are kept and
// handed to the UI on request; background sync never prompts.
type Job struct {
	engine *Engine
	logger *logger.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	conflicts []string
}

// NewJob creates a [Job] driving the given engine.
func NewJob(engine *Engine, log *logger.Logger) *Job {
	return &Job{
		engine: engine,
		logger: &logger.Logger{Logger: log.With().Str("component", "sync-job").Logger()},
	}
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. If interval is zero or negative
// it defaults to 5 minutes. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *Job) runOnce(ctx context.Context) {
	report, err := j.engine.Sync(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Msg("background sync failed")
		return
	}

	if len(report.Conflicts) == 0 {
		return
	}

	j.mu.Lock()
	j.conflicts = j.conflicts[:0]
	for _, c := range report.Conflicts {
		j.conflicts = append(j.conflicts, c.NoteID)
	}
	j.mu.Unlock()
}

// PendingConflicts returns the note IDs left in conflict by the most
// recent background run.
func (j *Job) PendingConflicts() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.conflicts...)
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *Job) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

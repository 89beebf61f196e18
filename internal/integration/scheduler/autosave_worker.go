// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/application/usecase/savings"
)

// AutoSaver performs one scheduled deposit for a goal.
type AutoSaver interface {
	Execute(ctx context.Context, input savings.RunAutoSaveInput) (*savings.RunAutoSaveOutput, error)
}

// AutoSaveWorker scans for goals whose auto-save date has arrived and runs
// them through the regular deposit path.
type AutoSaveWorker struct {
	goalRepo  adapter.SavingsGoalRepository
	autoSave  AutoSaver
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// AutoSaveWorkerConfig holds configuration for the auto-save worker.
type AutoSaveWorkerConfig struct {
	Interval  time.Duration
	BatchSize int
}

// DefaultAutoSaveWorkerConfig returns the default worker configuration.
func DefaultAutoSaveWorkerConfig() AutoSaveWorkerConfig {
	return AutoSaveWorkerConfig{
		Interval:  time.Hour,
		BatchSize: 100,
	}
}

// NewAutoSaveWorker creates a new auto-save worker.
func NewAutoSaveWorker(goalRepo adapter.SavingsGoalRepository, autoSave AutoSaver, config AutoSaveWorkerConfig) *AutoSaveWorker {
	defaults := DefaultAutoSaveWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &AutoSaveWorker{
		goalRepo:  goalRepo,
		autoSave:  autoSave,
		interval:  config.Interval,
		batchSize: config.BatchSize,
		now:       time.Now,
	}
}

// Start runs a cycle immediately and then on every tick. It blocks until the
// context is cancelled.
func (w *AutoSaveWorker) Start(ctx context.Context) {
	slog.Info("Auto-save worker started",
		"interval", w.interval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Auto-save worker shutting down")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// ProcessNow runs one cycle synchronously and returns the number of goals
// that were deposited into.
func (w *AutoSaveWorker) ProcessNow(ctx context.Context) int {
	return w.runCycle(ctx)
}

// runCycle runs every due goal at most once. Batches are read past the last
// goal of the previous batch, so goals that stay due after a failed run never
// hide later ones. An overdue goal advanced within its due window can show up
// again further on and is skipped.
func (w *AutoSaveWorker) runCycle(ctx context.Context) int {
	now := w.now().UTC()
	seen := make(map[uuid.UUID]struct{})
	executed, failed := 0, 0
	var cursor *adapter.DueCursor

	for {
		goals, err := w.goalRepo.FindDueForAutoSave(ctx, now, cursor, w.batchSize)
		if err != nil {
			slog.Error("Failed to load due auto-save goals", "error", err)
			break
		}

		for _, goal := range goals {
			if ctx.Err() != nil {
				return executed
			}
			if _, ok := seen[goal.ID]; ok {
				continue
			}
			seen[goal.ID] = struct{}{}

			out, err := w.autoSave.Execute(ctx, savings.RunAutoSaveInput{
				GoalID: goal.ID,
				UserID: goal.UserID,
				Now:    now,
			})
			if err != nil {
				failed++
				slog.Error("Auto-save failed",
					"goal_id", goal.ID,
					"user_id", goal.UserID,
					"error", err,
				)
				continue
			}
			if out.Executed {
				executed++
				slog.Debug("Auto-save executed", "goal_id", goal.ID, "next_date", out.Goal.NextAutoSaveDate)
			}
		}

		if len(goals) == 0 {
			break
		}
		last := goals[len(goals)-1]
		cursor = &adapter.DueCursor{NextAutoSaveDate: *last.NextAutoSaveDate, ID: last.ID}
		if len(goals) < w.batchSize {
			break
		}
	}

	if executed > 0 || failed > 0 {
		slog.Info("Auto-save cycle finished", "executed", executed, "failed", failed)
	}
	return executed
}

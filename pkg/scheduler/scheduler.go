// Package scheduler runs the analytics workflow on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs the analytics report once an hour.
const DefaultSchedule = "0 * * * *"

const analyticsPeriod = "24h"

// Runner is the slice of the executor the scheduler needs.
type Runner interface {
	Execute(ctx context.Context, workflowID string, inputs map[string]any, triggeredBy string, metadata map[string]string) (*models.ExecutionContext, error)
}

// AnalyticsScheduler periodically triggers the marketplace analytics
// workflow. A run that overlaps a still-executing one is skipped.
type AnalyticsScheduler struct {
	runner   Runner
	logger   *slog.Logger
	schedule string
	cron     *cron.Cron
}

// NewAnalyticsScheduler creates a scheduler for the given cron expression.
// The expression is validated up front so a bad configuration fails at
// startup rather than at the first tick.
func NewAnalyticsScheduler(runner Runner, schedule string, logger *slog.Logger) (*AnalyticsScheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid analytics schedule '%s': %w", schedule, err)
	}

	return &AnalyticsScheduler{
		runner:   runner,
		logger:   logger.With("module", "analytics_scheduler"),
		schedule: schedule,
	}, nil
}

// Start registers the cron job and begins scheduling. It returns after the
// scheduler is running; ticks execute on the cron goroutine.
func (s *AnalyticsScheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	if _, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to register analytics cron job: %w", err)
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Analytics scheduler started", "schedule", s.schedule)

	return nil
}

// Stop halts scheduling. In-flight runs finish on their own.
func (s *AnalyticsScheduler) Stop(ctx context.Context) error {
	if s.cron != nil {
		s.cron.Stop()
		s.logger.InfoContext(ctx, "Analytics scheduler stopped")
	}

	return nil
}

func (s *AnalyticsScheduler) runOnce(ctx context.Context) {
	inputs := map[string]any{
		catalog.InputAnalyticsRequest: map[string]any{"period": analyticsPeriod},
	}

	execution, err := s.runner.Execute(ctx, catalog.WorkflowAnalyticsProcessing, inputs, "scheduler", nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Scheduled analytics run failed", "error", err)

		return
	}

	s.logger.InfoContext(ctx, "Scheduled analytics run completed",
		"execution_id", execution.ID, "status", execution.Status)
}

package scheduler

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	workflowIDs []string
	inputs      []map[string]any
	triggeredBy []string
	err         error
}

func (r *recordingRunner) Execute(_ context.Context, workflowID string, inputs map[string]any, triggeredBy string, _ map[string]string) (*models.ExecutionContext, error) {
	r.workflowIDs = append(r.workflowIDs, workflowID)
	r.inputs = append(r.inputs, inputs)
	r.triggeredBy = append(r.triggeredBy, triggeredBy)

	if r.err != nil {
		return nil, r.err
	}

	execution := models.NewExecutionContext("exec-scheduled", workflowID, inputs)
	execution.MarkSuccess()

	return execution, nil
}

func TestNewAnalyticsScheduler_RejectsInvalidExpression(t *testing.T) {
	_, err := NewAnalyticsScheduler(&recordingRunner{}, "not a cron expr", slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid analytics schedule")
}

func TestNewAnalyticsScheduler_DefaultsSchedule(t *testing.T) {
	scheduler, err := NewAnalyticsScheduler(&recordingRunner{}, "", slog.Default())
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, scheduler.schedule)
}

func TestAnalyticsScheduler_RunOnce(t *testing.T) {
	runner := &recordingRunner{}
	scheduler, err := NewAnalyticsScheduler(runner, "*/5 * * * *", slog.Default())
	require.NoError(t, err)

	scheduler.runOnce(context.Background())

	require.Len(t, runner.workflowIDs, 1)
	assert.Equal(t, catalog.WorkflowAnalyticsProcessing, runner.workflowIDs[0])
	assert.Equal(t, "scheduler", runner.triggeredBy[0])

	request, ok := runner.inputs[0][catalog.InputAnalyticsRequest].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "24h", request["period"])
}

func TestAnalyticsScheduler_RunOnceSwallowsFailures(t *testing.T) {
	runner := &recordingRunner{err: assert.AnError}
	scheduler, err := NewAnalyticsScheduler(runner, "*/5 * * * *", slog.Default())
	require.NoError(t, err)

	// Must not panic; the failure is logged and the next tick still fires.
	scheduler.runOnce(context.Background())
	scheduler.runOnce(context.Background())

	assert.Len(t, runner.workflowIDs, 2)
}

func TestAnalyticsScheduler_StartStop(t *testing.T) {
	runner := &recordingRunner{}
	scheduler, err := NewAnalyticsScheduler(runner, "0 0 1 1 *", slog.Default())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, scheduler.Start(ctx))
	require.NoError(t, scheduler.Stop(ctx))
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

const treasuryTotalSteps = 1

// TreasuryPipeline is the placeholder for treasury-operations-secure. It
// accepts the operation without downstream calls; a real treasury sequence
// replaces this pipeline behind the same registry entry.
type TreasuryPipeline struct {
	logger *slog.Logger
}

// NewTreasuryPipeline creates the treasury-operations-secure pipeline.
func NewTreasuryPipeline(logger *slog.Logger) *TreasuryPipeline {
	return &TreasuryPipeline{
		logger: logger.With("module", "treasury_pipeline"),
	}
}

func (p *TreasuryPipeline) WorkflowID() string {
	return catalog.WorkflowTreasuryOperations
}

func (p *TreasuryPipeline) TotalSteps() int {
	return treasuryTotalSteps
}

func (p *TreasuryPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	if _, err := requestObject(execution, catalog.InputTreasuryRequest); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "Treasury operation accepted without downstream execution",
		"execution_id", execution.ID)

	execution.RecordStep("treasury operation accepted")
	execution.MergeResults(map[string]any{"treasuryStatus": "accepted"})

	return nil
}

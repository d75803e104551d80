package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/catalog"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

const analyticsTotalSteps = 5

// DefaultAnalyticsPeriod is used when the request names no reporting window.
const DefaultAnalyticsPeriod = "24h"

// AnalyticsPipeline aggregates marketplace listing and order analytics into a
// report. This is the read-only path: no signature gate, no side effects
// beyond the report id it mints.
type AnalyticsPipeline struct {
	collaborators Collaborators
	logger        *slog.Logger
}

// NewAnalyticsPipeline creates the marketplace-analytics-processing pipeline.
func NewAnalyticsPipeline(collaborators Collaborators, logger *slog.Logger) *AnalyticsPipeline {
	return &AnalyticsPipeline{
		collaborators: collaborators,
		logger:        logger.With("module", "analytics_pipeline"),
	}
}

func (p *AnalyticsPipeline) WorkflowID() string {
	return catalog.WorkflowAnalyticsProcessing
}

func (p *AnalyticsPipeline) TotalSteps() int {
	return analyticsTotalSteps
}

func (p *AnalyticsPipeline) Run(ctx context.Context, execution *models.ExecutionContext) error {
	request, err := requestObject(execution, catalog.InputAnalyticsRequest)
	if err != nil {
		return err
	}

	period := stringField(request, "period")
	if period == "" {
		period = DefaultAnalyticsPeriod
	}

	listings, err := p.collaborators.Marketplace.ListingAnalytics(ctx, period)
	if err != nil {
		return downstreamError("collect-listing-analytics", err)
	}

	execution.RecordStep("listing analytics collected")

	orders, err := p.collaborators.Marketplace.OrderAnalytics(ctx, period)
	if err != nil {
		return downstreamError("collect-order-analytics", err)
	}

	execution.RecordStep("order analytics collected")

	trends := map[string]any{
		"listings": trendOf(listings.Points),
		"orders":   trendOf(orders.Points),
	}
	execution.RecordStep("trends computed")

	dataPoints := len(listings.Points) + len(orders.Points)
	aggregate := map[string]any{
		"period":       period,
		"listingTotal": sumOf(listings.Points),
		"orderTotal":   sumOf(orders.Points),
	}
	execution.RecordStep("metrics aggregated")

	reportID := "report-" + uuid.New().String()
	execution.RecordStep("report generated")
	execution.MergeResults(map[string]any{
		"reportId":   reportID,
		"dataPoints": dataPoints,
		"trends":     trends,
		"aggregate":  aggregate,
	})

	return nil
}

// trendOf reports the direction of a series by comparing its endpoints.
func trendOf(points []clients.AnalyticsPoint) string {
	if len(points) < 2 {
		return "flat"
	}

	first := points[0].Value
	last := points[len(points)-1].Value

	switch {
	case last > first:
		return "up"
	case last < first:
		return "down"
	default:
		return "flat"
	}
}

func sumOf(points []clients.AnalyticsPoint) float64 {
	var total float64
	for _, point := range points {
		total += point.Value
	}

	return total
}

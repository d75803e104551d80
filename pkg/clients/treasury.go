package clients

import (
	"context"
	"log/slog"
)

// TreasuryClient talks to the treasury service that executes accepted
// treasury operations.
type TreasuryClient struct {
	core *httpCore
}

// NewTreasuryClient creates a treasury service client.
func NewTreasuryClient(logger *slog.Logger, baseURL string) *TreasuryClient {
	return &TreasuryClient{
		core: newHTTPCore("treasury", baseURL, BusinessPolicy, logger),
	}
}

type treasurySubmitRequest struct {
	Operation map[string]any `json:"operation"`
}

// TreasuryReceipt acknowledges a submitted treasury operation.
type TreasuryReceipt struct {
	OperationID string `json:"operation_id"`
	Status      string `json:"status"`
}

// SubmitOperation submits a treasury operation for execution.
func (c *TreasuryClient) SubmitOperation(ctx context.Context, operation map[string]any) (*TreasuryReceipt, error) {
	var result TreasuryReceipt

	err := c.core.postJSON(ctx, "SubmitOperation", "/api/v1/treasury/operations",
		treasurySubmitRequest{Operation: operation}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

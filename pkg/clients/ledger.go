package clients

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// LedgerClient talks to the ledger service that validates transactions
// before funds move.
type LedgerClient struct {
	core *httpCore
}

// NewLedgerClient creates a ledger service client.
func NewLedgerClient(logger *slog.Logger, baseURL string) *LedgerClient {
	return &LedgerClient{
		core: newHTTPCore("ledger", baseURL, BusinessPolicy, logger),
	}
}

type ledgerValidateRequest struct {
	Transaction map[string]any `json:"transaction"`
}

// LedgerValidation is the ledger verdict on a transaction. The ledger signs
// its verdict; callers verify Signature before trusting Approved.
type LedgerValidation struct {
	LedgerRef string                   `json:"ledger_ref"`
	Approved  bool                     `json:"approved"`
	Message   string                   `json:"message,omitempty"`
	Signature *models.SignaturePayload `json:"signature,omitempty"`
}

// ValidateTransaction submits a transaction for ledger validation.
func (c *LedgerClient) ValidateTransaction(ctx context.Context, transaction map[string]any) (*LedgerValidation, error) {
	var result LedgerValidation

	err := c.core.postJSON(ctx, "ValidateTransaction", "/api/v1/ledger/validate",
		ledgerValidateRequest{Transaction: transaction}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

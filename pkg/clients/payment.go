package clients

import (
	"context"
	"log/slog"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

// PaymentClient talks to the payment processing service.
type PaymentClient struct {
	core *httpCore
}

// NewPaymentClient creates a payment service client.
func NewPaymentClient(logger *slog.Logger, baseURL string) *PaymentClient {
	return &PaymentClient{
		core: newHTTPCore("payment", baseURL, BusinessPolicy, logger),
	}
}

type paymentProcessRequest struct {
	Payment      map[string]any `json:"payment"`
	ValidationID string         `json:"validation_id"`
}

// PaymentResult is the payment service response. Signature carries the
// result signature verified by the dual validation step.
type PaymentResult struct {
	PaymentID     string                   `json:"payment_id"`
	TransactionID string                   `json:"transaction_id"`
	Status        string                   `json:"status"`
	Signature     *models.SignaturePayload `json:"signature,omitempty"`
}

// Process submits a payment for processing. The validation id issued by the
// signature gate travels with the payment so the processor can verify the
// request passed the gate.
func (c *PaymentClient) Process(ctx context.Context, payment map[string]any, validationID string) (*PaymentResult, error) {
	var result PaymentResult

	err := c.core.postJSON(ctx, "Process", "/api/v1/payments",
		paymentProcessRequest{Payment: payment, ValidationID: validationID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

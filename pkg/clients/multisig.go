package clients

import (
	"context"
	"log/slog"
)

// MultisigClient talks to the multisig provisioning service that generates,
// persists, publishes, and ingests wallet artifacts during onboarding.
type MultisigClient struct {
	core *httpCore
}

// NewMultisigClient creates a multisig service client.
func NewMultisigClient(logger *slog.Logger, baseURL string) *MultisigClient {
	return &MultisigClient{
		core: newHTTPCore("multisig", baseURL, BusinessPolicy, logger),
	}
}

type multisigGenerateRequest struct {
	UserID string `json:"user_id"`
}

// MultisigWallet is a generated multisig wallet artifact set.
type MultisigWallet struct {
	MultisigID string            `json:"multisig_id"`
	UserID     string            `json:"user_id"`
	Chain      string            `json:"chain"`
	Address    string            `json:"address"`
	Artifacts  map[string]string `json:"artifacts,omitempty"`
}

// Generate creates a multisig wallet artifact set for a user. An empty
// MultisigID means generation produced no usable artifacts.
func (c *MultisigClient) Generate(ctx context.Context, userID string) (*MultisigWallet, error) {
	var result MultisigWallet

	err := c.core.postJSON(ctx, "Generate", "/api/v1/multisig/generate",
		multisigGenerateRequest{UserID: userID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type multisigPersistRequest struct {
	Wallet MultisigWallet `json:"wallet"`
}

// PersistReceipt confirms durable storage of a wallet artifact set.
type PersistReceipt struct {
	MultisigID string `json:"multisig_id"`
	Persisted  bool   `json:"persisted"`
}

// Persist durably stores the wallet artifact set.
func (c *MultisigClient) Persist(ctx context.Context, wallet MultisigWallet) (*PersistReceipt, error) {
	var result PersistReceipt

	err := c.core.postJSON(ctx, "Persist", "/api/v1/multisig/persist",
		multisigPersistRequest{Wallet: wallet}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type multisigPublishRequest struct {
	Wallet MultisigWallet `json:"wallet"`
}

// PublishReceipt reports where the wallet artifacts were published.
type PublishReceipt struct {
	S3Key  string `json:"s3_key"`
	S3ETag string `json:"s3_etag"`
}

// Publish uploads the wallet artifacts to object storage.
func (c *MultisigClient) Publish(ctx context.Context, wallet MultisigWallet) (*PublishReceipt, error) {
	var result PublishReceipt

	err := c.core.postJSON(ctx, "Publish", "/api/v1/multisig/publish",
		multisigPublishRequest{Wallet: wallet}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type multisigIngestRequest struct {
	MultisigID string `json:"multisig_id"`
	S3Key      string `json:"s3_key"`
}

// IngestReceipt confirms downstream ingestion of published artifacts.
type IngestReceipt struct {
	MultisigID string `json:"multisig_id"`
	Confirmed  bool   `json:"confirmed"`
}

// Ingest asks the downstream consumer to confirm ingestion of the published
// artifacts.
func (c *MultisigClient) Ingest(ctx context.Context, multisigID, s3Key string) (*IngestReceipt, error) {
	var result IngestReceipt

	err := c.core.postJSON(ctx, "Ingest", "/api/v1/multisig/ingest",
		multisigIngestRequest{MultisigID: multisigID, S3Key: s3Key}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

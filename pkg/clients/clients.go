// Package clients provides the downstream collaborator clients used by the
// workflow pipelines. Every client is a narrow JSON-over-HTTP wrapper with a
// role-appropriate timeout and retry policy.
package clients

import "log/slog"

// Config holds the base URLs of every downstream collaborator.
type Config struct {
	SignatureServiceURL    string
	LedgerServiceURL       string
	PaymentServiceURL      string
	MarketplaceServiceURL  string
	UserServiceURL         string
	MultisigServiceURL     string
	NotificationServiceURL string
	IdentityServiceURL     string
	TreasuryServiceURL     string
}

// Set bundles one client per downstream collaborator.
type Set struct {
	Signature    *SignatureClient
	Ledger       *LedgerClient
	Payment      *PaymentClient
	Marketplace  *MarketplaceClient
	User         *UserClient
	Multisig     *MultisigClient
	Notification *NotificationClient
	Identity     *IdentityClient
	Treasury     *TreasuryClient
}

// NewSet constructs every downstream client from the endpoint configuration.
func NewSet(logger *slog.Logger, config Config) *Set {
	return &Set{
		Signature:    NewSignatureClient(logger, config.SignatureServiceURL),
		Ledger:       NewLedgerClient(logger, config.LedgerServiceURL),
		Payment:      NewPaymentClient(logger, config.PaymentServiceURL),
		Marketplace:  NewMarketplaceClient(logger, config.MarketplaceServiceURL),
		User:         NewUserClient(logger, config.UserServiceURL),
		Multisig:     NewMultisigClient(logger, config.MultisigServiceURL),
		Notification: NewNotificationClient(logger, config.NotificationServiceURL),
		Identity:     NewIdentityClient(logger, config.IdentityServiceURL),
		Treasury:     NewTreasuryClient(logger, config.TreasuryServiceURL),
	}
}

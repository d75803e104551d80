package pipeline

import (
	"context"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/clients"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
)

func validVerdict(id string) *models.SignatureValidationResult {
	return &models.SignatureValidationResult{ValidationID: id, Valid: true}
}

func invalidVerdict(message string) *models.SignatureValidationResult {
	return &models.SignatureValidationResult{ValidationID: "val-rejected", Valid: false, Message: message}
}

type dualCall struct {
	payload             models.SignaturePayload
	requestValidationID string
}

type signatureStub struct {
	requests []models.SignaturePayload
	results  []models.SignaturePayload
	duals    []dualCall

	requestVerdict *models.SignatureValidationResult
	requestErr     error
	resultVerdict  *models.SignatureValidationResult
	resultErr      error
	dualVerdict    *models.SignatureValidationResult
	dualErr        error
}

func (s *signatureStub) ValidateRequest(_ context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error) {
	s.requests = append(s.requests, payload)
	if s.requestErr != nil {
		return nil, s.requestErr
	}

	if s.requestVerdict != nil {
		return s.requestVerdict, nil
	}

	return validVerdict("val-request"), nil
}

func (s *signatureStub) ValidateResult(_ context.Context, payload models.SignaturePayload) (*models.SignatureValidationResult, error) {
	s.results = append(s.results, payload)
	if s.resultErr != nil {
		return nil, s.resultErr
	}

	if s.resultVerdict != nil {
		return s.resultVerdict, nil
	}

	return validVerdict("val-result"), nil
}

func (s *signatureStub) ValidateDual(_ context.Context, payload models.SignaturePayload, requestValidationID string) (*models.SignatureValidationResult, error) {
	s.duals = append(s.duals, dualCall{payload: payload, requestValidationID: requestValidationID})
	if s.dualErr != nil {
		return nil, s.dualErr
	}

	if s.dualVerdict != nil {
		return s.dualVerdict, nil
	}

	return validVerdict("val-dual"), nil
}

type ledgerStub struct {
	calls   int
	verdict *clients.LedgerValidation
	err     error
}

func (s *ledgerStub) ValidateTransaction(_ context.Context, _ map[string]any) (*clients.LedgerValidation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	if s.verdict != nil {
		return s.verdict, nil
	}

	return &clients.LedgerValidation{LedgerRef: "ledger-1", Approved: true}, nil
}

type paymentStub struct {
	calls  int
	result *clients.PaymentResult
	err    error
}

func (s *paymentStub) Process(_ context.Context, _ map[string]any, _ string) (*clients.PaymentResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	if s.result != nil {
		return s.result, nil
	}

	return &clients.PaymentResult{
		PaymentID:     "pay-1",
		TransactionID: "txn-1",
		Status:        "completed",
		Signature:     &models.SignaturePayload{Signer: "payment-service", Value: "sig"},
	}, nil
}

type marketplaceStub struct {
	listingCalls      int
	availabilityCalls int
	orderCalls        int
	getOrderCalls     int
	escrowCalls       int
	escrowAction      string

	availability *clients.ListingAvailability
	order        *clients.Order
	analyticsErr error
	listings     *clients.AnalyticsSlice
	orders       *clients.AnalyticsSlice
}

func (s *marketplaceStub) CreateListing(_ context.Context, _ map[string]any, _ string) (*clients.ListingResult, error) {
	s.listingCalls++

	return &clients.ListingResult{ListingID: "lst-1", TokenID: "tok-1", Status: "active"}, nil
}

func (s *marketplaceStub) CheckListingAvailability(_ context.Context, listingID string, _ int64) (*clients.ListingAvailability, error) {
	s.availabilityCalls++
	if s.availability != nil {
		return s.availability, nil
	}

	return &clients.ListingAvailability{ListingID: listingID, Available: true, QuantityAvailable: 100}, nil
}

func (s *marketplaceStub) CreateOrder(_ context.Context, _ map[string]any, _ string) (*clients.OrderResult, error) {
	s.orderCalls++

	return &clients.OrderResult{OrderID: "ord-1", ListingID: "lst-1", Status: "pending"}, nil
}

func (s *marketplaceStub) GetOrder(_ context.Context, orderID string) (*clients.Order, error) {
	s.getOrderCalls++
	if s.order != nil {
		return s.order, nil
	}

	return &clients.Order{OrderID: orderID, Status: "funded", BuyerID: "buyer-1", SellerID: "seller-1"}, nil
}

func (s *marketplaceStub) UpdateEscrow(_ context.Context, orderID, action, _ string) (*clients.EscrowResult, error) {
	s.escrowCalls++
	s.escrowAction = action

	return &clients.EscrowResult{EscrowID: "esc-1", OrderID: orderID, Status: "updated"}, nil
}

func (s *marketplaceStub) ListingAnalytics(_ context.Context, period string) (*clients.AnalyticsSlice, error) {
	if s.analyticsErr != nil {
		return nil, s.analyticsErr
	}

	if s.listings != nil {
		return s.listings, nil
	}

	return &clients.AnalyticsSlice{Metric: "listings", Period: period, Points: []clients.AnalyticsPoint{{Value: 1}, {Value: 3}}}, nil
}

func (s *marketplaceStub) OrderAnalytics(_ context.Context, period string) (*clients.AnalyticsSlice, error) {
	if s.orders != nil {
		return s.orders, nil
	}

	return &clients.AnalyticsSlice{Metric: "orders", Period: period, Points: []clients.AnalyticsPoint{{Value: 5}, {Value: 2}}}, nil
}

type userStub struct {
	calls   int
	profile *clients.UserProfile
	err     error
}

func (s *userStub) GetProfile(_ context.Context, userID string) (*clients.UserProfile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	if s.profile != nil {
		return s.profile, nil
	}

	return &clients.UserProfile{UserID: userID, Email: "u1@example.com", KYCLevel: "basic"}, nil
}

type multisigStub struct {
	generateCalls int
	persistCalls  int
	publishCalls  int
	ingestCalls   int

	wallet     *clients.MultisigWallet
	persistErr error
	publishErr error
	ingestErr  error
	ingest     *clients.IngestReceipt
}

func (s *multisigStub) Generate(_ context.Context, userID string) (*clients.MultisigWallet, error) {
	s.generateCalls++
	if s.wallet != nil {
		return s.wallet, nil
	}

	return &clients.MultisigWallet{MultisigID: "ms-1", UserID: userID, Chain: "ethereum", Address: "0xabc"}, nil
}

func (s *multisigStub) Persist(_ context.Context, wallet clients.MultisigWallet) (*clients.PersistReceipt, error) {
	s.persistCalls++
	if s.persistErr != nil {
		return nil, s.persistErr
	}

	return &clients.PersistReceipt{MultisigID: wallet.MultisigID, Persisted: true}, nil
}

func (s *multisigStub) Publish(_ context.Context, wallet clients.MultisigWallet) (*clients.PublishReceipt, error) {
	s.publishCalls++
	if s.publishErr != nil {
		return nil, s.publishErr
	}

	return &clients.PublishReceipt{S3Key: "multisig/" + wallet.MultisigID + ".json", S3ETag: "etag-1"}, nil
}

func (s *multisigStub) Ingest(_ context.Context, multisigID, _ string) (*clients.IngestReceipt, error) {
	s.ingestCalls++
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}

	if s.ingest != nil {
		return s.ingest, nil
	}

	return &clients.IngestReceipt{MultisigID: multisigID, Confirmed: true}, nil
}

type testCollaborators struct {
	signature   *signatureStub
	ledger      *ledgerStub
	payment     *paymentStub
	marketplace *marketplaceStub
	user        *userStub
	multisig    *multisigStub
}

func newTestCollaborators() (Collaborators, *testCollaborators) {
	stubs := &testCollaborators{
		signature:   &signatureStub{},
		ledger:      &ledgerStub{},
		payment:     &paymentStub{},
		marketplace: &marketplaceStub{},
		user:        &userStub{},
		multisig:    &multisigStub{},
	}

	return Collaborators{
		Signature:   stubs.signature,
		Ledger:      stubs.ledger,
		Payment:     stubs.payment,
		Marketplace: stubs.marketplace,
		User:        stubs.user,
		Multisig:    stubs.multisig,
	}, stubs
}

func signedRequest(signer string, extra map[string]any) map[string]any {
	request := map[string]any{
		"signature": map[string]any{
			"signer":          signer,
			"value":           "sig-value",
			"algorithm":       "dilithium",
			"nonce":           "nonce-1",
			"sequence_number": float64(7),
			"timestamp":       float64(1724572800),
		},
	}

	for key, value := range extra {
		request[key] = value
	}

	return request
}

func newExecution(workflowID string, inputs map[string]any) *models.ExecutionContext {
	return models.NewExecutionContext("exec-test", workflowID, inputs)
}

// Package catalog holds the immutable table of orchestratable workflow
// definitions. The catalog is seeded at construction and never mutated;
// executions read definitions, they do not change them.
package catalog

import (
	"fmt"
	"time"

	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/models"
	"github.com/mistic96/QuantumSkyLink-v2-8-sub007/pkg/saga"
)

// Workflow identifiers. These are the only ids the executor dispatches.
const (
	WorkflowPaymentProcessing   = "payment-processing-zero-trust"
	WorkflowUserOnboarding      = "user-onboarding-optimized"
	WorkflowTreasuryOperations  = "treasury-operations-secure"
	WorkflowListingCreation     = "marketplace-listing-creation"
	WorkflowOrderProcessing     = "marketplace-order-processing"
	WorkflowEscrowManagement    = "marketplace-escrow-management"
	WorkflowAnalyticsProcessing = "marketplace-analytics-processing"
)

// Input bag keys declared by the workflow definitions.
const (
	InputPaymentRequest   = "paymentRequest"
	InputUserRegistration = "userRegistration"
	InputTreasuryRequest  = "treasuryOperation"
	InputListingRequest   = "listingRequest"
	InputOrderRequest     = "orderRequest"
	InputEscrowRequest    = "escrowRequest"
	InputAnalyticsRequest = "analyticsRequest"
)

// Catalog is the read-only registry of workflow definitions.
type Catalog struct {
	definitions map[string]models.WorkflowDefinition
	order       []string
}

// New builds a catalog from explicit definitions, keeping declaration order.
// Later definitions with a duplicate id replace earlier ones.
func New(definitions ...models.WorkflowDefinition) *Catalog {
	catalog := &Catalog{
		definitions: make(map[string]models.WorkflowDefinition, len(definitions)),
		order:       make([]string, 0, len(definitions)),
	}

	for _, definition := range definitions {
		if _, ok := catalog.definitions[definition.ID]; !ok {
			catalog.order = append(catalog.order, definition.ID)
		}

		catalog.definitions[definition.ID] = definition
	}

	return catalog
}

// Default builds the catalog with every supported workflow definition.
func Default() *Catalog {
	definitions := []models.WorkflowDefinition{
		{
			ID:                WorkflowPaymentProcessing,
			Name:              "Payment Processing (Zero Trust)",
			Description:       "Signature-gated payment pipeline with ledger validation and causal result verification",
			EstimatedDuration: 8 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputPaymentRequest, Type: models.InputTypeObject, Required: true, Description: "payment request with embedded signature"},
			},
			Active: true,
		},
		{
			ID:                WorkflowUserOnboarding,
			Name:              "User Onboarding (Optimized)",
			Description:       "Multisig wallet provisioning with durable persistence and event publication",
			EstimatedDuration: 12 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputUserRegistration, Type: models.InputTypeObject, Required: true, Description: "registration payload with userId"},
			},
			Active: true,
		},
		{
			ID:                WorkflowTreasuryOperations,
			Name:              "Treasury Operations (Secure)",
			Description:       "Acceptance pipeline for treasury operation requests",
			EstimatedDuration: 10 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputTreasuryRequest, Type: models.InputTypeObject, Required: true, Description: "treasury operation request"},
			},
			Active: true,
		},
		{
			ID:                WorkflowListingCreation,
			Name:              "Marketplace Listing Creation",
			Description:       "Signature-gated listing creation in the marketplace service",
			EstimatedDuration: 5 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputListingRequest, Type: models.InputTypeObject, Required: true, Description: "listing request with embedded signature"},
			},
			Active: true,
		},
		{
			ID:                WorkflowOrderProcessing,
			Name:              "Marketplace Order Processing",
			Description:       "Signature-gated order creation with listing availability checks",
			EstimatedDuration: 6 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputOrderRequest, Type: models.InputTypeObject, Required: true, Description: "order request with embedded signature"},
			},
			Active: true,
		},
		{
			ID:                WorkflowEscrowManagement,
			Name:              "Marketplace Escrow Management",
			Description:       "Signature-gated escrow state transitions bound to order state",
			EstimatedDuration: 6 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputEscrowRequest, Type: models.InputTypeObject, Required: true, Description: "escrow request with action and embedded signature"},
			},
			Active: true,
		},
		{
			ID:                WorkflowAnalyticsProcessing,
			Name:              "Marketplace Analytics Processing",
			Description:       "Aggregation pipeline over listing and order analytics",
			EstimatedDuration: 15 * time.Second,
			Inputs: []models.InputSpec{
				{Name: InputAnalyticsRequest, Type: models.InputTypeObject, Required: true, Description: "analytics window request"},
			},
			Active: true,
		},
	}

	return New(definitions...)
}

// Get returns the definition for the given workflow id.
func (c *Catalog) Get(id string) (models.WorkflowDefinition, error) {
	definition, ok := c.definitions[id]
	if !ok {
		return models.WorkflowDefinition{}, fmt.Errorf("workflow '%s': %w", id, saga.ErrUnknownWorkflow)
	}

	return definition, nil
}

// List returns every definition in declaration order.
func (c *Catalog) List() []models.WorkflowDefinition {
	definitions := make([]models.WorkflowDefinition, 0, len(c.order))
	for _, id := range c.order {
		definitions = append(definitions, c.definitions[id])
	}

	return definitions
}

// Has reports whether the workflow id is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.definitions[id]

	return ok
}

package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// MarketplaceClient talks to the marketplace service for listing, order,
// escrow, and analytics operations.
type MarketplaceClient struct {
	core *httpCore
}

// NewMarketplaceClient creates a marketplace service client.
func NewMarketplaceClient(logger *slog.Logger, baseURL string) *MarketplaceClient {
	return &MarketplaceClient{
		core: newHTTPCore("marketplace", baseURL, BusinessPolicy, logger),
	}
}

type listingCreateRequest struct {
	Listing      map[string]any `json:"listing"`
	ValidationID string         `json:"validation_id"`
}

// ListingResult is the marketplace response to listing creation.
type ListingResult struct {
	ListingID string `json:"listing_id"`
	TokenID   string `json:"token_id"`
	Status    string `json:"status"`
}

// CreateListing creates a marketplace listing.
func (c *MarketplaceClient) CreateListing(ctx context.Context, listing map[string]any, validationID string) (*ListingResult, error) {
	var result ListingResult

	err := c.core.postJSON(ctx, "CreateListing", "/api/v1/listings",
		listingCreateRequest{Listing: listing, ValidationID: validationID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListingAvailability reports whether a listing can cover a requested quantity.
type ListingAvailability struct {
	ListingID         string `json:"listing_id"`
	Available         bool   `json:"available"`
	QuantityAvailable int64  `json:"quantity_available"`
	Message           string `json:"message,omitempty"`
}

// CheckListingAvailability asks whether the listing can cover the quantity.
func (c *MarketplaceClient) CheckListingAvailability(ctx context.Context, listingID string, quantity int64) (*ListingAvailability, error) {
	var result ListingAvailability

	path := fmt.Sprintf("/api/v1/listings/%s/availability?quantity=%d", url.PathEscape(listingID), quantity)

	err := c.core.getJSON(ctx, "CheckListingAvailability", path, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type orderCreateRequest struct {
	Order        map[string]any `json:"order"`
	ValidationID string         `json:"validation_id"`
}

// OrderResult is the marketplace response to order creation.
type OrderResult struct {
	OrderID   string `json:"order_id"`
	ListingID string `json:"listing_id"`
	Status    string `json:"status"`
}

// CreateOrder creates a marketplace order.
func (c *MarketplaceClient) CreateOrder(ctx context.Context, order map[string]any, validationID string) (*OrderResult, error) {
	var result OrderResult

	err := c.core.postJSON(ctx, "CreateOrder", "/api/v1/orders",
		orderCreateRequest{Order: order, ValidationID: validationID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Order is the marketplace view of an existing order.
type Order struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`
	EscrowID string `json:"escrow_id,omitempty"`
}

// GetOrder retrieves an order by id.
func (c *MarketplaceClient) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var result Order

	err := c.core.getJSON(ctx, "GetOrder", "/api/v1/orders/"+url.PathEscape(orderID), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type escrowUpdateRequest struct {
	Action       string `json:"action"`
	ValidationID string `json:"validation_id"`
}

// EscrowResult is the marketplace response to an escrow state transition.
type EscrowResult struct {
	EscrowID string `json:"escrow_id"`
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
}

// UpdateEscrow applies an escrow action (fund, release, refund) to an order.
func (c *MarketplaceClient) UpdateEscrow(ctx context.Context, orderID, action, validationID string) (*EscrowResult, error) {
	var result EscrowResult

	err := c.core.postJSON(ctx, "UpdateEscrow", "/api/v1/orders/"+url.PathEscape(orderID)+"/escrow",
		escrowUpdateRequest{Action: action, ValidationID: validationID}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// AnalyticsPoint is one timestamped measurement in an analytics series.
type AnalyticsPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// AnalyticsSlice is a metric series over a reporting period.
type AnalyticsSlice struct {
	Metric string           `json:"metric"`
	Period string           `json:"period"`
	Points []AnalyticsPoint `json:"points"`
}

// ListingAnalytics fetches the listing metric series for a period.
func (c *MarketplaceClient) ListingAnalytics(ctx context.Context, period string) (*AnalyticsSlice, error) {
	var result AnalyticsSlice

	err := c.core.getJSON(ctx, "ListingAnalytics", "/api/v1/analytics/listings?period="+url.QueryEscape(period), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// OrderAnalytics fetches the order metric series for a period.
func (c *MarketplaceClient) OrderAnalytics(ctx context.Context, period string) (*AnalyticsSlice, error) {
	var result AnalyticsSlice

	err := c.core.getJSON(ctx, "OrderAnalytics", "/api/v1/analytics/orders?period="+url.QueryEscape(period), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

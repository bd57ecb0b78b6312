package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/domain"
)

// CreateCart creates a remote cart in the given region and returns its ID
func (c *Client) CreateCart(ctx context.Context, regionID string) (string, error) {
	var out cartEnvelope
	body := map[string]interface{}{"region_id": regionID}
	if err := c.do(ctx, http.MethodPost, "/store/carts", "", body, &out); err != nil {
		return "", fmt.Errorf("create cart: %w", err)
	}
	c.logger.Debug("Created remote cart", zap.String("cart_id", out.Cart.ID), zap.String("region_id", regionID))
	return out.Cart.ID, nil
}

// GetCart fetches the remote cart's line items
func (c *Client) GetCart(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	var out cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+cartID, "", nil, &out); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return out.Cart.lineItems(), nil
}

// AddLineItem adds a variant line to the remote cart and returns the
// server's authoritative item list.
func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) ([]domain.CartItem, error) {
	var out cartEnvelope
	body := map[string]interface{}{"variant_id": variantID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items", "", body, &out); err != nil {
		return nil, fmt.Errorf("add line item: %w", err)
	}
	return out.Cart.lineItems(), nil
}

// UpdateLineItem changes a line's quantity and returns the authoritative item list
func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) ([]domain.CartItem, error) {
	var out cartEnvelope
	body := map[string]interface{}{"quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/line-items/"+lineItemID, "", body, &out); err != nil {
		return nil, fmt.Errorf("update line item: %w", err)
	}
	return out.Cart.lineItems(), nil
}

// DeleteLineItem removes a line from the remote cart
func (c *Client) DeleteLineItem(ctx context.Context, cartID, lineItemID string) error {
	if err := c.do(ctx, http.MethodDelete, "/store/carts/"+cartID+"/line-items/"+lineItemID, "", nil, nil); err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return nil
}

// SetCartDetails attaches the customer email and shipping/billing address to the cart
func (c *Client) SetCartDetails(ctx context.Context, cartID, email string, addr domain.Address) error {
	wa := toWireAddress(addr)
	body := map[string]interface{}{
		"email":            email,
		"shipping_address": wa,
		"billing_address":  wa,
	}
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID, "", body, nil); err != nil {
		return fmt.Errorf("set cart details: %w", err)
	}
	return nil
}

// ListShippingOptions fetches the fulfillment options available for the cart's address
func (c *Client) ListShippingOptions(ctx context.Context, cartID string) ([]domain.ShippingOption, error) {
	var out shippingOptionsEnvelope
	path := "/store/shipping-options?cart_id=" + url.QueryEscape(cartID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("list shipping options: %w", err)
	}
	options := make([]domain.ShippingOption, 0, len(out.ShippingOptions))
	for _, so := range out.ShippingOptions {
		options = append(options, domain.ShippingOption{ID: so.ID, Name: so.Name, Amount: so.Amount})
	}
	return options, nil
}

// AddShippingMethod attaches the chosen shipping option to the cart
func (c *Client) AddShippingMethod(ctx context.Context, cartID, optionID string) error {
	body := map[string]interface{}{"option_id": optionID}
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/shipping-methods", "", body, nil); err != nil {
		return fmt.Errorf("add shipping method: %w", err)
	}
	return nil
}

// CompleteCart places the order for the cart. The backend either returns an
// order or hands the cart back with an error message.
func (c *Client) CompleteCart(ctx context.Context, cartID string) (*domain.Order, error) {
	var out completeEnvelope
	if err := c.do(ctx, http.MethodPost, "/store/carts/"+cartID+"/complete", "", nil, &out); err != nil {
		return nil, fmt.Errorf("complete cart: %w", err)
	}
	if out.Type != "order" {
		msg := out.Error.Message
		if msg == "" {
			msg = "cart completion was not accepted"
		}
		return nil, fmt.Errorf("complete cart: %s", msg)
	}
	return &domain.Order{
		ID:        out.Order.ID,
		DisplayID: out.Order.DisplayID,
		Total:     out.Order.Total,
		CreatedAt: out.Order.CreatedAt,
	}, nil
}

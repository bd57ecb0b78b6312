package commerce

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// CreatePaymentCollection creates the payment collection for a cart and returns its ID
func (c *Client) CreatePaymentCollection(ctx context.Context, cartID string) (string, error) {
	var out paymentCollectionEnvelope
	body := map[string]interface{}{"cart_id": cartID}
	if err := c.do(ctx, http.MethodPost, "/store/payment-collections", "", body, &out); err != nil {
		return "", fmt.Errorf("create payment collection: %w", err)
	}
	return out.PaymentCollection.ID, nil
}

// CreatePaymentSession initializes a payment session against the named
// provider and returns the client secret for the hosted capture surface.
// Providers without a hosted surface return an empty secret.
func (c *Client) CreatePaymentSession(ctx context.Context, collectionID, providerID string) (string, error) {
	var out paymentCollectionEnvelope
	body := map[string]interface{}{"provider_id": providerID}
	path := "/store/payment-collections/" + collectionID + "/payment-sessions"
	if err := c.do(ctx, http.MethodPost, path, "", body, &out); err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}

	for _, session := range out.PaymentCollection.PaymentSessions {
		if session.ProviderID != providerID {
			continue
		}
		if secret, ok := session.Data["client_secret"].(string); ok {
			return secret, nil
		}
		c.logger.Debug("Payment session has no client secret",
			zap.String("provider_id", providerID),
			zap.String("collection_id", collectionID),
		)
		return "", nil
	}

	return "", fmt.Errorf("create payment session: provider %s returned no session", providerID)
}

package commerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oubata/HealThea/internal/domain"
)

// Login exchanges email/password for a customer bearer token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenEnvelope
	body := map[string]interface{}{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/customer/emailpass", "", body, &out); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return out.Token, nil
}

// RegisterIdentity creates the authentication identity for a new customer
// and returns the registration token the profile must be created under.
func (c *Client) RegisterIdentity(ctx context.Context, email, password string) (string, error) {
	var out tokenEnvelope
	body := map[string]interface{}{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/customer/emailpass/register", "", body, &out); err != nil {
		return "", fmt.Errorf("register identity: %w", err)
	}
	return out.Token, nil
}

// CreateCustomer creates the customer profile under a registration token
func (c *Client) CreateCustomer(ctx context.Context, regToken string, cust domain.Customer) (*domain.Customer, error) {
	var out customerEnvelope
	body := map[string]interface{}{
		"email":      cust.Email,
		"first_name": cust.FirstName,
		"last_name":  cust.LastName,
	}
	if cust.Phone != "" {
		body["phone"] = cust.Phone
	}
	if err := c.do(ctx, http.MethodPost, "/store/customers", regToken, body, &out); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	created := out.Customer.toDomain()
	return &created, nil
}

// GetCustomer fetches the authenticated customer's own profile
func (c *Client) GetCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	var out customerEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/customers/me", token, nil, &out); err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	cust := out.Customer.toDomain()
	return &cust, nil
}

// UpdateCustomer updates the authenticated customer's own profile
func (c *Client) UpdateCustomer(ctx context.Context, token string, cust domain.Customer) (*domain.Customer, error) {
	var out customerEnvelope
	body := map[string]interface{}{
		"first_name": cust.FirstName,
		"last_name":  cust.LastName,
	}
	if cust.Phone != "" {
		body["phone"] = cust.Phone
	}
	if err := c.do(ctx, http.MethodPost, "/store/customers/me", token, body, &out); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	updated := out.Customer.toDomain()
	return &updated, nil
}

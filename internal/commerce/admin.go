package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AdminClient calls the commerce backend's admin API. The seed tool uses it
// to provision catalog data; the auth store uses it to compensate a failed
// registration by removing the orphaned identity.
type AdminClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdminClient creates an admin API client; call Login before anything else
func NewAdminClient(baseURL string, logger *zap.Logger) *AdminClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Login exchanges admin credentials for a bearer token and stores it on the client
func (a *AdminClient) Login(ctx context.Context, email, password string) error {
	var out tokenEnvelope
	body := map[string]interface{}{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/auth/user/emailpass", body, &out); err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	a.token = out.Token
	return nil
}

// DeleteCustomerByEmail removes the customer (and its auth identity) created
// for the given email. Best-effort compensation for a half-finished
// registration; a missing customer is not an error.
func (a *AdminClient) DeleteCustomerByEmail(ctx context.Context, email string) error {
	var list struct {
		Customers []struct {
			ID string `json:"id"`
		} `json:"customers"`
	}
	q := url.Values{}
	q.Set("email", email)
	if err := a.do(ctx, http.MethodGet, "/admin/customers?"+q.Encode(), nil, &list); err != nil {
		return fmt.Errorf("lookup customer: %w", err)
	}
	if len(list.Customers) == 0 {
		return nil
	}
	if err := a.do(ctx, http.MethodDelete, "/admin/customers/"+list.Customers[0].ID, nil, nil); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	a.logger.Info("Removed orphaned customer identity", zap.String("email", email))
	return nil
}

// CreateResource POSTs a resource to an admin path and decodes the envelope
// into out. The seed tool drives all provisioning through this.
func (a *AdminClient) CreateResource(ctx context.Context, path string, body, out interface{}) error {
	return a.do(ctx, http.MethodPost, path, body, out)
}

// GetResource GETs an admin path and decodes the envelope into out
func (a *AdminClient) GetResource(ctx context.Context, path string, out interface{}) error {
	return a.do(ctx, http.MethodGet, path, nil, out)
}

func (a *AdminClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(respBody))
		}
	}
	return nil
}

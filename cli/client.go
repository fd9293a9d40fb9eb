package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"savecart/models"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// NetworkError is a failure to reach the server or read its response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is the HTTP client for the savecart API
type Client struct {
	baseURL    string
	token      string
	adminKey   string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL (server URL plus base path).
// A zero timeout waits indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken sets the session token sent as a bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetAdminKey sets the key sent with settings writes
func (c *Client) SetAdminKey(key string) {
	c.adminKey = key
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes a request and decodes a 2xx JSON body into result
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.adminKey != "" && method == http.MethodPatch {
		req.Header.Set("X-Admin-Key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: "read " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// HealthCheck pings the health endpoint
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// CheckLogin reports whether the session belongs to a logged-in customer.
// A server-side lookup failure is returned as an *APIError even though the status is 200.
func (c *Client) CheckLogin(ctx context.Context) (bool, error) {
	var res struct {
		IsLoggedIn bool   `json:"isLoggedIn"`
		Error      string `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/check-login", nil, &res); err != nil {
		return false, err
	}
	if res.Error != "" {
		return false, &APIError{Status: http.StatusOK, Message: res.Error}
	}
	return res.IsLoggedIn, nil
}

// ThemeSettings fetches the current theme settings
func (c *Client) ThemeSettings(ctx context.Context) (*models.ThemeSettings, error) {
	var ts models.ThemeSettings
	if err := c.do(ctx, http.MethodGet, "/theme-settings", nil, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

// UpdateThemeSettings writes theme settings; the client must carry an admin key
func (c *Client) UpdateThemeSettings(ctx context.Context, in models.ThemeSettingsInput) (*models.ThemeSettings, error) {
	var res struct {
		Success bool                  `json:"success"`
		Data    *models.ThemeSettings `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/theme-settings", in, &res); err != nil {
		return nil, err
	}
	if !res.Success || res.Data == nil {
		return nil, fmt.Errorf("theme settings update was not applied")
	}
	return res.Data, nil
}

// SavedCart fetches a saved cart. An empty id asks for the session customer's cart.
func (c *Client) SavedCart(ctx context.Context, id string) (*models.SavedCartRead, error) {
	var cart models.SavedCartRead
	if err := c.do(ctx, http.MethodPost, "/saved-cart", models.SavedCartLookup{ID: id}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Customer returns the customer id of the session
func (c *Client) Customer(ctx context.Context) (string, error) {
	var res struct {
		CustomerID string `json:"customerId"`
	}
	if err := c.do(ctx, http.MethodGet, "/customer", nil, &res); err != nil {
		return "", err
	}
	return res.CustomerID, nil
}

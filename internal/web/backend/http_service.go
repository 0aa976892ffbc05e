package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AuthTokenHeader carries the session token on authenticated requests.
const AuthTokenHeader = "X-Auth-Token"

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements Service against the backend's REST/JSON endpoints.
// Failures surface immediately: no retries and no per-request timeout beyond
// whatever the supplied client enforces.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service that talks to the comparison backend.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("backend: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base URL: %w", err)
	}
	// Relative resolution replaces the last path segment, so the base must end
	// with a slash for a prefix like /api to survive.
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		base:   parsed,
		client: client,
	}, nil
}

// Register creates an account and returns its first session.
func (s *HTTPService) Register(ctx context.Context, creds Credentials) (*AuthSession, error) {
	var payload AuthSession
	if err := s.call(ctx, http.MethodPost, "/auth/register", creds, "", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login exchanges credentials for a session token.
func (s *HTTPService) Login(ctx context.Context, creds Credentials) (*AuthSession, error) {
	var payload AuthSession
	if err := s.call(ctx, http.MethodPost, "/auth/login", creds, "", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Logout invalidates the session token server-side.
func (s *HTTPService) Logout(ctx context.Context, token string) error {
	return s.call(ctx, http.MethodPost, "/auth/logout", nil, token, nil)
}

// Me resolves the token into the owning account.
func (s *HTTPService) Me(ctx context.Context, token string) (*Identity, error) {
	var payload Identity
	if err := s.call(ctx, http.MethodGet, "/auth/me", nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Workspace returns the user's aggregate comparison workspace.
func (s *HTTPService) Workspace(ctx context.Context, token string) (*Workspace, error) {
	var payload Workspace
	if err := s.call(ctx, http.MethodGet, "/comparison", nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Features lists the full feature catalog.
func (s *HTTPService) Features(ctx context.Context, token string) ([]Feature, error) {
	var payload []Feature
	if err := s.call(ctx, http.MethodGet, "/features", nil, token, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateFeature adds a catalog feature by display name.
func (s *HTTPService) CreateFeature(ctx context.Context, token, name string) (*Feature, error) {
	body := map[string]string{"name": name}
	var payload Feature
	if err := s.call(ctx, http.MethodPost, "/features", body, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateProduct creates a product and returns it with its assigned id.
func (s *HTTPService) CreateProduct(ctx context.Context, token string, req ProductRequest) (*Product, error) {
	var payload Product
	if err := s.call(ctx, http.MethodPost, "/products", req, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Product fetches one product with its embedded feature list.
func (s *HTTPService) Product(ctx context.Context, token string, id int64) (*Product, error) {
	var payload Product
	if err := s.call(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SetFeatureValue writes a feature value on a product.
func (s *HTTPService) SetFeatureValue(ctx context.Context, token string, productID, featureID int64, value string) error {
	body := map[string]string{"value": value}
	endpoint := fmt.Sprintf("/products/%d/features/%d/value", productID, featureID)
	return s.call(ctx, http.MethodPut, endpoint, body, token, nil)
}

// StoreOfferings lists storefront offerings for a product.
func (s *HTTPService) StoreOfferings(ctx context.Context, token string, productID int64) ([]StoreOffering, error) {
	var payload []StoreOffering
	endpoint := fmt.Sprintf("/products/%d/stores", productID)
	if err := s.call(ctx, http.MethodGet, endpoint, nil, token, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Recommendation asks the backend which of the two products is the better pick.
func (s *HTTPService) Recommendation(ctx context.Context, token string, productA, productB int64) (*Recommendation, error) {
	endpoint := fmt.Sprintf("/compare/recommendation?productA=%d&productB=%d", productA, productB)
	var payload Recommendation
	if err := s.call(ctx, http.MethodGet, endpoint, nil, token, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// call performs one backend round trip. A non-nil payload is JSON-encoded with
// Content-Type set; a non-empty token rides in the auth header. Non-2xx
// responses become errors carrying the response body text verbatim, and a
// no-content success skips decoding.
func (s *HTTPService) call(ctx context.Context, method, endpoint string, payload any, token string, out any) error {
	var body io.Reader
	if payload != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("backend: encode payload: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, s.resolve(endpoint), body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AuthTokenHeader, token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, endpoint, err)
	}
	return nil
}

func (s *HTTPService) resolve(endpoint string) string {
	if endpoint == "" {
		return s.base.String()
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	trimmed := strings.TrimPrefix(endpoint, "/")
	ref, err := url.Parse(trimmed)
	if err != nil {
		return s.base.String() + "/" + trimmed
	}
	return s.base.ResolveReference(ref).String()
}

// errorFromResponse surfaces the response body text as the error message, per
// the backend contract. An empty body falls back to a generic message.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	text := strings.TrimSpace(string(body))
	if text != "" {
		return errors.New(text)
	}
	return errors.New("request failed")
}

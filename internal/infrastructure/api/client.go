package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tambesec/networkstore/domain"
)

// Endpoints that must never trigger the refresh pipeline. Their auth
// failures propagate unmodified.
var authEndpoints = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
	"/auth/logout",
	"/auth/session",
	"/auth/google",
}

// Options configures the HTTP client core.
type Options struct {
	// BaseURL is the backend host, e.g. "https://api.networkstore.example".
	BaseURL string
	// Prefix is the versioned API prefix used by direct calls and the
	// refresh endpoint. Defaults to "/api/v1".
	Prefix  string
	Timeout time.Duration

	// SignInPath plus the public allow-lists control the forced redirect
	// after a failed refresh.
	SignInPath     string
	PublicPaths    []string
	PublicPrefixes []string
	Navigator      domain.Navigator
}

// Client issues all backend calls with cookie credentials attached and
// uniformly reacts to authentication failures. Two request surfaces exist
// for historical reasons: Do prefixes paths with the versioned API prefix,
// DoGenerated takes full paths as emitted by generated bindings. Both share
// one cookie jar and one refresh pipeline and behave identically.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
	gate       *refreshGate

	signInPath     string
	publicPaths    []string
	publicPrefixes []string
	nav            domain.Navigator
}

// New builds a client with a fresh cookie jar.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	signIn := opts.SignInPath
	if signIn == "" {
		signIn = "/signin"
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		prefix:         prefix,
		httpClient:     &http.Client{Jar: jar, Timeout: timeout},
		gate:           newRefreshGate(),
		signInPath:     signIn,
		publicPaths:    opts.PublicPaths,
		publicPrefixes: opts.PublicPrefixes,
		nav:            opts.Navigator,
	}, nil
}

// Do issues a request against the prefixed API surface ("/cart" becomes
// "<base>/api/v1/cart"). out, when non-nil, receives the unwrapped payload.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.call(ctx, method, c.baseURL+c.prefix+path, path, body, out)
}

// DoGenerated issues a request with the full path as emitted by generated
// bindings ("/api/v1/cart").
func (c *Client) DoGenerated(ctx context.Context, method, path string, body, out interface{}) error {
	return c.call(ctx, method, c.baseURL+path, path, body, out)
}

// SetLoggingOut flips the process-wide logging-out switch. While set, auth
// failures are rejected immediately instead of queued behind a refresh.
func (c *Client) SetLoggingOut(v bool) { c.gate.SetLoggingOut(v) }

// LoggingOut reports the logging-out switch.
func (c *Client) LoggingOut() bool { return c.gate.LoggingOut() }

var _ domain.LogoutGate = (*Client)(nil)

// call runs one request through the refresh pipeline: on an auth failure
// from a non-exempt endpoint it joins the single-flight refresh and replays
// the original request at most once.
func (c *Client) call(ctx context.Context, method, url, path string, body, out interface{}) error {
	err := c.attempt(ctx, method, url, body, out)
	if err == nil {
		return nil
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsAuthError() || isAuthEndpoint(path) {
		return err
	}

	if c.gate.LoggingOut() {
		return err
	}

	if refreshErr := c.gate.Refresh(func() error { return c.refreshSession(ctx) }); refreshErr != nil {
		log.Printf("SESSION_REFRESH_FAILED: path=%s error=%v", path, refreshErr)
		c.redirectToSignIn()
		return fmt.Errorf("session refresh failed: %w", refreshErr)
	}

	// Replay exactly once. A second auth failure is returned as-is and
	// never re-enters the pipeline.
	return c.attempt(ctx, method, url, body, out)
}

// attempt performs a single HTTP exchange with no refresh handling.
func (c *Client) attempt(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return decodeEnvelope(raw, out)
	}

	apiErr := decodeAPIError(resp.StatusCode, raw)
	apiErr.RequestID = requestID
	return apiErr
}

// refreshSession calls the refresh endpoint as a plain request relying on
// the refresh cookie in the shared jar. It deliberately bypasses the
// pipeline to avoid recursion.
func (c *Client) refreshSession(ctx context.Context) error {
	url := c.baseURL + c.prefix + "/auth/refresh"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("api: build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return decodeAPIError(resp.StatusCode, raw)
}

// redirectToSignIn forces navigation to the sign-in page unless the
// embedding app is currently on a public page.
func (c *Client) redirectToSignIn() {
	if c.nav == nil {
		return
	}
	current := c.nav.CurrentPath()
	for _, p := range c.publicPaths {
		if current == p {
			return
		}
	}
	for _, prefix := range c.publicPrefixes {
		if strings.HasPrefix(current, prefix) {
			return
		}
	}
	c.nav.Redirect(c.signInPath)
}

func isAuthEndpoint(path string) bool {
	for _, e := range authEndpoints {
		if strings.Contains(path, e) {
			return true
		}
	}
	return false
}

package http

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/devlogdev/devlog/pkg/config"
	"github.com/devlogdev/devlog/pkg/logger"
	"github.com/klauspost/compress/zstd"
)

// compressionThreshold is the minimum payload size to compress.
// Below this, compression overhead isn't worth it.
const compressionThreshold = 1024 // 1KB

// userAgent is set once at startup via SetUserAgent
var userAgent string

// SetUserAgent sets the User-Agent header for all HTTP requests.
// Should be called once at startup before any requests are made.
func SetUserAgent(ua string) {
	userAgent = ua
}

// BuildUserAgent constructs a User-Agent string in the format: devlog/version (os; arch)
func BuildUserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("devlog/%s (%s; %s)", version, runtime.GOOS, runtime.GOARCH)
}

// ErrUnauthorized is returned when the server returns 401 or 403.
// This typically means the API key is invalid or expired.
var ErrUnauthorized = errors.New("unauthorized")

// Client is a configured HTTP client for making authenticated requests
// to the devlog backend.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	encoder    *zstd.Encoder
}

// NewClient creates a new authenticated HTTP client.
//
// A zero timeout means no client-level deadline: the logging flow relies
// on the transport's defaults only. Interactive callers (status checks)
// pass a short timeout instead.
func NewClient(cfg *config.Config, timeout time.Duration) (*Client, error) {
	// Create zstd encoder with default compression level (good balance of speed/ratio)
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	// Configure transport with TLS minimum version for non-localhost URLs.
	//
	// Security note: For localhost URLs (http://localhost, http://127.0.0.1,
	// http://[::1]), we use the default transport without TLS enforcement.
	// This is intentional for local development where developers run a local
	// backend server. Production traffic always goes through HTTPS with TLS 1.2+.
	// Localhost connections stay on the local machine and don't traverse networks.
	var transport http.RoundTripper
	if !isLocalhost(cfg.ResolveBaseURL()) {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		}
	} else {
		logger.Debug("Using localhost API base URL - TLS not enforced")
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		encoder: encoder,
	}, nil
}

// isLocalhost checks if the URL points to localhost.
// Used to determine if TLS enforcement should be skipped for local development.
func isLocalhost(url string) bool {
	return strings.HasPrefix(url, "http://localhost") ||
		strings.HasPrefix(url, "http://127.0.0.1") ||
		strings.HasPrefix(url, "http://[::1]")
}

// DoJSON performs an HTTP request with JSON body and parses the JSON response.
// Automatically sets Content-Type, Authorization, and handles error responses.
// Payloads larger than 1KB are compressed with zstd.
//
// Failures are never retried: a transport error or non-2xx status surfaces
// immediately, with the status code and response body in the error.
func (c *Client) DoJSON(method, path string, reqBody, respBody interface{}) error {
	var payload []byte
	var contentEncoding string

	if reqBody != nil {
		var err error
		payload, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		// Log the JSON payload at debug level (before compression)
		logger.Debug("HTTP %s %s payload: %s", method, path, string(payload))

		// Compress if payload is large enough
		if len(payload) >= compressionThreshold {
			payload = c.encoder.EncodeAll(payload, make([]byte, 0, len(payload)/2))
			contentEncoding = "zstd"
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	url := c.cfg.ResolveBaseURL() + path
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
		if contentEncoding != "" {
			req.Header.Set("Content-Encoding", contentEncoding)
		}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	// Read response body
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check status codes
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, resp.StatusCode, string(body))
	}
	// Accept any 2xx status code as success
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http request failed with status %d: %s", resp.StatusCode, string(body))
	}

	// Parse response if requested. A 2xx is success no matter what the
	// body holds: some endpoints respond with an empty body, and a body
	// that isn't the expected JSON is decoded best-effort and ignored.
	if respBody != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, respBody); err != nil {
			logger.Warn("Ignoring unparseable response body for %s %s: %v", method, path, err)
		}
	}

	return nil
}

// Get performs a GET request with JSON response parsing
func (c *Client) Get(path string, respBody interface{}) error {
	return c.DoJSON("GET", path, nil, respBody)
}

// Post performs a POST request with JSON body and response
func (c *Client) Post(path string, reqBody, respBody interface{}) error {
	return c.DoJSON("POST", path, reqBody, respBody)
}

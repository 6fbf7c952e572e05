// Package remote is the HTTP client for the upstream back-office API. Every
// call goes through one request contract; responses use the {data: ...}
// envelope and failures come back as *Failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"qlcc/internal/store"
)

// TokenProvider returns the bearer token attached to credentialed requests.
type TokenProvider func(ctx context.Context) (string, error)

// StaticToken always returns token.
func StaticToken(token string) TokenProvider {
	return func(context.Context) (string, error) { return token, nil }
}

// Request is one call to the upstream API. URL is relative to the client's base URL.
type Request struct {
	URL            string
	Method         string
	Query          url.Values
	Body           any
	UseCredentials bool
}

// Failure is a non-2xx answer or a transport error. Status is 0 when no
// response was received.
type Failure struct {
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Status == 0 && f.Err != nil:
		return "remote request failed: " + f.Err.Error()
	case f.Message != "":
		return fmt.Sprintf("remote returned %d: %s", f.Status, f.Message)
	default:
		return fmt.Sprintf("remote returned %d", f.Status)
	}
}

func (f *Failure) Unwrap() error { return f.Err }

// Is lets a 404 match store.ErrNotFound.
func (f *Failure) Is(target error) bool {
	return target == store.ErrNotFound && f.Status == http.StatusNotFound
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client talks to one upstream base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenProvider
	logger     *slog.Logger
}

// New builds a client whose transport is traced with otelhttp. token may be
// nil when no request uses credentials.
func New(baseURL string, timeout time.Duration, token TokenProvider, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token:  token,
		logger: logger.With(slog.String("component", "remote_client")),
	}
}

// Do sends req and decodes the data member of the response envelope into out.
// out may be nil when the payload is not needed.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	target := c.baseURL + "/" + strings.TrimLeft(req.URL, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.UseCredentials && c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return &Failure{Message: "token unavailable", Err: err}
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed", slog.String("method", req.Method), slog.String("url", req.URL), slog.String("error", err.Error()))
		return &Failure{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Failure{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("request",
		slog.String("method", req.Method),
		slog.String("url", req.URL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f := &Failure{Status: resp.StatusCode}
		if decodeErr == nil {
			f.Message = env.Message
			if env.Error != "" {
				f.Err = errors.New(env.Error)
			}
		}
		if f.Message == "" {
			f.Message = http.StatusText(resp.StatusCode)
		}
		return f
	}
	if decodeErr != nil {
		return &Failure{Status: resp.StatusCode, Message: "malformed response", Err: decodeErr}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Failure{Status: resp.StatusCode, Message: "malformed response data", Err: err}
	}
	return nil
}

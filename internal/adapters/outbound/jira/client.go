// Package jira fetches tickets from the Jira REST API.
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/groomroom/groomroom/internal/domain"
)

// ErrNotConfigured is returned when base URL or credentials are missing.
var ErrNotConfigured = errors.New("jira is not configured (set jira.base_url, JIRA_EMAIL and JIRA_API_TOKEN)")

// APIError is a non-200 response from the Jira REST API.
type APIError struct {
	Status int
	Key    string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira api error (%d) for %s: %s", e.Status, e.Key, e.Body)
}

// Temporary reports whether a later attempt can succeed: server errors and
// rate limiting are, other client errors are not.
func (e *APIError) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// Client implements domain.TicketSource.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	timeout    time.Duration
	retryCfg   retry.Config
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.httpClient = c } }

// WithRetry sets attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(cl *Client) {
		cl.retryCfg.MaxAttempts = attempts
		cl.retryCfg.InitialDelay = delay
	}
}

// WithTimeout bounds a whole Fetch, retries included.
func WithTimeout(d time.Duration) Option { return func(cl *Client) { cl.timeout = d } }

// New creates a client for the instance at baseURL. A bare host gets an
// https:// prefix.
func New(cfg domain.JiraConfig, token string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" || cfg.Email == "" || token == "" {
		return nil, ErrNotConfigured
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	c := &Client{
		baseURL:    base,
		email:      cfg.Email,
		token:      token,
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
		retryCfg: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  500 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
			IsRetryable:   retryable,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		IssueType   struct {
			Name string `json:"name"`
		} `json:"issuetype"`
	} `json:"fields"`
}

// Fetch loads one issue by key. Client errors other than 429 are returned
// after the first attempt as an *APIError.
func (c *Client) Fetch(ctx context.Context, key string) (domain.Ticket, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Ticket{}, fmt.Errorf("issue key is empty")
	}

	r := retry.New[*issue](c.retryCfg)
	t := timeout.New[*issue](timeout.Config{DefaultTimeout: c.timeout})

	is, err := t.Execute(ctx, c.timeout, func(ctx context.Context) (*issue, error) {
		return r.Do(ctx, func(ctx context.Context) (*issue, error) {
			return c.get(ctx, key)
		})
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("fetching %s: %w", key, err)
	}

	return domain.Ticket{
		ID:    is.Key,
		Title: is.Fields.Summary,
		Body:  is.Fields.Description,
		Type:  is.Fields.IssueType.Name,
	}, nil
}

func (c *Client) get(ctx context.Context, key string) (*issue, error) {
	u := fmt.Sprintf("%s/rest/api/2/issue/%s?fields=summary,description,issuetype", c.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Key: key, Body: strings.TrimSpace(string(body))}
	}

	var is issue
	if err := json.Unmarshal(body, &is); err != nil {
		return nil, fmt.Errorf("decoding issue %s: %w", key, err)
	}
	if is.Key == "" {
		is.Key = key
	}
	return &is, nil
}

// Package remote implements catalog.Store against the remote record
// store's HTTP CRUD surface: GET /{collection}, GET /{collection}/{id},
// and POST/PUT/DELETE on /events. No retries are performed here; errors
// surface unchanged to callers.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Compile-time interface check.
var _ catalog.Store = (*Client)(nil)

// Client is the HTTP client for the remote record store.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, used by tests and
// callers that need custom transport settings.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// New creates a store client rooted at the given base address.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListEvents implements catalog.Lister.
func (c *Client) ListEvents(ctx context.Context) ([]catalog.Event, error) {
	return list[catalog.Event](ctx, c, "events")
}

// ListUsers implements catalog.Lister.
func (c *Client) ListUsers(ctx context.Context) ([]catalog.User, error) {
	return list[catalog.User](ctx, c, "users")
}

// ListCategories implements catalog.Lister.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return list[catalog.Category](ctx, c, "categories")
}

// GetEvent implements catalog.Getter.
func (c *Client) GetEvent(ctx context.Context, id string) (catalog.Event, error) {
	return get[catalog.Event](ctx, c, "events", id)
}

// GetUser implements catalog.Getter.
func (c *Client) GetUser(ctx context.Context, id string) (catalog.User, error) {
	return get[catalog.User](ctx, c, "users", id)
}

// GetCategory implements catalog.Getter.
func (c *Client) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	return get[catalog.Category](ctx, c, "categories", id)
}

// CreateEvent implements catalog.EventWriter. The created record is
// echoed back by the store.
func (c *Client) CreateEvent(ctx context.Context, event catalog.Event) (catalog.Event, error) {
	var created catalog.Event
	err := c.write(ctx, http.MethodPost, "create", c.url("events"), event, &created)
	return created, err
}

// ReplaceEvent implements catalog.EventWriter.
func (c *Client) ReplaceEvent(ctx context.Context, id string, event catalog.Event) (catalog.Event, error) {
	var updated catalog.Event
	err := c.write(ctx, http.MethodPut, "replace", c.url("events", id), event, &updated)
	return updated, err
}

// DeleteEvent implements catalog.EventWriter.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url("events", id), nil)
	if err != nil {
		return errors.WrapTransport("delete", c.url("events", id), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapTransport("delete", req.URL.String(), err)
	}
	defer closeBody(resp)

	if !success(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		return errors.NewRemoteError("delete", "events", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// list fetches a whole collection.
func list[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(collection), nil)
	if err != nil {
		return nil, errors.WrapTransport("list", c.url(collection), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransport("list", req.URL.String(), err)
	}

	var records []T
	if err := decodeResponse(resp, "list", collection, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// get fetches a single record. A 404 yields a NotFoundError.
func get[T any](ctx context.Context, c *Client, collection, id string) (T, error) {
	var record T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(collection, id), nil)
	if err != nil {
		return record, errors.WrapTransport("get", c.url(collection, id), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return record, errors.WrapTransport("get", req.URL.String(), err)
	}

	if resp.StatusCode == http.StatusNotFound {
		closeBody(resp)
		return record, errors.NewNotFoundError(collection, id)
	}

	if err := decodeResponse(resp, "get", collection, &record); err != nil {
		return record, err
	}
	return record, nil
}

// write performs a mutating request with a JSON body and decodes the
// echoed record.
func (c *Client) write(ctx context.Context, method, operation, url string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapTransport(operation, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapTransport(operation, url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapTransport(operation, url, err)
	}

	return decodeResponse(resp, operation, "events", target)
}

// decodeResponse reads and decodes a JSON response into the target
// structure, converting non-success statuses into RemoteErrors.
func decodeResponse(resp *http.Response, operation, collection string, target any) error {
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapTransport(operation, "", err)
	}

	if !success(resp.StatusCode) {
		return errors.NewRemoteError(operation, collection, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewTransportError("decode", "", err)
	}
	return nil
}

func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}

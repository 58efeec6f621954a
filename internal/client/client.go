// Package client is the data-access layer for the site's public API.
//
// Read-only list resources are cached per tag for the lifetime of a Client:
// the first subscription for a tag issues the only request, every other
// subscriber shares its result, and nothing expires until Invalidate is
// called. Contact submissions are never cached or deduplicated.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/DukeRupert/futureforward/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Tag identifies a cached resource.
type Tag string

const (
	TagServices   Tag = "services"
	TagIndustries Tag = "industries"
)

// FallbackMessage is used when a failed response carries no message.
const FallbackMessage = "Something went wrong. Please try again."

// Error is a failed request: a transport failure (Status 0) or a non-2xx
// response. Message is the server-supplied text or FallbackMessage.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed: " + e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type decodeFunc func(io.Reader) (any, error)

func decodeAs[T any](r io.Reader) (any, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Client talks to the API rooted at baseURL (e.g. "https://example.com/api").
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	decoders   map[Tag]decodeFunc

	// inflight guarantees at most one outstanding request per tag, even when
	// a tag is invalidated and resubscribed while a fetch is still running.
	inflight singleflight.Group

	mu      sync.Mutex
	entries map[Tag]*entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client. No request timeout is configured by default.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		decoders: map[Tag]decodeFunc{
			TagServices:   decodeAs[[]domain.Service],
			TagIndustries: decodeAs[[]domain.Industry],
		},
		entries: make(map[Tag]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops the cached entry for tag. Existing subscriptions keep the
// result they were given; the next Subscribe issues a new request.
func (c *Client) Invalidate(tag Tag) {
	c.mu.Lock()
	delete(c.entries, tag)
	c.mu.Unlock()
	c.logger.Debug("resource invalidated", "tag", tag)
}

// acquire returns the entry for tag, starting its fetch when the caller is
// the first subscriber.
func (c *Client) acquire(tag Tag) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[tag]; ok {
		return e
	}

	e := newEntry()
	decode, ok := c.decoders[tag]
	if !ok {
		// Unknown tags resolve immediately and are not cached.
		e.resolve(nil, fmt.Errorf("client: unknown resource tag %q", tag))
		return e
	}
	c.entries[tag] = e

	// The fetch is not tied to any subscriber: it completes and populates the
	// cache even if every caller has gone away.
	go func() {
		v, err, shared := c.inflight.Do(string(tag), func() (any, error) {
			return c.fetch(tag, decode)
		})
		if shared {
			c.logger.Debug("joined in-flight request", "tag", tag)
		}
		e.resolve(v, err)
	}()
	return e
}

func (c *Client) fetch(tag Tag, decode decodeFunc) (any, error) {
	url := c.baseURL + "/" + string(tag)
	c.logger.Debug("fetching resource", "tag", tag, "url", url)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		c.logger.Warn("resource request failed", "tag", tag, "error", err)
		return nil, &Error{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := responseError(resp)
		c.logger.Warn("resource request rejected", "tag", tag, "status", resp.StatusCode)
		return nil, err
	}

	v, err := decode(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: FallbackMessage, Err: fmt.Errorf("decode %s: %w", tag, err)}
	}
	return v, nil
}

// responseError builds an *Error from a non-2xx response, preferring the
// message the server supplied.
func responseError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return &Error{Status: resp.StatusCode, Message: serverMessage(body)}
}

// serverMessage understands both the contact envelope {"message": ...} and
// the generic API envelope {"error": {"message": ...}}.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	return FallbackMessage
}

// IsNetworkError reports whether err came from a failed or rejected request.
func IsNetworkError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gcg-eyewear/storefront/internal/session"
	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
	"github.com/gcg-eyewear/storefront/pkg/httpclient"
)

// Doer executes HTTP requests. Both the plain retrying client and its
// circuit-breaker wrapper satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is the typed client for the eyewear backend REST API. Every request
// attaches the session's bearer token when one is present; any 401 response
// invalidates the session exactly once and surfaces ErrSessionExpired to the
// caller. Navigation concerns stay out of the transport entirely.
type Client struct {
	baseURL string
	http    Doer
	session *session.Store
	logger  *slog.Logger

	Products    *ProductsAPI
	Collections *CollectionsAPI
	Admin       *AdminAPI
}

// New creates a Client rooted at baseURL (e.g. "https://host/api").
func New(baseURL string, sess *session.Store, logger *slog.Logger) *Client {
	return NewWithHTTPClient(baseURL, sess, httpclient.New(httpclient.DefaultConfig()), logger)
}

// NewWithHTTPClient creates a Client with a caller-supplied transport.
func NewWithHTTPClient(baseURL string, sess *session.Store, hc Doer, logger *slog.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		session: sess,
		logger:  logger,
	}
	c.Products = &ProductsAPI{client: c}
	c.Collections = &CollectionsAPI{client: c}
	c.Admin = &AdminAPI{client: c}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks backend reachability; used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Collections.Active(ctx)
	return err
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes a request and returns the raw response body for 2xx responses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		c.session.Invalidate()
		c.logger.WarnContext(ctx, "backend rejected credentials, session invalidated",
			slog.String("method", method),
			slog.String("path", path),
		)
		return nil, apperrors.SessionExpired()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return decode(data, out)
}

// sendJSON issues a request with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	data, err := c.do(ctx, method, path, query, reader, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// delete issues a DELETE request, discarding the response body.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	return err
}

// File is a file handed to the upload endpoints.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

// sendMultipart builds a multipart body with the given field name repeated
// per file and decodes the response into out.
func (c *Client) sendMultipart(ctx context.Context, path string, query url.Values, field string, files []File, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			return fmt.Errorf("copy file %s: %w", f.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, path, query, &buf, mw.FormDataContentType())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

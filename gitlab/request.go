package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	mediaTypeJSON = "application/json"
	mediaTypeForm = "application/x-www-form-urlencoded"
)

// apiURL joins the base URL with the given path segments using single "/"
// separators. Nil and empty segments are skipped; everything else is
// stringified, so numeric IDs can be passed directly.
func (c *Client) apiURL(segments ...any) (string, error) {
	var b strings.Builder
	b.WriteString(c.baseURL)

	for _, seg := range segments {
		if seg == nil {
			continue
		}
		s := fmt.Sprint(seg)
		if s == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(s)
	}

	u := b.String()
	if _, err := url.ParseRequestURI(u); err != nil {
		return "", fmt.Errorf("could not build API URL: %w", err)
	}

	return u, nil
}

// defaultTransport returns the tuned transport used when the config does not
// supply one.
func defaultTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// client returns the cached HTTP client handle, building it on first use and
// after every trust-mode or sudo change. The base transport is cloned so the
// caller's transport is never mutated.
func (c *Client) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		base := c.baseTransport
		if base == nil {
			base = defaultTransport()
		}
		transport := base.Clone()
		if c.insecure {
			transport.TLSClientConfig = c.tlsConfig
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	return c.httpClient
}

// newRequest builds a request with the query parameters, credential header,
// optional Sudo header and Accept header applied. Multi-valued query
// parameters keep their within-key order. An empty accept defaults to JSON.
func (c *Client) newRequest(ctx context.Context, method, target string, query url.Values, accept string, body io.Reader) (*http.Request, error) {
	if len(query) > 0 {
		target = target + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	switch c.tokenType {
	case TokenTypeAccess:
		req.Header.Set(authorizationHeader, "Bearer "+c.authToken)
	default:
		req.Header.Set(privateTokenHeader, c.authToken)
	}

	if accept == "" {
		accept = mediaTypeJSON
	}
	req.Header.Set("Accept", accept)

	c.mu.Lock()
	if c.sudoID > 0 {
		req.Header.Set(sudoHeader, strconv.Itoa(c.sudoID))
	}
	c.mu.Unlock()

	return req, nil
}

// do executes the request on the cached handle. Transport errors pass
// through unchanged; status-code interpretation is left to the caller.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.client().Do(req)
}

// Get performs a GET call with the given query parameters against the
// joined path segments.
func (c *Client) Get(ctx context.Context, query url.Values, segments ...any) (*http.Response, error) {
	return c.GetWithAccept(ctx, query, "", segments...)
}

// GetWithAccept is Get with an Accept header override.
func (c *Client) GetWithAccept(ctx context.Context, query url.Values, accept string, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, target, query, accept, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

// Post performs a POST call with the payload serialized to JSON.
func (c *Client) Post(ctx context.Context, payload any, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, target, nil, "", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mediaTypeJSON)

	return c.do(req)
}

// PostForm performs a POST call with the form serialized as a
// form-urlencoded body.
func (c *Client) PostForm(ctx context.Context, form *Form, segments ...any) (*http.Response, error) {
	return c.submitForm(ctx, http.MethodPost, form, segments...)
}

// PostQuery performs a POST call carrying only query parameters and an
// empty body.
func (c *Client) PostQuery(ctx context.Context, query url.Values, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, target, query, "", nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

// PutForm performs a PUT call with the form serialized as a
// form-urlencoded body.
func (c *Client) PutForm(ctx context.Context, form *Form, segments ...any) (*http.Response, error) {
	return c.submitForm(ctx, http.MethodPut, form, segments...)
}

// PutQueryBody performs a PUT call where the parameter map itself becomes
// the form-urlencoded request body. Nothing is appended to the query
// string; use PutForm with FormFromValues for the same wire shape built
// through the Form helper.
func (c *Client) PutQueryBody(ctx context.Context, query url.Values, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, target, nil, "", strings.NewReader(query.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mediaTypeForm)

	return c.do(req)
}

// Delete performs a DELETE call with the given query parameters and no body.
func (c *Client) Delete(ctx context.Context, query url.Values, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, target, query, "", nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *Client) submitForm(ctx context.Context, method string, form *Form, segments ...any) (*http.Response, error) {
	target, err := c.apiURL(segments...)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, target, nil, "", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mediaTypeForm)

	return c.do(req)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/drawlabs/luckyadmin/internal/logging"
)

// maxErrorBody bounds how much of a failed response we read looking for a
// server message.
const maxErrorBody = 64 << 10

// HTTPClient implements Client over REST+JSON.
type HTTPClient struct {
	base      *url.URL
	http      *http.Client
	transport *Transport
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL. The timeout applies
// per request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	if log == nil {
		log = logging.Nop()
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	tr := NewTransport(nil, log)
	return &HTTPClient{
		base:      base,
		http:      &http.Client{Transport: tr, Timeout: timeout},
		transport: tr,
		log:       log,
	}, nil
}

// BindSession wires the session layer into the transport: tokens supplies
// the bearer token for outgoing requests, onUnauthorized runs when a
// non-auth request is rejected with 401.
func (c *HTTPClient) BindSession(tokens TokenSource, onUnauthorized func()) {
	c.transport.Bind(tokens, onUnauthorized)
}

// Login implements Client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	creds := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp.Body)
		return "", ErrInvalidCredentials
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if out.Token == "" {
		return "", &Error{StatusCode: resp.StatusCode, Message: "login response carried no token"}
	}
	return out.Token, nil
}

// Validate implements Client.
func (c *HTTPClient) Validate(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/auth/validate", nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

// GetJSON implements Client.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeJSON(resp, out)
}

// PostJSON implements Client.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		if err := checkStatus(resp); err != nil {
			return err
		}
		drain(resp.Body)
		return nil
	}
	return decodeJSON(resp, out)
}

// PutJSON implements Client.
func (c *HTTPClient) PutJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		if err := checkStatus(resp); err != nil {
			return err
		}
		drain(resp.Body)
		return nil
	}
	return decodeJSON(resp, out)
}

// Delete implements Client.
func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	drain(resp.Body)
	return nil
}

// GetBinary implements Client.
func (c *HTTPClient) GetBinary(ctx context.Context, path string, query url.Values) (*Download, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download body: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Download{
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Close implements Client.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do builds and issues one request. Transport-level failures come back
// wrapped in ErrUnavailable; any received response is returned as is for
// the caller to interpret.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// decodeJSON maps the response status and decodes the body into out. An
// empty or null body on success counts as not found, so callers never get
// a zero-valued record that looks real.
func decodeJSON(resp *http.Response, out any) error {
	if err := checkStatus(resp); err != nil {
		return err
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if out == nil {
		return nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// checkStatus maps a non-2xx response onto the error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		drain(resp.Body)
		return ErrUnauthorized
	case http.StatusNotFound:
		drain(resp.Body)
		return ErrNotFound
	}
	return &Error{StatusCode: resp.StatusCode, Message: serverMessage(resp.Body)}
}

// serverMessage pulls a human-readable message out of an error body. The
// backend answers with {"message": ...} but some proxies use {"error": ...}
// or plain text.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

// dispositionFilename extracts the filename parameter from a
// Content-Disposition header, or returns "" when absent or malformed.
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func drain(r io.Reader) {
	io.Copy(io.Discard, io.LimitReader(r, maxErrorBody)) //nolint:errcheck
}

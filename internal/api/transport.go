package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/drawlabs/luckyadmin/internal/logging"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// TokenSource supplies the current bearer token. An empty string means
// no session, in which case no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// Transport decorates an http.RoundTripper with session concerns: it
// attaches the bearer token and a request id to every outgoing request,
// logs the outcome, and reports 401 responses from non-auth endpoints to
// the bound handler. The session layer binds itself after construction via
// Bind, which resolves the otherwise circular client/session dependency.
type Transport struct {
	base http.RoundTripper
	log  logging.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func()
}

// NewTransport wraps base, or http.DefaultTransport when base is nil.
func NewTransport(base http.RoundTripper, log logging.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Transport{base: base, log: log}
}

// Bind attaches the token source and the handler invoked when a non-auth
// request comes back 401. Either argument may be nil.
func (t *Transport) Bind(tokens TokenSource, onUnauthorized func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens = tokens
	t.onUnauthorized = onUnauthorized
}

func (t *Transport) session() (TokenSource, func()) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tokens, t.onUnauthorized
}

// RoundTrip implements http.RoundTripper. The request is cloned before
// headers are added, as required by the RoundTripper contract.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	tokens, onUnauthorized := t.session()

	clone := req.Clone(req.Context())
	if tokens != nil {
		if tok := tokens.Token(); tok != "" {
			clone.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if clone.Header.Get(RequestIDHeader) == "" {
		clone.Header.Set(RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		t.log.Debug(req.Context(), "request failed",
			"method", clone.Method, "path", clone.URL.Path, "error", err)
		return nil, err
	}

	t.log.Debug(req.Context(), "request finished",
		"method", clone.Method, "path", clone.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && onUnauthorized != nil && !isAuthPath(clone.URL.Path) {
		onUnauthorized()
	}
	return resp, nil
}

// isAuthPath reports whether p belongs to the auth endpoints. Their 401s
// mean bad credentials or an explicit validation failure, not a session
// that expired mid-flight, so the unauthorized handler must not fire.
func isAuthPath(p string) bool {
	return strings.Contains(p, "/auth/")
}

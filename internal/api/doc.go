// Package api contains the HTTP building blocks for talking to the Lucky
// Draw backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     auth endpoints (Login, Validate) and the generic resource verbs the
//     engine layer is built on (GetJSON, PostJSON, PutJSON, Delete,
//     GetBinary).
//  2. A concrete implementation (see HTTPClient) that joins paths onto the
//     configured base URL, encodes/decodes JSON bodies, and maps transport
//     and status failures onto sentinel errors.
//  3. A RoundTripper (see Transport) that attaches the bearer token and an
//     X-Request-Id header to every outgoing request and invokes the bound
//     unauthorized handler when a 401 arrives from a non-auth endpoint.
//     That hook is the session-expiry interceptor, independent of which
//     resource issued the request.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (no response at all), ErrUnauthorized, ErrInvalidCredentials
// (login rejection), ErrNotFound (404 or a 2xx with no payload). Other
// non-2xx responses become *Error values carrying the status code and the
// server-provided message when one is present.
//
// Concurrency: HTTPClient is safe for concurrent use. All operations accept
// a context and honor its cancellation.
package api

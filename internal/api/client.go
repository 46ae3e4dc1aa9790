package api

import (
	"context"
	"net/url"
)

// Client is the transport contract the session and resource layers are
// written against. Production code uses HTTPClient; tests substitute fakes.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Validate checks the current token against the server.
	Validate(ctx context.Context) error

	// GetJSON fetches path with the given query and decodes the response
	// body into out. A nil out discards the body.
	GetJSON(ctx context.Context, path string, query url.Values, out any) error

	// PostJSON sends body as JSON to path and decodes the response into out
	// when out is non-nil.
	PostJSON(ctx context.Context, path string, body, out any) error

	// PutJSON sends body as JSON to path and decodes the response into out
	// when out is non-nil.
	PutJSON(ctx context.Context, path string, body, out any) error

	// Delete removes the record at path.
	Delete(ctx context.Context, path string) error

	// GetBinary fetches path as raw bytes, preserving the server-supplied
	// filename and content type.
	GetBinary(ctx context.Context, path string, query url.Values) (*Download, error)

	// Close releases any idle transport resources.
	Close() error
}

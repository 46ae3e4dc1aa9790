// Package session owns the authentication lifecycle of the admin client.
//
// # Overview
//
// The Manager moves the client between two states, logged out and logged
// in, through four entry points:
//
//   - Initialize restores a persisted token on startup and validates it
//     against the server. It runs its work at most once.
//   - Login validates the credentials locally, exchanges them for a token,
//     and persists it.
//   - Logout discards the session, optionally with a farewell notice.
//   - HandleUnauthorized tears the session down when the server rejects a
//     request mid-flight. However many rejections arrive, the operator is
//     told about the expiry once.
//
// Tokens are persisted through a TokenStore; FileStore keeps them in a
// file readable only by the owner. Claims are decoded for display with no
// signature check, since the client holds no key material.
package session

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/logging"
	"github.com/drawlabs/luckyadmin/internal/notify"
)

// ErrNoSession means an operation that needs an authenticated session was
// attempted without one.
var ErrNoSession = errors.New("no active session")

// State is the authentication state of the client.
type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
)

func (s State) String() string {
	if s == StateLoggedIn {
		return "logged in"
	}
	return "logged out"
}

// LoginResult reports the outcome of a login attempt. Either OK is true,
// or Message (and possibly FieldErrors) explains the rejection.
type LoginResult struct {
	OK          bool
	Message     string
	FieldErrors map[string]string
}

// AuthAPI is the slice of the transport the session layer needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Validate(ctx context.Context) error
}

// Manager owns the session state machine. It implements api.TokenSource,
// so binding it to the transport gives every outgoing request the current
// token.
type Manager struct {
	api      AuthAPI
	store    TokenStore
	notifier notify.Notifier
	log      logging.Logger

	initOnce sync.Once

	mu              sync.Mutex
	token           string
	state           State
	expiredNotified bool
}

var _ api.TokenSource = (*Manager)(nil)

// NewManager wires the session layer. The notifier receives every
// user-facing session message.
func NewManager(client AuthAPI, store TokenStore, notifier notify.Notifier, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		api:      client,
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// Initialize restores a persisted session, if any, and returns the
// resulting state. The restore work runs at most once; later calls only
// report the current state.
func (m *Manager) Initialize(ctx context.Context) State {
	m.initOnce.Do(func() { m.restore(ctx) })
	return m.State()
}

func (m *Manager) restore(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil {
		m.log.Warn(ctx, "loading stored token", "error", err)
		return
	}
	if token == "" {
		return
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	err = m.api.Validate(ctx)
	if err == nil {
		m.mu.Lock()
		m.state = StateLoggedIn
		m.expiredNotified = false
		m.mu.Unlock()
		return
	}

	// Any failure, rejection or unreachable server, invalidates the stored
	// token. Validation goes to an auth endpoint, so the transport hook
	// stays silent and the expiry is announced here.
	if !errors.Is(err, api.ErrUnauthorized) {
		m.log.Warn(ctx, "validating stored token", "error", err)
	}
	m.teardown()
	m.notifier.Error("session expired, please log in again")
}

// Login validates the credentials locally and, only if they pass,
// exchanges them for a token. Malformed input never reaches the network.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	creds := Credentials{Email: strings.TrimSpace(email), Password: password}
	if fieldErrs := ValidateCredentials(creds); len(fieldErrs) > 0 {
		return LoginResult{Message: "please correct the credentials", FieldErrors: fieldErrs}
	}

	token, err := m.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrInvalidCredentials):
			return LoginResult{Message: "invalid email or password"}
		case errors.Is(err, api.ErrUnavailable):
			return LoginResult{Message: "server unavailable, try again later"}
		}
		m.log.Warn(ctx, "login failed", "error", err)
		return LoginResult{Message: err.Error()}
	}

	m.mu.Lock()
	m.token = token
	m.state = StateLoggedIn
	m.expiredNotified = false
	m.mu.Unlock()

	if err := m.store.Save(token); err != nil {
		m.log.Warn(ctx, "persisting token", "error", err)
	}
	m.notifier.Success("logged in")
	return LoginResult{OK: true}
}

// Logout discards the session. With showMessage set, a farewell notice is
// shown once; logging out while already logged out stays silent.
func (m *Manager) Logout(ctx context.Context, showMessage bool) {
	m.mu.Lock()
	wasLoggedIn := m.state == StateLoggedIn
	m.token = ""
	m.state = StateLoggedOut
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn(ctx, "clearing stored token", "error", err)
	}
	if showMessage && wasLoggedIn {
		m.notifier.Success("logged out")
	}
}

// HandleUnauthorized tears the session down after the server rejected a
// request mid-flight. Overlapping rejections collapse into a single
// notification; the guard re-arms on the next successful login.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	alreadyNotified := m.expiredNotified
	m.expiredNotified = true
	m.token = ""
	m.state = StateLoggedOut
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn(context.Background(), "clearing stored token", "error", err)
	}
	if !alreadyNotified {
		m.notifier.Error("session expired, please log in again")
	}
}

func (m *Manager) teardown() {
	m.mu.Lock()
	m.token = ""
	m.state = StateLoggedOut
	m.expiredNotified = true
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.log.Warn(context.Background(), "clearing stored token", "error", err)
	}
}

// Check verifies the current session against the server. A rejection
// tears the session down the same way a mid-flight 401 does.
func (m *Manager) Check(ctx context.Context) error {
	if !m.IsAuthenticated() {
		return ErrNoSession
	}
	if err := m.api.Validate(ctx); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			m.HandleUnauthorized()
		}
		return err
	}
	return nil
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated is shorthand for State() == StateLoggedIn.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateLoggedIn
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Claims decodes the current token payload for display.
func (m *Manager) Claims() (*Claims, error) {
	token := m.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	return ParseClaims(token)
}

// Package services contains the application services of the vacstats client.
// This file defines the session manager: startup hydration from the persisted
// store, login/logout against the backend, and the forced-logout path taken
// when any call comes back 401.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/vacstats/internal/client/api"
	"github.com/dmitrijs2005/vacstats/internal/client/models"
	"github.com/dmitrijs2005/vacstats/internal/client/session"
	"github.com/dmitrijs2005/vacstats/internal/logging"
)

// View identifies a navigation target inside the client.
type View string

const (
	ViewHome      View = "home"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// Navigator switches the visible view. The session manager drives navigation
// after login, logout, and session expiry; the transport layer never does.
type Navigator interface {
	NavigateTo(view View)
}

// Client-side credential checks. These fail before any network traffic and
// each carries the specific violated rule.
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
)

const minPasswordLen = 4

// ValidateCredentials applies the pre-network form checks. The email is
// matched after trimming surrounding whitespace.
func ValidateCredentials(creds models.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return ErrEmailRequired
	}
	if creds.Password == "" {
		return ErrPasswordRequired
	}
	if len(creds.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// AuthManager owns the in-memory session. The persisted store is a durable
// mirror only: once hydrated, memory wins until the next explicit login or
// logout.
type AuthManager struct {
	api   api.Client
	store session.Store
	nav   Navigator
	log   logging.Logger

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
}

func NewAuthManager(apiClient api.Client, store session.Store, nav Navigator, log logging.Logger) *AuthManager {
	return &AuthManager{api: apiClient, store: store, nav: nav, log: log, loading: true}
}

// Initialize hydrates the in-memory session from the persisted store. It
// runs once at startup; repeated calls are no-ops. A corrupted stored user
// record is treated as "not logged in" and both keys are removed, so a bad
// write can never wedge the client. The loading flag drops regardless of
// outcome.
func (m *AuthManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loading {
		return nil
	}
	defer func() { m.loading = false }()

	token, userJSON, err := session.Load(ctx, m.store)
	if err != nil {
		m.log.Warn(ctx, "could not read persisted session", "error", err)
		return nil
	}
	if token == "" {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		m.log.Warn(ctx, "persisted user record is corrupted, clearing session", "error", err)
		if err := session.Drop(ctx, m.store); err != nil {
			m.log.Warn(ctx, "could not clear corrupted session", "error", err)
		}
		return nil
	}

	m.token = token
	m.user = &user
	return nil
}

// Login validates the credentials, authenticates against the backend,
// persists the session, and navigates to the dashboard. On any failure the
// in-memory state is left untouched and the returned error is already
// message-mapped for display; the caller owns rendering it.
func (m *AuthManager) Login(ctx context.Context, creds models.Credentials) error {
	if err := ValidateCredentials(creds); err != nil {
		return err
	}
	creds.Email = strings.TrimSpace(creds.Email)

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		return api.RefineLoginError(err)
	}

	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	if err := session.Save(ctx, m.store, resp.AccessToken, userJSON); err != nil {
		// memory is the source of truth; a failed mirror write only costs
		// the session surviving a restart
		m.log.Warn(ctx, "could not persist session", "error", err)
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	user := resp.User
	m.user = &user
	m.mu.Unlock()

	m.log.Info(ctx, "login succeeded", "email", resp.User.Email)
	m.nav.NavigateTo(ViewDashboard)
	return nil
}

// Logout clears the persisted and in-memory session, navigates to the login
// view, and then tells the server best-effort. The token is stateless, so a
// failed server call never blocks a local logout; calling Logout twice is
// harmless.
func (m *AuthManager) Logout(ctx context.Context) error {
	if err := session.Drop(ctx, m.store); err != nil {
		m.log.Warn(ctx, "could not clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	m.nav.NavigateTo(ViewLogin)

	if err := m.api.Logout(ctx); err != nil {
		m.log.Debug(ctx, "logout call failed, ignoring", "error", err)
	}
	return nil
}

// HandleUnauthorized is registered as the REST client's 401 hook. It clears
// the session once and redirects to the login view; concurrent or repeated
// 401s find an already-empty session and do nothing.
func (m *AuthManager) HandleUnauthorized() {
	ctx := context.Background()

	m.mu.Lock()
	wasAuthenticated := m.token != ""
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := session.Drop(ctx, m.store); err != nil {
		m.log.Warn(ctx, "could not clear persisted session", "error", err)
	}

	if wasAuthenticated {
		m.log.Info(ctx, "session expired, returning to login")
		m.nav.NavigateTo(ViewLogin)
	}
}

// IsAuthenticated is derived from token presence so it can never disagree
// with the token itself.
func (m *AuthManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// IsLoading reports whether startup hydration is still pending.
func (m *AuthManager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (m *AuthManager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// TokenExpiry returns the access token's exp claim when the token is a
// parseable JWT. Tokens are otherwise opaque to the client, so a zero time
// simply means "unknown".
func (m *AuthManager) TokenExpiry() time.Time {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

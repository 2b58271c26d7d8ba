package auth

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vesseldocs-backend/pkg/errors"
)

// DefaultSessionTTL is the fixed validity window for issued sessions.
const DefaultSessionTTL = time.Hour

// Account is one entry of the credential whitelist. An account is only
// usable while the backend runs in one of its listed modes; an empty Modes
// list means the account is valid everywhere.
type Account struct {
	Principal string   `yaml:"principal"`
	Secret    string   `yaml:"secret"`
	Role      Role     `yaml:"role"`
	Modes     []string `yaml:"modes,omitempty"`
}

func (a Account) validInMode(mode string) bool {
	if len(a.Modes) == 0 {
		return true
	}
	for _, m := range a.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// ModeSource exposes the currently resolved backend mode. The config
// resolver implements it; keeping it an interface here avoids a dependency
// from auth onto the config package.
type ModeSource interface {
	CurrentMode() string
}

// Authenticator issues and validates sessions against a per-mode account
// whitelist. Concurrent authentications for the same principal produce
// independent sessions; there is no single-session-per-principal rule.
type Authenticator struct {
	accounts []Account
	store    SessionStore
	modes    ModeSource
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewAuthenticator creates an authenticator over the given whitelist.
func NewAuthenticator(accounts []Account, store SessionStore, modes ModeSource, ttl time.Duration, logger *zap.Logger) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Authenticator{
		accounts: accounts,
		store:    store,
		modes:    modes,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the time source. Test hook.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	a.now = now
	return a
}

// Authenticate checks principal and secret against the whitelist for the
// current backend mode and, on success, issues a fresh session with a
// cryptographically unpredictable identifier.
func (a *Authenticator) Authenticate(principal, secret string) (*Session, error) {
	mode := a.modes.CurrentMode()

	account, ok := a.lookup(principal, mode)
	if !ok || subtle.ConstantTimeCompare([]byte(account.Secret), []byte(secret)) != 1 {
		a.logger.Warn("authentication rejected",
			zap.String("principal", principal),
			zap.String("mode", mode),
		)
		return nil, errors.NewAuthError("")
	}

	session := &Session{
		ID:        uuid.New().String(),
		Principal: account.Principal,
		Role:      account.Role,
		IssuedAt:  a.now(),
		TTL:       a.ttl,
	}
	a.store.Put(session)

	a.logger.Info("session issued",
		zap.String("principal", session.Principal),
		zap.String("role", string(session.Role)),
		zap.Time("expiresAt", session.ExpiresAt()),
	)
	return session, nil
}

// Validate is a pure lookup plus TTL comparison. Unknown identifiers and
// expired sessions fail with distinguishable errors so callers can decide
// between "re-auth silently" and "ask the user".
func (a *Authenticator) Validate(sessionID string) (*Session, error) {
	s, ok := a.store.Get(sessionID)
	if !ok {
		return nil, errors.NewSessionNotFoundError()
	}
	if s.Expired(a.now()) {
		return nil, errors.NewSessionExpiredError(sessionID)
	}
	return s, nil
}

// IsAuthenticated reports whether the session id maps to a live session.
func (a *Authenticator) IsAuthenticated(sessionID string) bool {
	_, err := a.Validate(sessionID)
	return err == nil
}

func (a *Authenticator) lookup(principal, mode string) (Account, bool) {
	for _, acct := range a.accounts {
		if acct.Principal == principal && acct.validInMode(mode) {
			return acct, true
		}
	}
	return Account{}, false
}

package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vesseldocs-backend/pkg/errors"
)

type staticMode string

func (m staticMode) CurrentMode() string { return string(m) }

func testAccounts() []Account {
	return []Account{
		{Principal: "admin_user", Secret: "admin-secret", Role: RoleAdmin},
		{Principal: "readonly_user", Secret: "readonly-secret", Role: RoleReadOnly},
		{Principal: "local_tech", Secret: "local-secret", Role: RoleReadOnly, Modes: []string{"local"}},
	}
}

func newTestAuthenticator(t *testing.T, mode string) (*Authenticator, *MemorySessionStore) {
	t.Helper()
	store := NewMemorySessionStore()
	a := NewAuthenticator(testAccounts(), store, staticMode(mode), time.Hour, zap.NewNop())
	return a, store
}

func TestAuthenticate_Success(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	s, err := a.Authenticate("readonly_user", "readonly-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "readonly_user", s.Principal)
	assert.Equal(t, RoleReadOnly, s.Role)
	assert.Equal(t, time.Hour, s.TTL)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	_, err := a.Authenticate("readonly_user", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestAuthenticate_UnknownPrincipal(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	_, err := a.Authenticate("nobody", "whatever")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestAuthenticate_ModeScopedAccount(t *testing.T) {
	// local_tech is whitelisted for local mode only.
	local, _ := newTestAuthenticator(t, "local")
	_, err := local.Authenticate("local_tech", "local-secret")
	require.NoError(t, err)

	cloud, _ := newTestAuthenticator(t, "cloud")
	_, err = cloud.Authenticate("local_tech", "local-secret")
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestValidate_ImmediatelyAfterAuthenticate(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	issued, err := a.Authenticate("readonly_user", "readonly-secret")
	require.NoError(t, err)

	got, err := a.Validate(issued.ID)
	require.NoError(t, err)
	assert.Equal(t, issued.Principal, got.Principal)
	assert.False(t, got.Expired(time.Now()))
}

func TestValidate_UnknownSession(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	_, err := a.Validate("no-such-session")
	require.Error(t, err)
	assert.True(t, errors.IsSessionNotFound(err))
}

func TestValidate_TTLBoundary(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := base

	store := NewMemorySessionStore()
	a := NewAuthenticator(testAccounts(), store, staticMode("cloud"), time.Hour, zap.NewNop()).
		WithClock(func() time.Time { return now })

	s, err := a.Authenticate("admin_user", "admin-secret")
	require.NoError(t, err)

	// One nanosecond before expiry the session is still valid.
	now = base.Add(time.Hour - time.Nanosecond)
	_, err = a.Validate(s.ID)
	require.NoError(t, err)

	// Exactly at issuedAt+ttl the session is expired.
	now = base.Add(time.Hour)
	_, err = a.Validate(s.ID)
	require.Error(t, err)
	assert.True(t, errors.IsSessionExpired(err))

	assert.False(t, a.IsAuthenticated(s.ID))
}

func TestAuthenticate_ConcurrentSamePrincipal(t *testing.T) {
	a, _ := newTestAuthenticator(t, "cloud")

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := a.Authenticate("readonly_user", "readonly-secret")
			require.NoError(t, err)
			ids[i] = s.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "session ids must be distinct")
		seen[id] = true
		assert.True(t, a.IsAuthenticated(id))
	}
}

func TestSessionStore_ActiveCountDropsExpired(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := base
	store := NewMemorySessionStoreWithClock(func() time.Time { return now })

	store.Put(&Session{ID: "a", Principal: "p", Role: RoleReadOnly, IssuedAt: base, TTL: time.Minute})
	store.Put(&Session{ID: "b", Principal: "p", Role: RoleReadOnly, IssuedAt: base, TTL: time.Hour})
	assert.Equal(t, 2, store.ActiveCount())

	now = base.Add(2 * time.Minute)
	assert.Equal(t, 1, store.ActiveCount())

	_, ok := store.Get("a")
	assert.False(t, ok, "expired session is dropped once observed")
}

package auth

import (
	"context"
	"testing"

	"github.com/evenlines/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *StubProvider) {
	t.Helper()
	provider := NewStubProvider(config.IdentityConfig{ProjectID: "test-project"})
	session := NewSession(provider)
	t.Cleanup(session.Close)
	return session, provider
}

func TestSession_LoadingUntilInit(t *testing.T) {
	session, _ := newTestSession(t)

	assert.True(t, session.IsLoading())
	assert.False(t, session.IsAuthenticated())

	session.Init()

	// The initial auth-state callback fires synchronously
	assert.False(t, session.IsLoading())
	assert.False(t, session.IsAuthenticated())
}

func TestSession_LoginLogout(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()
	ctx := context.Background()

	require.True(t, session.Login(ctx, "fan@example.com", "any-password"))
	assert.True(t, session.IsAuthenticated())
	require.NotNil(t, session.User())
	assert.Equal(t, "fan@example.com", session.User().Email)
	assert.Equal(t, "fan", session.User().DisplayName)

	session.Logout(ctx)
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.User())
}

func TestSession_LoginRejectsBadEmail(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()

	assert.False(t, session.Login(context.Background(), "not-an-email", "password"))
	assert.False(t, session.IsAuthenticated())
}

func TestSession_LoginRejectsEmptyPassword(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()

	assert.False(t, session.Login(context.Background(), "fan@example.com", ""))
}

func TestSession_RegisteredAccountRequiresItsPassword(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()
	ctx := context.Background()

	require.True(t, session.Register(ctx, "member@example.com", "correct-horse", "Member"))
	session.Logout(ctx)

	assert.False(t, session.Login(ctx, "member@example.com", "wrong-password"))
	assert.False(t, session.IsAuthenticated())

	assert.True(t, session.Login(ctx, "member@example.com", "correct-horse"))
	assert.Equal(t, "Member", session.User().DisplayName)
}

func TestSession_UnknownCredentialsAreAccepted(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()

	// Preview behavior: anyone can sign in with plausible credentials
	assert.True(t, session.Login(context.Background(), "stranger@example.com", "whatever"))
	assert.True(t, session.IsAuthenticated())
}

func TestSession_UpdateUserProfile(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()
	ctx := context.Background()

	require.True(t, session.Register(ctx, "member@example.com", "pw123456", "Old Name"))
	require.NoError(t, session.UpdateUserProfile(ctx, "New Name"))
	assert.Equal(t, "New Name", session.User().DisplayName)
}

func TestSession_ResetPassword(t *testing.T) {
	session, _ := newTestSession(t)
	session.Init()

	assert.NoError(t, session.ResetPassword(context.Background(), "fan@example.com"))
	assert.Error(t, session.ResetPassword(context.Background(), "bogus"))
}

func TestSession_CloseStopsCallbacks(t *testing.T) {
	provider := NewStubProvider(config.IdentityConfig{})
	session := NewSession(provider)
	session.Init()
	ctx := context.Background()

	require.True(t, session.Login(ctx, "fan@example.com", "pw"))
	session.Close()

	// Provider state changes no longer reach the closed session
	require.NoError(t, provider.SignOut(ctx))
	assert.True(t, session.IsAuthenticated())
}

func TestStubProvider_SubscribeInvokesWithCurrentState(t *testing.T) {
	provider := NewStubProvider(config.IdentityConfig{})

	user, err := provider.SignIn(context.Background(), "fan@example.com", "pw")
	require.NoError(t, err)

	var got *User
	unsub := provider.Subscribe(func(u *User) { got = u })
	defer unsub()

	require.NotNil(t, got)
	assert.Equal(t, user.UID, got.UID)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct-horse"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.NotContains(t, string(hash), "correct-horse")
}

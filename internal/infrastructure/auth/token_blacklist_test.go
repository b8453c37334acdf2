package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/hospicetrack/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_AddToBlacklist(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	// Revoke a token, as Logout does
	err := blacklist.AddToBlacklist(ctx, "logout-jti-1", 1*time.Hour)
	require.NoError(t, err)

	// The revoked JTI is rejected
	isBlacklisted, err := blacklist.IsBlacklisted(ctx, "logout-jti-1")
	require.NoError(t, err)
	assert.True(t, isBlacklisted)

	// Other sessions stay valid
	isBlacklisted, err = blacklist.IsBlacklisted(ctx, "logout-jti-2")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}

func TestInMemoryTokenBlacklist_ExpirationCleanup(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	// Entries evaporate with the token's own expiry
	err := blacklist.AddToBlacklist(ctx, "short-lived-jti", 1*time.Millisecond)
	require.NoError(t, err)

	// Wait for expiration
	time.Sleep(10 * time.Millisecond)

	// Should no longer be blacklisted
	isBlacklisted, err := blacklist.IsBlacklisted(ctx, "short-lived-jti")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}

func TestInMemoryTokenBlacklist_UserTokenInvalidation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	// Token issued an hour before the password change
	tokenIssuedAt := time.Now().Add(-1 * time.Hour)

	// Initially nothing is invalidated
	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "rep-1", tokenIssuedAt)
	require.NoError(t, err)
	assert.False(t, invalidated)

	// Password change invalidates every outstanding token for the user
	err = blacklist.AddUserTokensToBlacklist(ctx, "rep-1", 1*time.Hour)
	require.NoError(t, err)

	// Tokens from before the change are dead
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "rep-1", tokenIssuedAt)
	require.NoError(t, err)
	assert.True(t, invalidated)

	// Tokens issued afterwards are fine
	futureToken := time.Now().Add(1 * time.Second)
	time.Sleep(2 * time.Millisecond)
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "rep-1", futureToken)
	require.NoError(t, err)
	assert.False(t, invalidated)

	// Another rep is untouched
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "rep-2", tokenIssuedAt)
	require.NoError(t, err)
	assert.False(t, invalidated)
}

func TestInMemoryTokenBlacklist_MultipleTokens(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	// Several concurrent sessions logged out
	for i := 0; i < 10; i++ {
		jti := "session-jti-" + string(rune('a'+i))
		err := blacklist.AddToBlacklist(ctx, jti, 1*time.Hour)
		require.NoError(t, err)
	}

	for i := 0; i < 10; i++ {
		jti := "session-jti-" + string(rune('a'+i))
		isBlacklisted, err := blacklist.IsBlacklisted(ctx, jti)
		require.NoError(t, err)
		assert.True(t, isBlacklisted, "token %s should be blacklisted", jti)
	}

	// A live session is unaffected
	isBlacklisted, err := blacklist.IsBlacklisted(ctx, "still-active")
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}

func TestInMemoryTokenBlacklist_Interface(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
}

func TestRedisTokenBlacklist_Interface(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}

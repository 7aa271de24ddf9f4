package auth

import (
	"testing"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()

	manager, err := NewManager(config.JWTConfig{
		AccessTokenTTL: ttl,
		SigningKey:     testSigningKey,
	})
	require.NoError(t, err)

	return manager
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Minute})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: testSigningKey})
	assert.Error(t, err)
}

func TestManager_NewJWTAndParse(t *testing.T) {
	manager := newTestManager(t, 30*time.Minute)

	token, ttl, err := manager.NewJWT(42)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, ttl)

	userID, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestManager_ParseWrongKey(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	token, _, err := manager.NewJWT(7)
	require.NoError(t, err)

	other, err := NewManager(config.JWTConfig{
		AccessTokenTTL: time.Minute,
		SigningKey:     "a-different-key",
	})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestManager_ParseExpired(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, _, err := manager.NewJWT(7)
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestManager_ParseTampered(t *testing.T) {
	manager := newTestManager(t, time.Minute)

	token, _, err := manager.NewJWT(7)
	require.NoError(t, err)

	_, err = manager.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = manager.Parse("not.a.token")
	assert.Error(t, err)
}

func signClaims(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	return token
}

func TestManager_ParseSubjectClaims(t *testing.T) {
	manager := newTestManager(t, time.Minute)
	expiry := jwt.NewNumericDate(time.Now().Add(time.Minute))

	noSubject := signClaims(t, jwt.RegisteredClaims{ExpiresAt: expiry})
	_, err := manager.Parse(noSubject)
	assert.ErrorIs(t, err, ErrMissingSubject)

	textSubject := signClaims(t, jwt.RegisteredClaims{Subject: "alice", ExpiresAt: expiry})
	_, err = manager.Parse(textSubject)
	assert.ErrorIs(t, err, ErrMalformedSubject)

	negativeSubject := signClaims(t, jwt.RegisteredClaims{Subject: "-3", ExpiresAt: expiry})
	_, err = manager.Parse(negativeSubject)
	assert.ErrorIs(t, err, ErrMalformedSubject)
}

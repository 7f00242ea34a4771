package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{UserID: "u-1", Username: "admin", Email: "admin@example.com", Role: "admin"}

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, expiresAt, err := m.Issue(testIdentity)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewManager("secret", time.Hour).Issue(testIdentity)
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue(testIdentity)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).Parse(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsBlankToken(t *testing.T) {
	_, err := NewManager("secret", time.Hour).Parse("  ")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestClaimsHasRole(t *testing.T) {
	claims := &Claims{Role: "Editor"}
	assert.True(t, claims.HasRole("admin", "editor"))
	assert.False(t, claims.HasRole("admin"))
}

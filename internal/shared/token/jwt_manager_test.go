package token

import (
	"strings"
	"testing"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(&config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Issuer:        "together-culture-api",
			Audience:      "together-culture-web",
			Expiry:        time.Hour,
			RefreshExpiry: 168 * time.Hour,
		},
	})
}

var testIdentity = Identity{UserID: 7, MemberID: 11, Email: "ada@example.com", Name: "Ada Lovelace"}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateAccessToken(testIdentity)
	require.NoError(t, err)

	claims, err := m.ValidateToken(signed)
	require.NoError(t, err)

	id, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, testIdentity, id)
	assert.Equal(t, ACCESS, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := m.GenerateAccessToken(testIdentity)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	signed, err := m.GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateRefreshToken_IgnoresExpiry(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-30 * 24 * time.Hour) }

	signed, err := m.GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	m.now = time.Now
	claims, err := m.ValidateRefreshToken(signed)
	require.NoError(t, err)
	assert.Equal(t, REFRESH, claims.TokenType)
}

func TestValidateRefreshToken_WrongAudienceOrIssuer(t *testing.T) {
	signer := newTestManager()
	signer.audience = "someone-else"
	wrongAudience, err := signer.GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	signer = newTestManager()
	signer.issuer = "someone-else"
	wrongIssuer, err := signer.GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	m := newTestManager()
	_, err = m.ValidateRefreshToken(wrongAudience)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateRefreshToken(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRefreshToken_BadSignature(t *testing.T) {
	m := newTestManager()
	signed, err := m.GenerateRefreshToken(testIdentity)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".invalidsignature"

	_, err = m.ValidateRefreshToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRefreshToken_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager()
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{TokenType: REFRESH})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package security_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"climateviz_api/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyPair(t *testing.T) *security.KeyPair {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return security.NewKeyPair(priv, &priv.PublicKey)
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	keys := newTestKeyPair(t)
	tokens := security.NewTokenService(keys, "ClimateViz", time.Hour)

	signed, err := tokens.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, 3, len(strings.Split(signed, ".")))

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	keys := newTestKeyPair(t)
	issuer := security.NewTokenService(keys, "ClimateViz", -time.Minute)

	signed, err := issuer.Issue(42)
	require.NoError(t, err)

	verifier := security.NewTokenService(keys, "ClimateViz", time.Hour)
	claims, err := verifier.Verify(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

func TestTokenServiceRejectsTamperedSignature(t *testing.T) {
	keys := newTestKeyPair(t)
	tokens := security.NewTokenService(keys, "ClimateViz", time.Hour)

	signed, err := tokens.Issue(42)
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	last := signed[len(signed)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := signed[:len(signed)-1] + string(replacement)

	claims, err := tokens.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, security.ErrInvalidSignature)
}

func TestTokenServiceRejectsForeignKey(t *testing.T) {
	issuerKeys := newTestKeyPair(t)
	issuer := security.NewTokenService(issuerKeys, "ClimateViz", time.Hour)

	signed, err := issuer.Issue(42)
	require.NoError(t, err)

	verifier := security.NewTokenService(newTestKeyPair(t), "ClimateViz", time.Hour)
	claims, err := verifier.Verify(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, security.ErrInvalidSignature)
}

func TestTokenServiceRejectsNonRSAAlgorithm(t *testing.T) {
	keys := newTestKeyPair(t)
	tokens := security.NewTokenService(keys, "ClimateViz", time.Hour)

	// A token asserting HS256 must be rejected no matter what it is signed
	// with.
	hsToken := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := hsToken.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, security.ErrInvalidSignature)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	keys := newTestKeyPair(t)
	tokens := security.NewTokenService(keys, "ClimateViz", time.Hour)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c"} {
		claims, err := tokens.Verify(input)
		assert.Nil(t, claims, "input %q", input)
		assert.ErrorIs(t, err, security.ErrMalformedToken, "input %q", input)
	}
}

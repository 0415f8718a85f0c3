package security_test

import (
	"strings"
	"testing"

	"climateviz_api/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := security.NewPasswordHasher()

	digest, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$12$"))

	assert.True(t, hasher.Verify("Secret123", digest))
	assert.False(t, hasher.Verify("WrongPass1", digest))
}

func TestPasswordHasherSaltsEachDigest(t *testing.T) {
	hasher := security.NewPasswordHasher()

	first, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Secret123", first))
	assert.True(t, hasher.Verify("Secret123", second))
}

func TestPasswordHasherMalformedDigestIsMismatch(t *testing.T) {
	hasher := security.NewPasswordHasher()

	assert.False(t, hasher.Verify("Secret123", ""))
	assert.False(t, hasher.Verify("Secret123", "not-a-bcrypt-digest"))
}

package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher()

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))

	assert.True(t, h.Verify("correct horse battery staple", digest))
	assert.False(t, h.Verify("correct horse battery stapler", digest))
	assert.False(t, h.Verify("", digest))
}

func TestArgon2Hasher_FreshSaltPerHash(t *testing.T) {
	h := NewArgon2Hasher()

	first, err := h.Hash("same password")
	require.NoError(t, err)

	second, err := h.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same password", first))
	assert.True(t, h.Verify("same password", second))
}

func TestArgon2Hasher_RejectsOverlongPassword(t *testing.T) {
	h := NewArgon2Hasher()

	atLimit := strings.Repeat("a", MaxPasswordBytes)
	digest, err := h.Hash(atLimit)
	require.NoError(t, err)
	assert.True(t, h.Verify(atLimit, digest))

	overLimit := strings.Repeat("a", MaxPasswordBytes+1)
	_, err = h.Hash(overLimit)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.False(t, h.Verify(overLimit, digest))
}

func TestArgon2Hasher_VerifyMalformedDigest(t *testing.T) {
	h := NewArgon2Hasher()

	for _, digest := range []string{
		"",
		"plainly not a digest",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=banana$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!",
	} {
		assert.False(t, h.Verify("anything", digest), "digest %q must not verify", digest)
	}
}

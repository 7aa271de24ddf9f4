package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoGenerator_RandomCode(t *testing.T) {
	g := NewCryptoGenerator()

	for _, length := range []int{4, 6, 8} {
		code, err := g.RandomCode(length)
		require.NoError(t, err)
		require.Len(t, code, length)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
	}
}

func TestCryptoGenerator_InvalidLength(t *testing.T) {
	g := NewCryptoGenerator()

	_, err := g.RandomCode(0)
	assert.Error(t, err)

	_, err = g.RandomCode(-1)
	assert.Error(t, err)
}

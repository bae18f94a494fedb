package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the bcrypt default instead of
	// erroring or producing a trivially crackable hash.
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("s3cret-pass", cost)
		require.NoError(t, err)
		assert.True(t, VerifyPassword(hash, "s3cret-pass"))

		parsed, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, parsed)
	}
}

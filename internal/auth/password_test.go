package auth_test

import (
	"testing"

	"github.com/hugh/taskhive/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash differs from the password and between calls", func(t *testing.T) {
		h1, err := auth.HashPassword("pw1")
		require.NoError(t, err)
		h2, err := auth.HashPassword("pw1")
		require.NoError(t, err)

		assert.NotEqual(t, "pw1", h1)
		assert.NotEqual(t, h1, h2)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword("correct horse battery staple", hash))
	assert.False(t, auth.CheckPassword("wrong password", hash))
	assert.False(t, auth.CheckPassword("", hash))
}

package auth_test

import (
	"testing"
	"time"

	"github.com/hugh/taskhive/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_Sign(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	t.Run("round trips the subject", func(t *testing.T) {
		envelope, err := jwtService.Sign("a1b2c3d4e5f60718293a4b5c6d7e8f90")
		require.NoError(t, err)
		assert.NotEmpty(t, envelope)

		subject, err := jwtService.Verify(envelope)
		require.NoError(t, err)
		assert.Equal(t, "a1b2c3d4e5f60718293a4b5c6d7e8f90", subject)
	})

	t.Run("envelope is opaque about the user", func(t *testing.T) {
		envelope, err := jwtService.Sign("deadbeefdeadbeefdeadbeefdeadbeef")
		require.NoError(t, err)
		assert.NotContains(t, envelope, "@")
	})
}

func TestJWTService_Verify(t *testing.T) {
	t.Run("verifies correct envelope", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		envelope, err := jwtService.Sign("sessiontoken")
		require.NoError(t, err)

		subject, err := jwtService.Verify(envelope)
		require.NoError(t, err)
		assert.Equal(t, "sessiontoken", subject)
	})

	t.Run("rejects expired envelope", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

		envelope, err := jwtService.Sign("sessiontoken")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.Verify(envelope)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("rejects envelope signed with different secret", func(t *testing.T) {
		signer := auth.NewJWTService("secret-one", 24*time.Hour)
		verifier := auth.NewJWTService("secret-two", 24*time.Hour)

		envelope, err := signer.Sign("sessiontoken")
		require.NoError(t, err)

		_, err = verifier.Verify(envelope)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		_, err := jwtService.Verify("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects tampered envelope", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

		envelope, err := jwtService.Sign("sessiontoken")
		require.NoError(t, err)

		tampered := envelope[:len(envelope)-2] + "xx"
		_, err = jwtService.Verify(tampered)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

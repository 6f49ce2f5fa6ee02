package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	tokenString, expiresAt, err := GenerateJWTToken("note-taker", "sync-client", time.Hour, "sign-key")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subject, err := ValidateJWTToken(tokenString, "sign-key", "note-taker")
	require.NoError(t, err)
	assert.Equal(t, "sync-client", subject)
}

func TestGenerateJWTTokenInvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", "sub", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "sub", 0, "key"},
		{"empty sign key", "iss", "sub", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateJWTTokenFailures(t *testing.T) {
	tokenString, _, err := GenerateJWTToken("note-taker", "sync-client", time.Hour, "sign-key")
	require.NoError(t, err)

	t.Run("wrong sign key", func(t *testing.T) {
		_, err := ValidateJWTToken(tokenString, "other-key", "note-taker")
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateJWTToken(tokenString, "sign-key", "someone-else")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateJWTToken("not-a-token", "sign-key", "note-taker")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, _, err := GenerateJWTToken("note-taker", "sync-client", time.Nanosecond, "sign-key")
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		_, err = ValidateJWTToken(expired, "sign-key", "note-taker")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestGetSubjectFromContext(t *testing.T) {
	ctx := t.Context()

	_, ok := GetSubjectFromContext(ctx)
	assert.False(t, ok)

	ctx = context.WithValue(ctx, SubjectCtxKey, "sync-client")
	subject, ok := GetSubjectFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sync-client", subject)
}

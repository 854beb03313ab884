package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenjobs/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	s := NewJWTService("test-secret", time.Hour)

	tok, err := s.GenerateAccessToken("user2", model.RoleEmployer)
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user2", claims.Subject)
	assert.Equal(t, model.RoleEmployer, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	s := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)
	tok, err := other.GenerateAccessToken("user1", model.RoleEmployee)
	require.NoError(t, err)

	expired := NewJWTService("test-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken("user1", model.RoleEmployee)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", tok},
		{"expired", old},
		{"garbage", "not-a-jwt"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestNewJWTService_DefaultExpiry(t *testing.T) {
	s := NewJWTService("x", 0)
	assert.Equal(t, DefaultAccessTokenExpiry, s.expiry)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuskangsoftware/bubbly/internal/config"
)

func newTestService() *Service {
	return NewService(&config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
		APIToken:   "srv-token-123",
	})
}

func TestService_IssueAndVerify(t *testing.T) {
	s := newTestService()

	token, err := s.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestService_VerifyRejectsGarbage(t *testing.T) {
	s := newTestService()

	_, err := s.Verify("not-a-token")
	assert.Error(t, err)

	_, err = s.Verify("")
	assert.Error(t, err)
}

func TestService_VerifyRejectsWrongSecret(t *testing.T) {
	other := NewService(&config.AuthConfig{JWTSecret: "other-secret", SessionTTL: time.Hour})
	token, err := other.Issue("user-1")
	require.NoError(t, err)

	s := newTestService()
	_, err = s.Verify(token)
	assert.Error(t, err)
}

func TestService_ValidServiceToken(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"valid token", "Bearer srv-token-123", true},
		{"case insensitive scheme", "bearer srv-token-123", true},
		{"wrong token", "Bearer nope", false},
		{"missing scheme", "srv-token-123", false},
		{"empty header", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ValidServiceToken(tt.header))
		})
	}
}

func TestService_EmptyAPITokenNeverMatches(t *testing.T) {
	s := NewService(&config.AuthConfig{JWTSecret: "x", SessionTTL: time.Hour})
	assert.False(t, s.ValidServiceToken("Bearer "))
	assert.False(t, s.ValidServiceToken("Bearer anything"))
}

package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

func TestService_IssueAndParse(t *testing.T) {
	s := NewService(config.Token{Secret: "secret", TTL: time.Hour})

	now := time.Now()
	token, expiresAt, err := s.Issue(123456789, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	userID, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), userID)
}

func TestService_Parse_Invalid(t *testing.T) {
	s := NewService(config.Token{Secret: "secret", TTL: time.Hour})

	expired, _, err := s.Issue(1, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	foreign, _, err := NewService(config.Token{Secret: "other", TTL: time.Hour}).Issue(1, time.Now())
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "expired", token: expired},
		{name: "other secret", token: foreign},
		{name: "other issuer", token: wrongIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Parse(tt.token)
			assert.ErrorIs(t, err, ierrors.ErrInvalidToken)
		})
	}
}

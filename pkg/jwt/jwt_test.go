package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "")

	token, err := m.GenerateAccessToken("identity-1", "a@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "identity-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("secret", "")

	expired, err := m.GenerateAccessToken("identity-1", "a@example.com", -time.Minute)
	require.NoError(t, err)

	other, err := NewManager("other-secret", "").GenerateAccessToken("identity-1", "a@example.com", time.Hour)
	require.NoError(t, err)

	noEmail, err := m.GenerateAccessToken("identity-1", "", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", other},
		{"missing email", noEmail},
		{"garbage", "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateAccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestManager_Issuer(t *testing.T) {
	issued, err := NewManager("secret", "idp").GenerateAccessToken("s", "a@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret", "idp").ValidateAccessToken(issued)
	assert.NoError(t, err)

	_, err = NewManager("secret", "someone-else").ValidateAccessToken(issued)
	assert.Error(t, err)
}

func TestManager_EmptySubject(t *testing.T) {
	_, err := NewManager("secret", "").GenerateAccessToken("", "a@example.com", time.Hour)
	assert.Error(t, err)
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "go-inventory-qr", time.Hour)

	token, err := m.GenerateToken(7, "maria", true, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "v1", claims.TokenVersion)
	assert.Equal(t, time.Hour, m.Expiration())
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("a", "go-inventory-qr", time.Hour).GenerateToken(1, "x", false, "v")
	require.NoError(t, err)

	_, err = NewManager("b", "go-inventory-qr", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", "go-inventory-qr", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.GenerateToken(1, "x", false, "v")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMissingAndGarbage(t *testing.T) {
	m := NewManager("secret", "go-inventory-qr", time.Hour)

	_, err := m.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

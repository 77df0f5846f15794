package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signTestJWT generates an RSA key pair and returns a signed token plus the
// PEM-encoded public key
func signTestJWT(t *testing.T, subject string, expiresIn time.Duration) (string, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	return token, string(pubPEM)
}

func TestAuthenticateJWT(t *testing.T) {
	subject := uuid.NewString()
	token, pubPEM := signTestJWT(t, subject, time.Hour)

	result := Authenticate("Bearer "+token, AuthConfig{JWTPublicKey: pubPEM})
	require.True(t, result.Success)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, subject, result.AuthSubject)
}

func TestAuthenticateExpiredJWT(t *testing.T) {
	token, pubPEM := signTestJWT(t, uuid.NewString(), -time.Hour)

	result := Authenticate("Bearer "+token, AuthConfig{JWTPublicKey: pubPEM})
	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestAuthenticateWrongKey(t *testing.T) {
	token, _ := signTestJWT(t, uuid.NewString(), time.Hour)
	_, otherPEM := signTestJWT(t, uuid.NewString(), time.Hour)

	result := Authenticate("Bearer "+token, AuthConfig{JWTPublicKey: otherPEM})
	assert.False(t, result.Success)
}

func TestAuthenticateAPIKey(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"key-one", "key-two"}}

	tests := []struct {
		name    string
		header  string
		success bool
	}{
		{name: "valid key", header: "APIKey key-one", success: true},
		{name: "second valid key", header: "APIKey key-two", success: true},
		{name: "unknown key", header: "APIKey nope", success: false},
		{name: "missing header", header: "", success: false},
		{name: "malformed header", header: "key-one", success: false},
		{name: "unsupported scheme", header: "Basic dXNlcjpwYXNz", success: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Authenticate(tt.header, cfg)
			assert.Equal(t, tt.success, result.Success)
			if tt.success {
				assert.Equal(t, "apikey", result.AuthType)
				assert.Empty(t, result.AuthSubject)
			}
		})
	}
}

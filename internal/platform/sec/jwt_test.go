// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/animetrack/internal/platform/sec"
)

// newKeyPair returns PEM-encoded private and public RSA keys.
func newKeyPair(t *testing.T) ([]byte, []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return privatePEM, publicPEM
}

/*
TestTokenService_RoundTrip verifies that a minted token is accepted and carries its claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privatePEM, publicPEM := newKeyPair(t)

	service, err := sec.NewTokenServiceFromPEM(privatePEM, publicPEM, "animetrack.app")
	require.NoError(t, err)

	// 1. Mint
	token, err := service.GenerateAccessToken("user-1", "mika", string(sec.RoleMember), time.Hour)
	require.NoError(t, err)

	// 2. Verify
	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "mika", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_RejectsForeignIssuer verifies the issuer check.
*/
func TestTokenService_RejectsForeignIssuer(t *testing.T) {
	privatePEM, publicPEM := newKeyPair(t)

	minter, err := sec.NewTokenServiceFromPEM(privatePEM, publicPEM, "someone-else")
	require.NoError(t, err)
	verifier, err := sec.NewTokenServiceFromPEM(nil, publicPEM, "animetrack.app")
	require.NoError(t, err)

	token, err := minter.GenerateAccessToken("user-1", "mika", "member", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_VerifyOnly verifies that a service without a private key refuses to sign.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	_, publicPEM := newKeyPair(t)

	service, err := sec.NewTokenServiceFromPEM(nil, publicPEM, "animetrack.app")
	require.NoError(t, err)

	_, err = service.GenerateAccessToken("user-1", "mika", "member", time.Hour)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("ghost").AtLeast(sec.RoleMember))
}

func TestParseRole(t *testing.T) {
	role, err := sec.ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, role)

	_, err = sec.ParseRole("Admin")
	assert.Error(t, err)
}

package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKeyPair returns a fresh RSA key pair, base64-wrapped PEM, the way
// the configuration supplies it.
func testKeyPair(t *testing.T) (string, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return base64.StdEncoding.EncodeToString(privPEM), base64.StdEncoding.EncodeToString(pubPEM)
}

func newIssuer(t *testing.T, expiry time.Duration) *TokenIssuer {
	t.Helper()
	priv, pub := testKeyPair(t)
	issuer, err := NewTokenIssuer(priv, pub, expiry)
	require.NoError(t, err)
	return issuer
}

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("member1password")
	require.NoError(t, err)
	require.NotEqual(t, "member1password", hash)

	assert.True(t, CheckPasswordHash("member1password", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestNewTokenIssuer_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewTokenIssuer("not base64!!", "also not", time.Minute)
	assert.Error(t, err)

	bad := base64.StdEncoding.EncodeToString([]byte("not a pem key"))
	_, err = NewTokenIssuer(bad, bad, time.Minute)
	assert.Error(t, err)
}

func TestTokenIssuer_GenerateAndVerify(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t, 20*time.Minute)

	token, err := issuer.Generate("abc123", "Member1", "tulum", "12345678", "member1@email.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.Subject)
	assert.Equal(t, "Member1", claims.Name)
	assert.Equal(t, "tulum", claims.Location)
	assert.Equal(t, "12345678", claims.Phone)
	assert.Equal(t, "member1@email.com", claims.Email)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t, -time.Minute)

	token, err := issuer.Generate("abc123", "Member1", "", "", "member1@email.com")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	t.Parallel()

	issuerA := newIssuer(t, time.Minute)
	issuerB := newIssuer(t, time.Minute)

	token, err := issuerA.Generate("abc123", "Member1", "", "", "member1@email.com")
	require.NoError(t, err)

	_, err = issuerB.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsMangledToken(t *testing.T) {
	t.Parallel()

	issuer := newIssuer(t, time.Minute)
	_, err := issuer.Verify("not.a.token")
	assert.Error(t, err)
}

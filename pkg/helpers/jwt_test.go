package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", time.Hour)

	tok, exp, err := m.Generate("u-1", "Ada", "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret", -time.Minute)
	tok, _, err := m.Generate("u-1", "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	require.Error(t, err, "expired token must not parse")
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTManager("right-secret", time.Hour)
	verifier := NewJWTManager("wrong-secret", time.Hour)

	tok, _, err := issuer.Generate("u-2", "Grace", "grace@example.com")
	require.NoError(t, err)

	_, err = verifier.Parse(tok)
	require.Error(t, err, "token signed with another secret must not parse")
}

func TestJWT_Malformed(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k", time.Hour)
	_, err := m.Parse("not.a.jwt")
	require.Error(t, err)
}

func TestJWT_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none with an unverified signature must never be accepted.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u-3"})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m := NewJWTManager("k", time.Hour)
	_, err = m.Parse(tok)
	require.Error(t, err)
}

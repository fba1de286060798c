package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioforge/folioforge/internal/auth"
)

const testSecret = "test-secret"

// signToken builds an HS256 token with the given claims, defaulting exp to
// one hour ahead when absent.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// --- ExtractToken Tests ---

func TestExtractToken_Valid(t *testing.T) {
	token, err := auth.ExtractToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestExtractToken_MissingHeader(t *testing.T) {
	_, err := auth.ExtractToken("")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}

func TestExtractToken_WrongScheme(t *testing.T) {
	_, err := auth.ExtractToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}

func TestExtractToken_BareToken(t *testing.T) {
	_, err := auth.ExtractToken("abc.def.ghi")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}

func TestExtractToken_LowercaseScheme(t *testing.T) {
	_, err := auth.ExtractToken("bearer abc.def.ghi")
	assert.ErrorIs(t, err, auth.ErrMissingCredential)
}

// --- Verify Tests ---

func TestVerify_ValidToken(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"userId": "u1"})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, "another-secret", jwt.MapClaims{"userId": "u1"})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrExpiredCredential)
}

func TestVerify_MissingExpiry(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	claims := jwt.MapClaims{"userId": "u1"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestVerify_MalformedToken(t *testing.T) {
	v := auth.NewVerifier(testSecret)

	_, err := v.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestVerify_NoSecret(t *testing.T) {
	v := auth.NewVerifier("")
	token := signToken(t, testSecret, jwt.MapClaims{"userId": "u1"})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
}

func TestVerify_ClaimShapes(t *testing.T) {
	v := auth.NewVerifier(testSecret)

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"top-level userId", jwt.MapClaims{"userId": "u1"}},
		{"top-level id", jwt.MapClaims{"id": "u1"}},
		{"top-level sub", jwt.MapClaims{"sub": "u1"}},
		{"nested user.id", jwt.MapClaims{"user": map[string]any{"id": "u1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, testSecret, tt.claims)

			identity, err := v.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, "u1", identity.UserID)
		})
	}
}

func TestVerify_ClaimPrecedence(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": "primary",
		"id":     "secondary",
		"sub":    "tertiary",
		"user":   map[string]any{"id": "quaternary"},
	})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "primary", identity.UserID, "userId should win over all other claim shapes")
}

func TestVerify_SubBeatsNestedUser(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "from-sub",
		"user": map[string]any{"id": "from-user"},
	})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", identity.UserID)
}

func TestVerify_NumericClaimCoerced(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"id": 42})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", identity.UserID)
}

func TestVerify_NoIdentityClaim(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"email": "someone@example.com"})

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestVerify_EmptyStringClaimSkipped(t *testing.T) {
	v := auth.NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": "",
		"id":     "fallback",
	})

	identity, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "fallback", identity.UserID, "empty userId should fall through to id")
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	v := auth.NewVerifier(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

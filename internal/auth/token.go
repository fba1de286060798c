package auth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingCredential is returned when no bearer credential is present on the request.
var ErrMissingCredential = errors.New("missing bearer credential")

// ErrInvalidCredential is returned when a token's signature does not verify
// or its payload lacks a usable identity claim.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrExpiredCredential is returned when a token's signature verifies but its
// expiry has passed.
var ErrExpiredCredential = errors.New("expired credential")

// ErrNotConfigured is returned when no signing secret is configured. This is
// a deployment fault, not a bad credential, and is logged as such.
var ErrNotConfigured = errors.New("token secret is not configured")

const bearerPrefix = "Bearer "

// ExtractToken pulls the bearer token out of an Authorization header value.
// The header must be present and carry the literal "Bearer " scheme prefix.
func ExtractToken(headerValue string) (string, error) {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return "", ErrMissingCredential
	}
	return headerValue[len(bearerPrefix):], nil
}

// claimExtractor inspects token claims for an identity value under one
// particular payload shape. Extractors are pure and tried in order.
type claimExtractor func(jwt.MapClaims) (string, bool)

// identityExtractors is the precedence order for the accepted payload
// shapes: top-level userId, then id, then sub, then nested user.id.
// Tokens minted by the legacy session provider use the later shapes.
var identityExtractors = []claimExtractor{
	topLevelClaim("userId"),
	topLevelClaim("id"),
	topLevelClaim("sub"),
	nestedUserID,
}

func topLevelClaim(key string) claimExtractor {
	return func(claims jwt.MapClaims) (string, bool) {
		return coerceString(claims[key])
	}
}

func nestedUserID(claims jwt.MapClaims) (string, bool) {
	user, ok := claims["user"].(map[string]any)
	if !ok {
		return "", false
	}
	return coerceString(user["id"])
}

// coerceString converts a claim value to a string identity. Numeric user
// ids appear as float64 after JSON decoding.
func coerceString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatInt(int64(val), 10), true
	default:
		return "", false
	}
}

// Verifier checks bearer tokens against the process-wide signing secret
// and resolves them to identities. It performs no I/O.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify validates the token's HS256 signature and expiry, then extracts
// the identity claim using the accepted payload shapes in precedence order.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if len(v.secret) == 0 {
		return nil, ErrNotConfigured
	}

	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredential
	}

	for _, extract := range identityExtractors {
		if userID, ok := extract(claims); ok {
			return &Identity{UserID: userID}, nil
		}
	}

	return nil, ErrInvalidCredential
}

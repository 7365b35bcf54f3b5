package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestValidateSessionToken_ValidToken(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	tokenString := signToken(t, Claims{
		Email: "test@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, "test-secret-key-for-testing")

	claims, err := ValidateSessionToken(tokenString)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestValidateSessionToken_MissingSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "")

	_, err := ValidateSessionToken("whatever")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_JWT_SECRET not set")
}

func TestValidateSessionToken_ExpiredToken(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)), // expired 1 hour ago
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}, "test-secret-key-for-testing")

	_, err := ValidateSessionToken(tokenString)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "a-completely-different-secret")

	_, err := ValidateSessionToken(tokenString)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateSessionToken_TamperedToken(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	tokenString := signToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "test-secret-key-for-testing")

	tampered := tokenString[:len(tokenString)-5] + "XXXXX"

	_, err := ValidateSessionToken(tampered)
	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateSessionToken_AlgorithmConfusionAttack(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	// token signed with "none" must never validate
	claims := Claims{
		Email: "attacker@evil.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "attacker",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateSessionToken(tokenString)
	assert.Error(t, err, "unsigned token should be rejected")
}

func TestValidateSessionToken_MissingSubject(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret-key-for-testing")

	tokenString := signToken(t, Claims{
		Email: "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "test-secret-key-for-testing")

	_, err := ValidateSessionToken(tokenString)
	assert.Error(t, err, "token without subject should be rejected")
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/config"
)

const testSecret = "test-secret-for-unit-tests"

func newTestService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret: testSecret,
		Issuer: "caseflow-idp",
	})
}

// signToken issues a token the way the identity provider would.
func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() Claims {
	return Claims{
		UserID: 42,
		Role:   authorization.RoleSupervisor,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "caseflow-idp",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestJWTService_VerifyValidToken(t *testing.T) {
	svc := newTestService()
	tokenString := signToken(t, validClaims(), testSecret)

	claims, err := svc.Verify(tokenString)

	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleSupervisor, claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	tokenString := signToken(t, validClaims(), "some-other-secret")

	claims, err := svc.Verify(tokenString)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	svc := newTestService()
	c := validClaims()
	c.Issuer = "another-idp"
	tokenString := signToken(t, c, testSecret)

	claims, err := svc.Verify(tokenString)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestService()
	c := validClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	tokenString := signToken(t, c, testSecret)

	claims, err := svc.Verify(tokenString)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_RejectsMissingExpiry(t *testing.T) {
	svc := newTestService()
	c := validClaims()
	c.ExpiresAt = nil
	tokenString := signToken(t, c, testSecret)

	claims, err := svc.Verify(tokenString)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_RejectsUnknownRole(t *testing.T) {
	svc := newTestService()
	c := validClaims()
	c.Role = authorization.UserRole("superuser")
	tokenString := signToken(t, c, testSecret)

	claims, err := svc.Verify(tokenString)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/config"
)

// Claims are the verified identity claims carried by an access token.
type Claims struct {
	UserID uint                   `json:"user_id"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTService verifies access tokens issued by the identity provider. This
// system never issues tokens itself.
type JWTService struct {
	secret []byte
	issuer string
}

// NewJWTService creates a new JWT verification service.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify parses and validates the token, returning its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("unknown role in token: %s", claims.Role)
	}

	return claims, nil
}

package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims are the identity-provider claims the API relies on.
// The subject is the user's cognito id.
type UserClaims struct {
	Role string `json:"custom:role"`
	jwt.RegisteredClaims
}

// JWTUtil validates and issues HS256 tokens
type JWTUtil struct {
	signingKey []byte
}

// NewJWTUtil creates a new JWT utility with the given signing key
func NewJWTUtil(signingKey string) *JWTUtil {
	return &JWTUtil{signingKey: []byte(signingKey)}
}

// GenerateToken creates a token for subject with role, valid for ttl
func (j *JWTUtil) GenerateToken(subject, role string, ttl time.Duration) (string, error) {
	if len(j.signingKey) == 0 {
		return "", errors.New("JWT signing key not provided")
	}

	now := time.Now()
	claims := UserClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&UserClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return j.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

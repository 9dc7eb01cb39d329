package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims identify a user by email (the subject) and role.
type Claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

// GenerateToken signs an HS256 token for email/role valid for ttl from now.
func GenerateToken(email string, role models.Role, secretKey []byte, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	})
	return token.SignedString(secretKey)
}

// ParseToken validates tokenString at time now and returns its identity.
// Every failure wraps common.ErrUnauthorized as well as the jwt error.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (string, models.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", "", fmt.Errorf("%w: invalid session token", common.ErrUnauthorized)
	}
	return claims.Subject, claims.Role, nil
}

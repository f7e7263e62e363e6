// Package auth issues and verifies the signed remember-me tokens that can
// re-establish a server-side session after the session cookie expires.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jdgomezdev/declaratax/internal/common"
)

type Claims struct {
	jwt.RegisteredClaims
}

// GenerateRememberToken mints an HS256 token whose subject is the user id.
func GenerateRememberToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromRememberToken verifies the token signature and expiry and
// returns the embedded user id. Invalid or expired tokens yield
// common.ErrInvalidToken.
func GetUserIDFromRememberToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return userID, nil
}

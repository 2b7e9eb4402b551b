package jwtutil

import (
	"errors"
	"time"

	"telemed-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is the single failure outcome of ValidateToken. Malformed
// encoding, a bad signature and an expired timestamp all map here; callers
// cannot distinguish them.
var ErrInvalidToken = errors.New("invalid or expired token")

var (
	signingKey = []byte("telemedsecretkey")
	expiration = 168 * time.Hour
)

// Initialize configures the signing secret and token lifetime
func Initialize(cfg *config.JWTConfig) {
	if cfg.SigningKey != "" {
		signingKey = []byte(cfg.SigningKey)
	}
	if cfg.ExpirationHours > 0 {
		expiration = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// UserClaims represents the JWT claims carried by a bearer token
type UserClaims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed, time-boxed bearer token for a user
func GenerateToken(userID uint, role, phone, email string) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Role:   role,
		Phone:  phone,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses a bearer token. It fails closed: any
// verification failure yields ErrInvalidToken.
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

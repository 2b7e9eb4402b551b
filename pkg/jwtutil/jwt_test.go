package jwtutil

import (
	"testing"
	"time"

	"telemed-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

const testKey = "unit-test-signing-key"

func initTest(t *testing.T) {
	t.Helper()
	Initialize(&config.JWTConfig{SigningKey: testKey, ExpirationHours: 1})
}

func TestGenerateAndValidate(t *testing.T) {
	initTest(t)

	token, err := GenerateToken(42, "doctor", "9999999999", "a@x.com")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "doctor" {
		t.Errorf("claims.Role = %q, want doctor", claims.Role)
	}
	if claims.Phone != "9999999999" || claims.Email != "a@x.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("claims carry no future expiry")
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	initTest(t)

	token, err := GenerateToken(42, "doctor", "", "")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	// Flip the last character of the signature
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	if _, err := ValidateToken(tampered); err != ErrInvalidToken {
		t.Errorf("ValidateToken(tampered) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	initTest(t)

	claims := UserClaims{
		UserID: 42,
		Role:   "patient",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateToken(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	initTest(t)

	claims := UserClaims{
		UserID: 42,
		Role:   "patient",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("ValidateToken(wrong key) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	initTest(t)

	for _, tok := range []string{"", "42", "not.a.token", "a.b"} {
		if _, err := ValidateToken(tok); err != ErrInvalidToken {
			t.Errorf("ValidateToken(%q) error = %v, want ErrInvalidToken", tok, err)
		}
	}
}

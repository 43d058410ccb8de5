package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", "octogon")
	userID, householdID := uuid.New(), uuid.New()

	token, err := svc.GenerateToken(userID, householdID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != userID || claims.HouseholdID != householdID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	svc := NewJWTService("secret", "octogon")
	userID, householdID := uuid.New(), uuid.New()

	otherSecret, _ := NewJWTService("other", "octogon").GenerateToken(userID, householdID)
	otherIssuer, _ := NewJWTService("secret", "someone-else").GenerateToken(userID, householdID)

	expired := svc.WithTTL(-time.Hour)
	expiredToken, _ := expired.GenerateToken(userID, householdID)

	noHousehold, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "octogon"},
	}).SignedString([]byte("secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"wrong secret", otherSecret, ErrInvalidToken},
		{"wrong issuer", otherIssuer, ErrInvalidToken},
		{"expired", expiredToken, ErrExpiredToken},
		{"missing household", noHousehold, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

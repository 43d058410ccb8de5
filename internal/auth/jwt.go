package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are issued by the identity provider and identify a household member
type Claims struct {
	UserID      uuid.UUID `json:"user_id"`
	HouseholdID uuid.UUID `json:"household_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

func NewJWTService(secretKey, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       24 * time.Hour,
	}
}

// WithTTL returns a copy of s that issues tokens valid for ttl
func (s *JWTService) WithTTL(ttl time.Duration) *JWTService {
	cp := *s
	cp.ttl = ttl
	return &cp
}

// GenerateToken signs a token for a household member. Production tokens come
// from the identity provider; this is used by the CLI and tests.
func (s *JWTService) GenerateToken(userID, householdID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      userID,
		HouseholdID: householdID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil || claims.HouseholdID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user or household", ErrInvalidToken)
	}

	return claims, nil
}

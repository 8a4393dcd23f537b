package jwt

import (
	"errors"
	"fmt"
	"time"

	"share-platform/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
)

const defaultExpiration = 24 * time.Hour

type Claims struct {
	UserID int64  `json:"id"`
	Phone  string `json:"phone"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey  []byte
	expiration time.Duration
}

func NewService(secretKey string) *Service {
	return NewServiceWithExpiration(secretKey, defaultExpiration)
}

func NewServiceWithExpiration(secretKey string, expiration time.Duration) *Service {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &Service{
		secretKey:  []byte(secretKey),
		expiration: expiration,
	}
}

// GenerateToken signs {id, phone} with an expiry chosen by the service.
func (s *Service) GenerateToken(userID int64, phone string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Phone:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "share-platform",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken verifies signature and expiry. Failures are reported as
// apperr.ErrTokenExpired or apperr.ErrTokenInvalid.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", apperr.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.ErrTokenInvalid
	}
	return claims, nil
}

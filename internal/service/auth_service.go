package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Madhesh247/Zenfocus/internal/errors"
)

// AuthService guards the single-user API with an optional password. When no
// password is configured, auth is disabled and every request passes. A login
// with the right password issues a short-lived HS256 token.
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthService(password, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	s := &AuthService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.passwordHash = hash
	}
	return s, nil
}

// Enabled reports whether the API requires a token at all.
func (s *AuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *AuthService) Login(password string) (string, *apperrors.APIError) {
	if !s.Enabled() {
		return "", apperrors.BadRequest("auth_disabled", "authentication is not configured")
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return "", apperrors.Unauthorized("invalid password")
	}
	return s.issueToken()
}

func (s *AuthService) ParseToken(tokenString string) *apperrors.APIError {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return apperrors.Unauthorized("invalid token")
	}
	return nil
}

func (s *AuthService) issueToken() (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   "zenfocus",
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

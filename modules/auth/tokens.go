package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenConfig holds token signing configuration.
type TokenConfig struct {
	SecretKey       string
	AccessDuration  time.Duration
	RefreshDuration time.Duration
	Issuer          string
}

// DefaultTokenConfig returns the default token configuration. The secret key
// must be overridden via TASKBOARD_JWT_SECRET outside of local development.
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey:       "taskboard-dev-secret-change-me",
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 7 * 24 * time.Hour,
		Issuer:          "taskboard",
	}
}

// tokenClaims are the signed claims carried by both token kinds.
type tokenClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	TokenKind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256-signed session tokens.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config}
}

// IssueAccessToken issues a short-lived access token for the user.
func (m *TokenManager) IssueAccessToken(userID, email string) (string, error) {
	return m.issue(userID, email, "access", m.config.AccessDuration)
}

// IssueRefreshToken issues a long-lived refresh token for the user.
func (m *TokenManager) IssueRefreshToken(userID, email string) (string, error) {
	return m.issue(userID, email, "refresh", m.config.RefreshDuration)
}

func (m *TokenManager) issue(userID, email, kind string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:    userID,
		Email:     email,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateAccessToken validates an access token and returns its claims.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*tokenClaims, error) {
	return m.validate(tokenString, "access")
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*tokenClaims, error) {
	return m.validate(tokenString, "refresh")
}

func (m *TokenManager) validate(tokenString, kind string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.TokenKind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AccessTokenSeconds returns the access token lifetime in seconds.
func (m *TokenManager) AccessTokenSeconds() int64 {
	return int64(m.config.AccessDuration.Seconds())
}

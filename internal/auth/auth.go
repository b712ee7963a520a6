package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Credentials is what login needs to know about a stored user.
type Credentials struct {
	UserID       string
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	GenerateRefreshToken(userID, email, role string) (string, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetCredentialsByID(ctx context.Context, userID string) (*Credentials, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"typ"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.repo.GetCredentialsByEmail(ctx, strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		s.logger.Error("credential lookup failed", "error", err)
		return AuthTokens{}, apperrors.ErrInvalidCredentials
	}
	if creds == nil {
		return AuthTokens{}, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, apperrors.ErrInvalidCredentials
	}
	if !creds.IsActive {
		return AuthTokens{}, apperrors.ErrUserInactive
	}

	return s.issue(creds)
}

// RefreshTokens validates refresh token and returns new tokens. The user is
// reloaded so role changes and deactivation take effect.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.repo.GetCredentialsByID(ctx, claims.UserID)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("Failed to refresh token", err)
	}
	if creds == nil {
		return AuthTokens{}, apperrors.ErrInvalidToken
	}
	if !creds.IsActive {
		return AuthTokens{}, apperrors.ErrUserInactive
	}

	return s.issue(creds)
}

func (s *Service) issue(creds *Credentials) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(creds.UserID, creds.Email, creds.Role)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("Failed to issue token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(creds.UserID, creds.Email, creds.Role)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("Failed to issue token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString, TokenTypeAccess)
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, role string) (string, error) {
	return j.sign(userID, email, role, TokenTypeAccess, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email, role string) (string, error) {
	return j.sign(userID, email, role, TokenTypeRefresh, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email, role string, tokenType TokenType, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken checks the signature with the secret belonging to tokenType and
// rejects tokens of the other type.
func (j *JWTTokenGenerator) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	secret := j.AccessTokenSecret
	if tokenType == TokenTypeRefresh {
		secret = j.RefreshTokenSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

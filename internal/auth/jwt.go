package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

var errEmptyToken = errors.New("token is empty")

// JWTManager issues and verifies HS256 access tokens and mints opaque
// refresh tokens. The task and comment services share secret and issuer,
// so the comment service verifies tokens without calling the task service.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	parser    *jwt.Parser
	now       func() time.Time
}

// NewJWTManager creates a JWTManager. Config validation keeps secret at
// 32 characters or more.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	m := &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

func (m *JWTManager) AccessTTL() time.Duration { return m.accessTTL }

type accessClaims struct {
	jwt.RegisteredClaims
	Role domain.UserRole `json:"role,omitempty"`
}

// GenerateAccessToken signs a token for userID. An empty role is issued
// as a regular user; unknown roles are refused.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	r, err := parseRole(role)
	if err != nil {
		return "", err
	}

	now := m.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Role: r,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken returns the subject and role of a valid token.
// Every rejection wraps domain.ErrUnauthorized.
func (m *JWTManager) ValidateAccessToken(tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, errEmptyToken)
	}

	var claims accessClaims
	if _, err := m.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: parse token: %w", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject: %w", domain.ErrUnauthorized, err)
	}

	role, err := parseRole(string(claims.Role))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	return userID, role.String(), nil
}

// ValidateToken lets the comment service authenticate requests by
// signature alone.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	return m.ValidateAccessToken(token)
}

func parseRole(role string) (domain.UserRole, error) {
	if role == "" {
		return domain.UserRoleUser, nil
	}
	r := domain.UserRole(role)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return r, nil
}

// GenerateRefreshToken returns a random refresh token and the SHA-256 hash
// under which it is stored.
func (m *JWTManager) GenerateRefreshToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashToken(raw), nil
}

func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

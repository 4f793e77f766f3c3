package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// Token verification failures are distinct so the boundary can map them to
// different responses (expired/malformed -> 401, missing role -> 403).
var (
	ErrInvalidIdentity = errors.New("identity requires subject id and role")
	ErrTokenMissing    = errors.New("token missing")
	ErrTokenMalformed  = errors.New("token malformed")
	ErrTokenExpired    = errors.New("token expired")
	ErrRoleMissing     = errors.New("token role missing")
)

// TokenManager issues and verifies signed JWT access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager around the configured secret and lifetime.
// Validation of the secret happens at config load; the manager assumes a
// non-empty secret.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string      `json:"sub"`
	Role      domain.Role `json:"role,omitempty"`
	Name      string      `json:"name,omitempty"`
	Email     string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the identity. The identity must carry a subject id
// and a role; tokens without a role are never minted.
func (tm *TokenManager) Issue(identity domain.Identity) (string, time.Time, error) {
	if identity.SubjectID == "" || identity.Role == "" {
		return "", time.Time{}, ErrInvalidIdentity
	}

	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		SubjectID: identity.SubjectID,
		Role:      identity.Role,
		Name:      identity.Name,
		Email:     identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry and reconstructs the identity.
// A structurally valid token without a role fails with ErrRoleMissing; it is
// never treated as an anonymous caller.
func (tm *TokenManager) Verify(tokenStr string) (*domain.Identity, error) {
	if tokenStr == "" {
		return nil, ErrTokenMissing
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Role == "" {
		return nil, ErrRoleMissing
	}

	subjectID := claims.SubjectID
	if subjectID == "" {
		subjectID = claims.Subject
	}
	if subjectID == "" {
		return nil, ErrTokenMalformed
	}

	return &domain.Identity{
		SubjectID: subjectID,
		Role:      claims.Role,
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

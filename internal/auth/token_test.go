package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pizza-service/internal/domain"
)

const testSecret = "unit-test-secret"

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(testSecret, ttl)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := newTestManager(time.Hour)

	identity := domain.Identity{
		SubjectID: "42",
		Role:      domain.RoleUser,
		Name:      "Jamie",
		Email:     "jamie@example.com",
	}

	token, exp, err := tm.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	got, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.SubjectID, got.SubjectID)
	assert.Equal(t, identity.Role, got.Role)
	assert.Equal(t, identity.Name, got.Name)
	assert.Equal(t, identity.Email, got.Email)
}

func TestIssueRejectsIncompleteIdentity(t *testing.T) {
	tm := newTestManager(time.Hour)

	cases := []struct {
		name     string
		identity domain.Identity
	}{
		{"missing subject", domain.Identity{Role: domain.RoleUser}},
		{"missing role", domain.Identity{SubjectID: "42"}},
		{"empty", domain.Identity{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := tm.Issue(tc.identity)
			assert.ErrorIs(t, err, ErrInvalidIdentity)
		})
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	tm := newTestManager(time.Hour)

	_, err := tm.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := newTestManager(-time.Minute)

	token, _, err := tm.Issue(domain.Identity{SubjectID: "42", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	other := NewTokenManager("a-different-secret", time.Hour)
	token, _, err := other.Issue(domain.Identity{SubjectID: "42", Role: domain.RoleUser})
	require.NoError(t, err)

	tm := newTestManager(time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyGarbageToken(t *testing.T) {
	tm := newTestManager(time.Hour)

	_, err := tm.Verify("abc.def.ghi")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsRolelessToken(t *testing.T) {
	// Structurally valid and correctly signed, but the payload carries no
	// role. Verification must fail distinctly instead of treating the
	// caller as anonymous.
	claims := jwt.MapClaims{
		"sub": "42",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tm := newTestManager(time.Hour)
	_, err = tm.Verify(raw)
	assert.ErrorIs(t, err, ErrRoleMissing)
}

func TestVerifyRejectsWrongSigningMethod(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":  "42",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tm := newTestManager(time.Hour)
	_, err = tm.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

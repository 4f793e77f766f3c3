package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/domain"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

const identityKey = "auth_identity"

var (
	ErrAuthHeaderMissing   = errors.New("authorization header missing")
	ErrAuthHeaderMalformed = errors.New("authorization header malformed")
)

// Strategy authenticates requests by extracting and verifying bearer tokens.
// It holds no per-request state; every request is verified afresh.
type Strategy struct {
	tokens *TokenManager
}

// NewStrategy constructs the strategy.
func NewStrategy(tokens *TokenManager) *Strategy {
	return &Strategy{tokens: tokens}
}

// Authenticate extracts the bearer token from the Authorization header value
// and verifies it. Token verification failures propagate unchanged so the
// boundary can differentiate them.
func (s *Strategy) Authenticate(authorizationHeader string) (*domain.Identity, error) {
	if authorizationHeader == "" {
		return nil, ErrAuthHeaderMissing
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, ErrAuthHeaderMalformed
	}

	return s.tokens.Verify(parts[1])
}

// Handle is the fiber middleware enforcing authentication on protected routes.
// All failures map to 401 except a role-less token, which maps to 403.
func (s *Strategy) Handle(c *fiber.Ctx) error {
	identity, err := s.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		if errors.Is(err, ErrRoleMissing) {
			return apperrors.NewForbidden("token role missing")
		}
		return apperrors.NewUnauthorized(err.Error())
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

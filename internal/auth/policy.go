package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/pizza-service/internal/domain"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

// Decision is the outcome of an authorization evaluation.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}
	return "DENY"
}

// Policy declares the access rules for one operation. An empty AllowedRoles
// set means any authenticated identity may proceed. Ownership marks
// user-scoped resources: non-admins may only touch records they own.
type Policy struct {
	AllowedRoles []domain.Role
	Ownership    bool
}

// Engine evaluates policies against authenticated identities. Decisions are
// pure; denials are logged with the rule that fired but never depend on the
// logger.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs the engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Authorize decides whether the identity may perform the operation guarded by
// the policy against a resource owned by resourceOwnerID. Rules fire in
// order; the first match wins:
//  1. identity without a role -> Deny
//  2. empty AllowedRoles -> Allow
//  3. role allowed: no ownership check -> Allow; with ownership check an
//     admin is always allowed, anyone else only on their own resource
//  4. role not allowed -> Deny
func (e *Engine) Authorize(identity domain.Identity, policy Policy, resourceOwnerID string) Decision {
	if identity.Role == "" {
		return e.deny(identity, "role missing")
	}

	if len(policy.AllowedRoles) == 0 {
		return Allow
	}

	for _, role := range policy.AllowedRoles {
		if identity.Role != role {
			continue
		}
		if !policy.Ownership {
			return Allow
		}
		if identity.Role == domain.RoleAdmin {
			return Allow
		}
		if identity.SubjectID == resourceOwnerID {
			return Allow
		}
		return e.deny(identity, "not resource owner")
	}

	return e.deny(identity, "role not allowed")
}

func (e *Engine) deny(identity domain.Identity, rule string) Decision {
	e.logger.Info("authorization denied",
		zap.String("subject_id", identity.SubjectID),
		zap.String("role", string(identity.Role)),
		zap.String("rule", rule))
	return Deny
}

// Require returns a fiber middleware enforcing the policy's role rules.
// Ownership is resource-specific and evaluated in handlers after the record
// is loaded, so it is stripped here.
func (e *Engine) Require(policy Policy) fiber.Handler {
	roleOnly := Policy{AllowedRoles: policy.AllowedRoles}
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if e.Authorize(*identity, roleOnly, "") != Allow {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/domain"
	apperrors "github.com/spec-kit/messaging-service/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// State is the outcome of evaluating a request against the guard.
type State int

const (
	StateUnchecked State = iota
	StateAuthenticated
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateRejected:
		return "REJECTED"
	default:
		return "UNCHECKED"
	}
}

// Decision is the result of one guard evaluation. Identity is nil for public
// routes and for rejected requests.
type Decision struct {
	State    State
	Identity *domain.Identity
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Guard validates bearer tokens for every route not marked public.
type Guard struct {
	tokens TokenVerifier
	routes *RouteTable
}

// NewGuard constructs the guard.
func NewGuard(tokens TokenVerifier, routes *RouteTable) *Guard {
	return &Guard{tokens: tokens, routes: routes}
}

// Evaluate runs the state machine for one request.
func (g *Guard) Evaluate(method, path, authorization string) Decision {
	if g.routes.IsPublic(method, path) {
		return Decision{State: StateAuthenticated}
	}

	token, ok := bearerToken(authorization)
	if !ok {
		return Decision{State: StateRejected}
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return Decision{State: StateRejected}
	}
	return Decision{State: StateAuthenticated, Identity: &identity}
}

// Handle is the fiber middleware form of Evaluate. Rejected requests never
// reach the next handler.
func (g *Guard) Handle(c *fiber.Ctx) error {
	decision := g.Evaluate(c.Method(), c.Path(), c.Get(fiber.HeaderAuthorization))
	if decision.State != StateAuthenticated {
		return apperrors.NewUnauthorized("unauthorized")
	}

	if decision.Identity != nil {
		c.Locals(identityKey, decision.Identity)
	}
	return c.Next()
}

// IdentityFromContext retrieves the identity attached by the guard.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

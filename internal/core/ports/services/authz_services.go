package services

import (
	"context"

	"github.com/ipupy/tesoreria_backend/internal/core/domain"
)

// AuthorizerSvc resolves a principal's effective scope and answers capability
// checks. Scope is re-resolved from the stored role on every call so that
// role changes take effect immediately; nothing is cached across requests.
type AuthorizerSvc interface {
	// ResolveScope loads the principal's current role, church and fund
	// assignments. An unknown or deactivated principal yields
	// ErrUnauthenticated.
	ResolveScope(ctx context.Context, principalID string) (domain.ResolvedScope, error)

	// Can is a pure function of the permission matrix, the resolved scope
	// and the target's owning church/fund.
	Can(scope domain.ResolvedScope, resource domain.Resource, action domain.Action, target domain.AuthzTarget) bool

	// Authorize resolves the principal and checks the capability, returning
	// ErrUnauthenticated or ErrForbidden accordingly. The resolved scope is
	// returned for reuse within the same operation.
	Authorize(ctx context.Context, principalID string, resource domain.Resource, action domain.Action, target domain.AuthzTarget) (domain.ResolvedScope, error)
}

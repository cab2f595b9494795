package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

var (
	ErrUnauthorized       = errors.New("auth: session required")
	ErrForbidden          = errors.New("auth: role not permitted")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// AdminRoles may perform destructive or site-wide changes.
var AdminRoles = []interfaces.Role{interfaces.RoleSuperAdmin, interfaces.RoleAdmin}

type sessionKey struct{}

// WithSession attaches session to ctx.
func WithSession(ctx context.Context, session interfaces.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// ContextAuth reads the session stored by WithSession.
type ContextAuth struct{}

var _ interfaces.AuthService = ContextAuth{}

func (ContextAuth) CurrentSession(ctx context.Context) (interfaces.Session, bool) {
	if ctx == nil {
		return interfaces.Session{}, false
	}
	session, ok := ctx.Value(sessionKey{}).(interfaces.Session)
	if !ok || !ValidRole(session.Role) {
		return interfaces.Session{}, false
	}
	return session, true
}

// Require returns the current session or ErrUnauthorized. When roles are
// given the session role must be one of them, else ErrForbidden.
func Require(ctx context.Context, svc interfaces.AuthService, roles ...interfaces.Role) (interfaces.Session, error) {
	if svc == nil {
		return interfaces.Session{}, ErrUnauthorized
	}
	session, ok := svc.CurrentSession(ctx)
	if !ok {
		return interfaces.Session{}, ErrUnauthorized
	}
	if len(roles) > 0 && !slices.Contains(roles, session.Role) {
		return interfaces.Session{}, ErrForbidden
	}
	return session, nil
}

func ValidRole(role interfaces.Role) bool {
	switch role {
	case interfaces.RoleSuperAdmin, interfaces.RoleAdmin, interfaces.RoleEditor:
		return true
	}
	return false
}

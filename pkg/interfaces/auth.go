package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// Role names the privilege level carried by an authenticated session.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEditor     Role = "EDITOR"
)

// Session is the authenticated principal for the current request.
type Session struct {
	UserID uuid.UUID
	Role   Role
}

// AuthService reports the session attached to the current request, if any.
type AuthService interface {
	CurrentSession(ctx context.Context) (Session, bool)
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

func TestRequire(t *testing.T) {
	svc := ContextAuth{}
	editor := interfaces.Session{UserID: uuid.New(), Role: interfaces.RoleEditor}

	if _, err := Require(context.Background(), svc); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	ctx := WithSession(context.Background(), editor)
	got, err := Require(ctx, svc)
	if err != nil {
		t.Fatalf("require any role: %v", err)
	}
	if got.UserID != editor.UserID {
		t.Fatalf("unexpected session %+v", got)
	}
	if _, err := Require(ctx, svc, AdminRoles...); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for editor, got %v", err)
	}
	admin := WithSession(context.Background(), interfaces.Session{UserID: uuid.New(), Role: interfaces.RoleSuperAdmin})
	if _, err := Require(admin, svc, AdminRoles...); err != nil {
		t.Fatalf("super admin should pass: %v", err)
	}
	bogus := WithSession(context.Background(), interfaces.Session{UserID: uuid.New(), Role: "GUEST"})
	if _, err := Require(bogus, svc); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown roles are not sessions, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	authn, err := NewAuthenticator([]Credential{{Email: "Admin@Example.com", PasswordHash: string(hash), Role: interfaces.RoleAdmin}})
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}

	session, err := authn.Authenticate(" admin@example.com ", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.Role != interfaces.RoleAdmin || session.UserID == uuid.Nil {
		t.Fatalf("unexpected session %+v", session)
	}
	again, _ := authn.Authenticate("admin@example.com", "s3cret")
	if again.UserID != session.UserID {
		t.Fatal("user id must be stable")
	}

	if _, err := authn.Authenticate("admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := authn.Authenticate("nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestNewAuthenticatorRejectsBadRole(t *testing.T) {
	if _, err := NewAuthenticator([]Credential{{Email: "a@b.c", PasswordHash: "x", Role: "ROOT"}}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/identity"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// Credential is one configured administrator.
type Credential struct {
	Email        string
	PasswordHash string
	Role         interfaces.Role
}

// Authenticator checks email/password pairs against bcrypt hashes.
type Authenticator struct {
	byEmail map[string]Credential
	// dummy is compared when the email is unknown so both paths cost a hash.
	dummy []byte
}

func NewAuthenticator(credentials []Credential) (*Authenticator, error) {
	byEmail := make(map[string]Credential, len(credentials))
	for _, cred := range credentials {
		email := normalizeEmail(cred.Email)
		if email == "" || strings.TrimSpace(cred.PasswordHash) == "" {
			return nil, fmt.Errorf("auth: credential for %q is incomplete", cred.Email)
		}
		if cred.Role == "" {
			cred.Role = interfaces.RoleEditor
		}
		if !ValidRole(cred.Role) {
			return nil, fmt.Errorf("auth: role %q is not recognised", cred.Role)
		}
		cred.Email = email
		byEmail[email] = cred
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Authenticator{byEmail: byEmail, dummy: dummy}, nil
}

// Authenticate returns the session for a valid email/password pair. User ids
// are derived from the email so they are stable across restarts.
func (a *Authenticator) Authenticate(email, password string) (interfaces.Session, error) {
	cred, ok := a.byEmail[normalizeEmail(email)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		return interfaces.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return interfaces.Session{}, ErrInvalidCredentials
		}
		return interfaces.Session{}, fmt.Errorf("auth: compare password: %w", err)
	}
	return interfaces.Session{UserID: identity.SeedUserUUID(cred.Email), Role: cred.Role}, nil
}

// HashPassword returns a bcrypt hash suitable for the admins config block.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("auth: password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

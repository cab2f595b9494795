package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to avoid cross-entity collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SettingUUID identifies a settings row by key so upserts converge on one id.
func SettingUUID(key string) uuid.UUID {
	return UUID("site:setting:" + strings.TrimSpace(key))
}

// SeedPageUUID identifies pages created by the seed command.
func SeedPageUUID(slug string) uuid.UUID {
	return UUID("site:page:" + strings.ToLower(strings.TrimSpace(slug)))
}

// SeedSectionUUID identifies the n-th section of a seeded page.
func SeedSectionUUID(pageID uuid.UUID, position int) uuid.UUID {
	return UUID("site:section:" + pageID.String() + ":" + strconv.Itoa(position))
}

// SeedUserUUID identifies configured administrators by email.
func SeedUserUUID(email string) uuid.UUID {
	return UUID("site:user:" + strings.ToLower(strings.TrimSpace(email)))
}

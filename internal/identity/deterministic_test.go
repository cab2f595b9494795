package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := SettingUUID("typo_site_base_size")
	second := SettingUUID("  typo_site_base_size ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
	if first == SettingUUID("typo_nav_size") {
		t.Fatal("expected distinct keys to produce distinct uuids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("   ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
}

func TestSeedIdentifiersDiffer(t *testing.T) {
	page := SeedPageUUID("Home")
	if page != SeedPageUUID("home") {
		t.Fatal("expected page ids to ignore case")
	}
	if SeedSectionUUID(page, 0) == SeedSectionUUID(page, 1) {
		t.Fatal("expected positional section ids")
	}
}

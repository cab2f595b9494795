package sections

import (
	"errors"
	"testing"
)

func TestEveryTypeHasValidDefaultContent(t *testing.T) {
	for _, typ := range Types() {
		raw, err := DefaultContentMap(typ)
		if err != nil {
			t.Fatalf("%s default: %v", typ, err)
		}
		if len(raw) == 0 {
			t.Fatalf("%s default content is empty", typ)
		}
		if err := ValidateContent(typ, raw); err != nil {
			t.Fatalf("%s default fails its schema: %v", typ, err)
		}
		decoded, err := DecodeContent(typ, raw)
		if err != nil {
			t.Fatalf("%s decode: %v", typ, err)
		}
		if decoded.SectionType() != typ {
			t.Fatalf("expected %s, got %s", typ, decoded.SectionType())
		}
	}
}

func TestDecodeContentRejectsForeignFields(t *testing.T) {
	_, err := DecodeContent(TypeRichText, map[string]any{"body_hi": "x", "items": []any{}})
	if !errors.Is(err, ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
}

func TestDecodeContentUnknownType(t *testing.T) {
	if _, err := DecodeContent("CAROUSEL", nil); !errors.Is(err, ErrSectionTypeInvalid) {
		t.Fatalf("expected ErrSectionTypeInvalid, got %v", err)
	}
}

func TestValidateContentStatsItems(t *testing.T) {
	err := ValidateContent(TypeStats, map[string]any{
		"items": []any{map[string]any{"label_hi": "गाँव", "value": 12}},
	})
	if !errors.Is(err, ErrContentInvalid) {
		t.Fatalf("expected numeric value to be rejected, got %v", err)
	}
}

func TestParseTypeAndDirection(t *testing.T) {
	if typ, err := ParseType(" hero "); err != nil || typ != TypeHero {
		t.Fatalf("ParseType: %v %v", typ, err)
	}
	if _, err := ParseType("banner"); !errors.Is(err, ErrSectionTypeInvalid) {
		t.Fatalf("expected ErrSectionTypeInvalid, got %v", err)
	}
	if dir, err := ParseDirection("down"); err != nil || dir != DirectionDown {
		t.Fatalf("ParseDirection: %v %v", dir, err)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrDirectionInvalid) {
		t.Fatalf("expected ErrDirectionInvalid, got %v", err)
	}
}

func TestSchemaReturnsCopy(t *testing.T) {
	doc, ok := Schema(TypeHero)
	if !ok {
		t.Fatal("expected hero schema")
	}
	doc["type"] = "array"
	again, _ := Schema(TypeHero)
	if again["type"] != "object" {
		t.Fatal("expected schema documents to be copied")
	}
}

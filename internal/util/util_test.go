package util

import "testing"

func TestFirstNonEmptySkipsBlank(t *testing.T) {
	if got := FirstNonEmpty("", "  ", " About ", "Home"); got != "About" {
		t.Fatalf("expected About, got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestCloneStringMapKeepsNil(t *testing.T) {
	if CloneStringMap(nil) != nil {
		t.Fatal("expected nil clone for nil input")
	}
	src := map[string]string{"baseSize": "16"}
	cloned := CloneStringMap(src)
	cloned["baseSize"] = "20"
	if src["baseSize"] != "16" {
		t.Fatal("clone shares storage with source")
	}
}

func TestDeepCloneMapIsolatesNestedValues(t *testing.T) {
	src := map[string]any{
		"stats": []any{map[string]any{"label": "Books", "value": "12"}},
		"meta":  map[string]any{"align": "left"},
	}
	cloned := DeepCloneMap(src)

	cloned["stats"].([]any)[0].(map[string]any)["value"] = "99"
	cloned["meta"].(map[string]any)["align"] = "right"

	if src["stats"].([]any)[0].(map[string]any)["value"] != "12" {
		t.Fatal("nested array item was shared")
	}
	if src["meta"].(map[string]any)["align"] != "left" {
		t.Fatal("nested map was shared")
	}
}

package validation

import (
	"errors"
	"strings"
	"testing"
)

var statSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"label": map[string]any{"type": "string", "minLength": 1},
		"value": map[string]any{"type": "integer", "minimum": 0},
	},
	"required":             []any{"label"},
	"additionalProperties": false,
}

type statPayload struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

func TestSchemaValidateAcceptsTypedStruct(t *testing.T) {
	schema := MustCompile(statSchema)
	if err := schema.Validate(statPayload{Label: "Villages", Value: 120}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSchemaValidateReportsIssues(t *testing.T) {
	schema := MustCompile(statSchema)
	err := schema.Validate(map[string]any{"label": "", "value": -1, "extra": true})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected issues to be collected")
	}
	if !strings.Contains(err.Error(), "#") {
		t.Fatalf("expected json pointer locations in %q", err.Error())
	}
}

func TestCompileRejectsEmptySchema(t *testing.T) {
	if _, err := Compile(nil); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadNilPayloadIsEmptyObject(t *testing.T) {
	err := ValidatePayload(statSchema, nil)
	if err == nil {
		t.Fatal("expected missing required label to fail")
	}
}

func TestIssuesFromPlainError(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/sections"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
)

// BlankID identifies the zero-section blueprint used when no template applies.
const BlankID = "blank"

var (
	ErrBlueprintIDInvalid   = errors.New("templates: blueprint id is invalid")
	ErrBlueprintDuplicate   = errors.New("templates: blueprint id already registered")
	ErrBlueprintSectionType = errors.New("templates: blueprint section type is invalid")
)

// BlueprintSection is one entry of a blueprint: a section type and the
// content a new section of that type starts with.
type BlueprintSection struct {
	Type    sections.Type  `json:"type"`
	Content map[string]any `json:"content"`
}

// Blueprint is a named starting layout for a page.
type Blueprint struct {
	ID            string             `json:"id"`
	NameHi        string             `json:"name_hi"`
	NameEn        string             `json:"name_en"`
	DescriptionHi string             `json:"description_hi"`
	DescriptionEn string             `json:"description_en"`
	Sections      []BlueprintSection `json:"sections"`
}

// Catalog is an immutable, ordered registry of blueprints. Callers always
// receive copies.
type Catalog struct {
	ordered []Blueprint
	byID    map[string]int
}

// NewCatalog validates blueprints and builds a catalog. A blank blueprint is
// added first when none of the inputs provides one.
func NewCatalog(blueprints ...Blueprint) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(blueprints)+1)}

	hasBlank := false
	for _, bp := range blueprints {
		if strings.TrimSpace(bp.ID) == BlankID {
			hasBlank = true
			break
		}
	}
	if !hasBlank {
		blueprints = append([]Blueprint{blankBlueprint()}, blueprints...)
	}

	for _, bp := range blueprints {
		id, err := normalizeID(bp.ID)
		if err != nil {
			return nil, err
		}
		if _, exists := c.byID[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrBlueprintDuplicate, id)
		}
		for i, entry := range bp.Sections {
			if !entry.Type.Valid() {
				return nil, fmt.Errorf("%w: %s[%d] %q", ErrBlueprintSectionType, id, i, entry.Type)
			}
			if err := sections.ValidateContent(entry.Type, entry.Content); err != nil {
				return nil, fmt.Errorf("templates: %s[%d]: %w", id, i, err)
			}
		}
		bp.ID = id
		c.byID[id] = len(c.ordered)
		c.ordered = append(c.ordered, cloneBlueprint(bp))
	}
	return c, nil
}

// MustNewCatalog panics when the blueprints are invalid. Used for the built-in
// catalog.
func MustNewCatalog(blueprints ...Blueprint) *Catalog {
	c, err := NewCatalog(blueprints...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every blueprint in registration order.
func (c *Catalog) List() []Blueprint {
	out := make([]Blueprint, len(c.ordered))
	for i, bp := range c.ordered {
		out[i] = cloneBlueprint(bp)
	}
	return out
}

// Get looks up a blueprint by id. Ids are slug-normalised before lookup.
func (c *Catalog) Get(id string) (Blueprint, bool) {
	normalized, err := normalizeID(id)
	if err != nil {
		return Blueprint{}, false
	}
	idx, ok := c.byID[normalized]
	if !ok {
		return Blueprint{}, false
	}
	return cloneBlueprint(c.ordered[idx]), true
}

// Resolve returns the blueprint for id, or the blank blueprint when id is
// empty or unknown.
func (c *Catalog) Resolve(id string) Blueprint {
	if bp, ok := c.Get(id); ok {
		return bp
	}
	blank, _ := c.Get(BlankID)
	return blank
}

func normalizeID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", ErrBlueprintIDInvalid
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrBlueprintIDInvalid, id)
	}
	return normalized, nil
}

func blankBlueprint() Blueprint {
	return Blueprint{
		ID:            BlankID,
		NameHi:        "रिक्त",
		NameEn:        "Blank",
		DescriptionHi: "बिना किसी खंड के खाली पृष्ठ",
		DescriptionEn: "An empty page with no sections",
	}
}

func cloneBlueprint(bp Blueprint) Blueprint {
	cloned := bp
	cloned.Sections = make([]BlueprintSection, len(bp.Sections))
	for i, entry := range bp.Sections {
		cloned.Sections[i] = BlueprintSection{
			Type:    entry.Type,
			Content: util.DeepCloneMap(entry.Content),
		}
	}
	return cloned
}


package sections

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/util"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/validation"
)

// Content is the typed payload of a section. Each section Type has exactly one
// Content implementation.
type Content interface {
	SectionType() Type
}

// HeroContent is the banner at the top of a page.
type HeroContent struct {
	TitleHi    string `json:"title_hi"`
	TitleEn    string `json:"title_en,omitempty"`
	SubtitleHi string `json:"subtitle_hi,omitempty"`
	SubtitleEn string `json:"subtitle_en,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	CTALabelHi string `json:"cta_label_hi,omitempty"`
	CTALabelEn string `json:"cta_label_en,omitempty"`
	CTAURL     string `json:"cta_url,omitempty"`
}

// RichTextContent holds markdown bodies.
type RichTextContent struct {
	BodyHi string `json:"body_hi"`
	BodyEn string `json:"body_en,omitempty"`
}

type BiographyContent struct {
	NameHi   string `json:"name_hi"`
	NameEn   string `json:"name_en,omitempty"`
	RoleHi   string `json:"role_hi,omitempty"`
	RoleEn   string `json:"role_en,omitempty"`
	BioHi    string `json:"bio_hi,omitempty"`
	BioEn    string `json:"bio_en,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type StatItem struct {
	LabelHi string `json:"label_hi"`
	LabelEn string `json:"label_en,omitempty"`
	Value   string `json:"value"`
}

type StatsContent struct {
	Items []StatItem `json:"items"`
}

type VideoItem struct {
	TitleHi string `json:"title_hi"`
	TitleEn string `json:"title_en,omitempty"`
	URL     string `json:"url"`
}

type VideosContent struct {
	Items []VideoItem `json:"items"`
}

func (HeroContent) SectionType() Type      { return TypeHero }
func (RichTextContent) SectionType() Type  { return TypeRichText }
func (BiographyContent) SectionType() Type { return TypeBiography }
func (StatsContent) SectionType() Type     { return TypeStats }
func (VideosContent) SectionType() Type    { return TypeVideos }

// DefaultContent returns the starting payload for a freshly created section of
// type t. Every recognised type has a non-empty default.
func DefaultContent(t Type) (Content, error) {
	switch t {
	case TypeHero:
		return HeroContent{
			TitleHi:    "नया पृष्ठ",
			TitleEn:    "New page",
			SubtitleHi: "यहाँ उपशीर्षक लिखें",
			SubtitleEn: "Add a subtitle here",
		}, nil
	case TypeRichText:
		return RichTextContent{
			BodyHi: "यहाँ सामग्री लिखें।",
			BodyEn: "Write your content here.",
		}, nil
	case TypeBiography:
		return BiographyContent{
			NameHi: "नाम",
			NameEn: "Name",
			RoleHi: "पद",
			RoleEn: "Role",
		}, nil
	case TypeStats:
		return StatsContent{Items: []StatItem{
			{LabelHi: "आँकड़ा", LabelEn: "Statistic", Value: "0"},
		}}, nil
	case TypeVideos:
		return VideosContent{Items: []VideoItem{}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrSectionTypeInvalid, t)
	}
}

// DefaultContentMap is DefaultContent in its stored form.
func DefaultContentMap(t Type) (map[string]any, error) {
	content, err := DefaultContent(t)
	if err != nil {
		return nil, err
	}
	return EncodeContent(content)
}

// EncodeContent converts typed content into its stored map form.
func EncodeContent(content Content) (map[string]any, error) {
	if content == nil {
		return nil, ErrSectionTypeInvalid
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeContent maps a stored payload onto the typed content for t. Unknown
// fields are rejected.
func DecodeContent(t Type, raw map[string]any) (Content, error) {
	var target Content
	switch t {
	case TypeHero:
		target = &HeroContent{}
	case TypeRichText:
		target = &RichTextContent{}
	case TypeBiography:
		target = &BiographyContent{}
	case TypeStats:
		target = &StatsContent{}
	case TypeVideos:
		target = &VideosContent{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrSectionTypeInvalid, t)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentInvalid, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentInvalid, err)
	}
	switch typed := target.(type) {
	case *HeroContent:
		return *typed, nil
	case *RichTextContent:
		return *typed, nil
	case *BiographyContent:
		return *typed, nil
	case *StatsContent:
		return *typed, nil
	case *VideosContent:
		return *typed, nil
	}
	return nil, ErrSectionTypeInvalid
}

// ValidateContent checks a stored payload against the schema for t.
func ValidateContent(t Type, raw map[string]any) error {
	schema, ok := contentSchemas[t]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSectionTypeInvalid, t)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrContentInvalid, err)
	}
	return nil
}

// Schema returns the JSON schema document for t, used by admin clients.
func Schema(t Type) (map[string]any, bool) {
	doc, ok := schemaDocuments[t]
	if !ok {
		return nil, false
	}
	return util.DeepCloneMap(doc), true
}

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func objectSchema(required []any, props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var schemaDocuments = map[Type]map[string]any{
	TypeHero: objectSchema([]any{"title_hi"}, map[string]any{
		"title_hi":     map[string]any{"type": "string", "minLength": 1},
		"title_en":     stringProp(),
		"subtitle_hi":  stringProp(),
		"subtitle_en":  stringProp(),
		"image_url":    stringProp(),
		"cta_label_hi": stringProp(),
		"cta_label_en": stringProp(),
		"cta_url":      stringProp(),
	}),
	TypeRichText: objectSchema([]any{"body_hi"}, map[string]any{
		"body_hi": stringProp(),
		"body_en": stringProp(),
	}),
	TypeBiography: objectSchema([]any{"name_hi"}, map[string]any{
		"name_hi":   map[string]any{"type": "string", "minLength": 1},
		"name_en":   stringProp(),
		"role_hi":   stringProp(),
		"role_en":   stringProp(),
		"bio_hi":    stringProp(),
		"bio_en":    stringProp(),
		"photo_url": stringProp(),
	}),
	TypeStats: objectSchema([]any{"items"}, map[string]any{
		"items": map[string]any{
			"type": "array",
			"items": objectSchema([]any{"label_hi", "value"}, map[string]any{
				"label_hi": stringProp(),
				"label_en": stringProp(),
				"value":    stringProp(),
			}),
		},
	}),
	TypeVideos: objectSchema([]any{"items"}, map[string]any{
		"items": map[string]any{
			"type": "array",
			"items": objectSchema([]any{"title_hi", "url"}, map[string]any{
				"title_hi": stringProp(),
				"title_en": stringProp(),
				"url":      map[string]any{"type": "string", "minLength": 1},
			}),
		},
	}),
}

var contentSchemas = compileSchemas(schemaDocuments)

func compileSchemas(docs map[Type]map[string]any) map[Type]*validation.Schema {
	out := make(map[Type]*validation.Schema, len(docs))
	for t, doc := range docs {
		out[t] = validation.MustCompile(doc)
	}
	return out
}

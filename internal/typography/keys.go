package typography

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key is a recognised style key as used in page overrides.
type Key string

const (
	BaseSize            Key = "baseSize"
	BodyWeight          Key = "bodyWeight"
	NavSize             Key = "navSize"
	NavWeight           Key = "navWeight"
	FooterTitleSize     Key = "footerTitleSize"
	FooterBodySize      Key = "footerBodySize"
	HeroTitleSize       Key = "heroTitleSize"
	HeroDescriptionSize Key = "heroDescriptionSize"
)

// DefaultSettingPrefix is the prefix shared by global typography settings.
const DefaultSettingPrefix = "typo_"

var (
	ErrUnknownKey   = errors.New("typography: unrecognised style key")
	ErrInvalidValue = errors.New("typography: invalid style value")
)

type kind int

const (
	kindSize kind = iota
	kindWeight
)

// KeySpec ties a style key to its global setting suffix and default.
type KeySpec struct {
	Key           Key
	SettingSuffix string
	Default       string
	CSSVariable   string
	kind          kind
}

// SettingKey returns the global setting key for spec under prefix.
func (s KeySpec) SettingKey(prefix string) string {
	return prefix + s.SettingSuffix
}

// Validate checks a raw value for this key. Sizes are whole pixels between
// 8 and 160; weights are multiples of 100 between 100 and 900.
func (s KeySpec) Validate(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s must be a whole number", ErrInvalidValue, s.Key)
	}
	switch s.kind {
	case kindWeight:
		if n < 100 || n > 900 || n%100 != 0 {
			return fmt.Errorf("%w: %s must be 100..900 in steps of 100", ErrInvalidValue, s.Key)
		}
	default:
		if n < 8 || n > 160 {
			return fmt.Errorf("%w: %s must be between 8 and 160", ErrInvalidValue, s.Key)
		}
	}
	return nil
}

var specs = []KeySpec{
	{Key: BaseSize, SettingSuffix: "site_base_size", Default: "16", CSSVariable: "--typo-base-size", kind: kindSize},
	{Key: BodyWeight, SettingSuffix: "site_body_weight", Default: "400", CSSVariable: "--typo-body-weight", kind: kindWeight},
	{Key: NavSize, SettingSuffix: "nav_size", Default: "15", CSSVariable: "--typo-nav-size", kind: kindSize},
	{Key: NavWeight, SettingSuffix: "nav_weight", Default: "500", CSSVariable: "--typo-nav-weight", kind: kindWeight},
	{Key: FooterTitleSize, SettingSuffix: "footer_title_size", Default: "18", CSSVariable: "--typo-footer-title-size", kind: kindSize},
	{Key: FooterBodySize, SettingSuffix: "footer_body_size", Default: "14", CSSVariable: "--typo-footer-body-size", kind: kindSize},
	{Key: HeroTitleSize, SettingSuffix: "hero_title_size", Default: "48", CSSVariable: "--typo-hero-title-size", kind: kindSize},
	{Key: HeroDescriptionSize, SettingSuffix: "hero_description_size", Default: "18", CSSVariable: "--typo-hero-description-size", kind: kindSize},
}

// Specs returns the recognised keys in a fixed order.
func Specs() []KeySpec {
	out := make([]KeySpec, len(specs))
	copy(out, specs)
	return out
}

func Keys() []Key {
	out := make([]Key, len(specs))
	for i, spec := range specs {
		out[i] = spec.Key
	}
	return out
}

func Lookup(key Key) (KeySpec, bool) {
	for _, spec := range specs {
		if spec.Key == key {
			return spec, true
		}
	}
	return KeySpec{}, false
}

// Defaults returns the hard-coded value for every recognised key.
func Defaults() map[string]string {
	out := make(map[string]string, len(specs))
	for _, spec := range specs {
		out[string(spec.Key)] = spec.Default
	}
	return out
}

// ValidateOverrides checks a page override map. Every key must be recognised;
// blank values are allowed and mean "inherit".
func ValidateOverrides(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		spec, ok := Lookup(Key(key))
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if strings.TrimSpace(overrides[key]) == "" {
			continue
		}
		if err := spec.Validate(overrides[key]); err != nil {
			return err
		}
	}
	return nil
}

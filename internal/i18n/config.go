package i18n

import "strings"

// Config lists the locales a site serves. The first entry of Locales is not
// significant; DefaultLocale is.
type Config struct {
	DefaultLocale string
	Locales       []string
}

func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: defaultLocale,
		Locales:       locales,
	}
}

// Supports reports whether code is one of the configured locales.
func (c Config) Supports(code string) bool {
	code = Normalize(code)
	for _, locale := range c.Locales {
		if Normalize(locale) == code {
			return code != ""
		}
	}
	return false
}

// Default returns the configured default, falling back to Hindi.
func (c Config) Default() string {
	if code := Normalize(c.DefaultLocale); code != "" {
		return code
	}
	return Hindi
}

// Others returns every configured locale except code, in configured order.
func (c Config) Others(code string) []string {
	code = Normalize(code)
	out := make([]string, 0, len(c.Locales))
	for _, locale := range c.Locales {
		if n := Normalize(locale); n != "" && n != code {
			out = append(out, n)
		}
	}
	return out
}

// Normalize lowercases a locale code and strips any region ("en-IN" -> "en").
// Unknown codes normalise to "".
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	switch code {
	case Hindi, English:
		return code
	default:
		return ""
	}
}

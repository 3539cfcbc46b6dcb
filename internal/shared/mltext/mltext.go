// Package mltext holds the multilingual text value used by catalog
// entities. Values are stored as a jsonb object mapping language code
// to string, e.g. {"ru": "Фотокниги", "en": "Photobooks"}.
package mltext

import "strings"

// Languages supported by the storefront.
const (
	LangRU = "ru"
	LangEN = "en"
	LangHY = "hy"
)

// DefaultLanguage is the storefront's primary language.
const DefaultLanguage = LangRU

// Languages in fallback order.
var Languages = []string{LangRU, LangEN, LangHY}

// Text maps a language code to a translated string.
type Text map[string]string

// Get returns the value for lang, falling back through the supported
// languages and finally to any non-empty value.
func (t Text) Get(lang string) string {
	if v := strings.TrimSpace(t[lang]); v != "" {
		return v
	}
	for _, l := range Languages {
		if v := strings.TrimSpace(t[l]); v != "" {
			return v
		}
	}
	for _, v := range t {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Primary returns the default-language value with fallbacks.
func (t Text) Primary() string {
	return t.Get(DefaultLanguage)
}

// IsEmpty reports whether no language carries a non-empty value.
func (t Text) IsEmpty() bool {
	return t.Get(DefaultLanguage) == ""
}

// Clone returns a copy so callers can mutate safely.
func (t Text) Clone() Text {
	if t == nil {
		return nil
	}
	out := make(Text, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

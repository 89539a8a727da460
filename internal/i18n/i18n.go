// Package i18n holds the UI catalogs and locale negotiation.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localesFS embed.FS

// Locales are the languages shipped with the binary.
var Locales = []string{"en", "fr", "es", "ar"}

// DefaultLocale is used when nothing better matches.
const DefaultLocale = "en"

type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
	order     []string
	matcher   language.Matcher
	tags      []language.Tag
}

// Default loads the embedded catalogs.
func Default(fallback string, supported []string) (*Bundle, error) {
	return Load(localesFS, "locales", fallback, supported)
}

// Load reads <dir>/<lang>.json from fsys for every supported language. Only the
// fallback catalog is mandatory.
func Load(fsys fs.FS, dir, fallback string, supported []string) (*Bundle, error) {
	if fallback == "" {
		fallback = DefaultLocale
	}
	if len(supported) == 0 {
		supported = Locales
	}
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}

	// The matcher prefers its first tag on ties and on no match.
	b.order = append(b.order, fallback)
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || l == fallback {
			continue
		}
		b.order = append(b.order, l)
	}

	for _, l := range b.order {
		b.supported[l] = struct{}{}
		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}

	b.tags = make([]language.Tag, 0, len(b.order))
	for _, l := range b.order {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %s: %w", l, err)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Supported returns the supported languages sorted.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Ordered returns the supported languages with the fallback first.
func (b *Bundle) Ordered() []string {
	return append([]string(nil), b.order...)
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is served.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// Dir returns the text direction for lang.
func (b *Bundle) Dir(lang string) string {
	if lang == "ar" {
		return "rtl"
	}
	return "ltr"
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	if lang != "" {
		if m, ok := b.dict[lang]; ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Tf formats the translation of key with args, grouping numbers for lang.
func (b *Bundle) Tf(lang, key string, args ...any) string {
	return b.printer(lang).Sprintf(b.T(lang, key), args...)
}

// Category returns the label for a category id.
func (b *Bundle) Category(lang, id string) string {
	if v := b.T(lang, "category."+id); v != "category."+id {
		return v
	}
	return id
}

// Region returns the label for a region id.
func (b *Bundle) Region(lang, id string) string {
	if v := b.T(lang, "region."+id); v != "region."+id {
		return v
	}
	return id
}

// Resolve chooses best language from Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(b.order) {
		return b.fallback
	}
	return b.order[idx]
}

func (b *Bundle) printer(lang string) *message.Printer {
	for i, l := range b.order {
		if l == lang {
			return message.NewPrinter(b.tags[i])
		}
	}
	return message.NewPrinter(b.tags[0])
}

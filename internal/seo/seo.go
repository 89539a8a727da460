// Package seo builds page metadata, JSON-LD payloads and the sitemap.
package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Alternate links one locale variant of a page.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Alternates  []Alternate
	OG          OpenGraph
	Twitter     Twitter
}

// ogLocales maps site locales to Open Graph locale codes.
var ogLocales = map[string]string{
	"en": "en_US",
	"fr": "fr_FR",
	"es": "es_ES",
	"ar": "ar_MA",
}

// NewMeta fills a Meta with Open Graph and Twitter fields derived from the basics.
func NewMeta(title, description, canonical, image, lang string) Meta {
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: Truncate(description, 160),
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       title,
			Description: Truncate(description, 200),
			Image:       image,
			Type:        "website",
			Locale:      ogLocales[lang],
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

// WithAlternates sets hreflang links for path under each locale.
func (m Meta) WithAlternates(baseURL, path string, locales []string) Meta {
	m.Alternates = make([]Alternate, 0, len(locales))
	for _, l := range locales {
		m.Alternates = append(m.Alternates, Alternate{Lang: l, Href: baseURL + "/" + l + path})
	}
	return m
}

// Truncate shortens s to at most limit runes on a word boundary.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	cut := string(r[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// Package nav defines the site navigation, legal links and breadcrumbs.
package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path      string // e.g. "/events"
	LabelKey  string // i18n key, e.g. "nav.events"
	Localized bool   // lives under /{locale}
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.home", Localized: true},
	{Path: "/events", LabelKey: "nav.events", Localized: true},
	{Path: "/regions", LabelKey: "nav.regions", Localized: true},
	{Path: "/about", LabelKey: "nav.about", Localized: true},
	{Path: "/stories", LabelKey: "nav.stories"},
	{Path: "/glossary", LabelKey: "nav.glossary"},
}

// Legal lists the footer legal pages.
var Legal = []Item{
	{Path: "/privacy", LabelKey: "legal.privacy"},
	{Path: "/terms", LabelKey: "legal.terms"},
	{Path: "/cookies", LabelKey: "legal.cookies"},
	{Path: "/legal", LabelKey: "legal.legal"},
}

// CopyrightKey is the i18n key of the footer copyright line.
const CopyrightKey = "legal.copyright"

// Build renders navigation items with active state given the current path.
func Build(lang, currentPath string) []RenderedItem {
	return render(Main, lang, currentPath)
}

// LegalLinks renders the footer legal items.
func LegalLinks(lang, currentPath string) []RenderedItem {
	return render(Legal, lang, currentPath)
}

func render(list []Item, lang, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(list))
	for _, it := range list {
		href := Href(lang, it)
		items = append(items, RenderedItem{
			Href:     href,
			LabelKey: it.LabelKey,
			Active:   isActive(href, currentPath, it.Path == "/"),
		})
	}
	return items
}

// Href returns the link for it in lang.
func Href(lang string, it Item) string {
	if !it.Localized || lang == "" {
		return it.Path
	}
	if it.Path == "/" {
		return "/" + lang
	}
	return "/" + lang + it.Path
}

func isActive(href, currentPath string, root bool) bool {
	if currentPath == href {
		return true
	}
	if root {
		return false
	}
	// match prefix boundary: "/en/events" or "/en/events/..."
	return strings.HasPrefix(currentPath, href+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home, the locale root when the path carries a locale
// - For known sections, use nav label keys
// - "event" and "story" segments are folded into their list pages
// - For deeper segments, use a prettified segment label
func Breadcrumbs(lang, currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	clean := path.Clean(currentPath)
	parts := strings.Split(strings.Trim(clean, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		parts = nil
	}

	home := "/"
	if lang != "" {
		home = "/" + lang
	}
	if len(parts) > 0 && parts[0] == lang {
		parts = parts[1:]
	}
	crumbs := []Crumb{{Href: home, LabelKey: "nav.home", Active: len(parts) == 0}}
	if len(parts) == 0 {
		return crumbs
	}

	prefix := home
	if lang == "" || !isLocalizedSection(parts[0]) {
		prefix = ""
	}
	if alias, ok := sectionAliases[parts[0]]; ok && len(parts) > 1 {
		crumbs = append(crumbs, Crumb{Href: hrefFor(lang, alias), LabelKey: labelKey(alias), Label: titleFromSegment(alias)})
		crumbs = append(crumbs, Crumb{Href: clean, Label: titleFromSegment(parts[len(parts)-1]), Active: true})
		return crumbs
	}

	href := prefix
	for i, seg := range parts {
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			c.LabelKey = labelKey(seg)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

// sectionAliases maps detail segments to their list section.
var sectionAliases = map[string]string{
	"event": "events",
	"story": "stories",
}

func isLocalizedSection(seg string) bool {
	if alias, ok := sectionAliases[seg]; ok {
		seg = alias
	}
	for _, it := range Main {
		if it.Path == "/"+seg {
			return it.Localized
		}
	}
	return false
}

func hrefFor(lang, seg string) string {
	for _, it := range Main {
		if it.Path == "/"+seg {
			return Href(lang, it)
		}
	}
	return "/" + seg
}

func labelKey(seg string) string {
	for _, list := range [][]Item{Main, Legal} {
		for _, it := range list {
			if it.Path == "/"+seg {
				return it.LabelKey
			}
		}
	}
	return ""
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// Package glossary holds the cultural glossary: categories of terms with definitions,
// pronunciations and cross references, plus the irregular surface forms used when
// linking prose to glossary entries.
package glossary

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Term is a single glossary entry.
type Term struct {
	ID            string   `json:"id"`
	Term          string   `json:"term"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	ArabicScript  string   `json:"arabicScript,omitempty"`
	Tifinagh      string   `json:"tifinagh,omitempty"`
	Category      string   `json:"category"`
	Definition    string   `json:"definition"`
	Context       string   `json:"context,omitempty"`
	Related       []string `json:"related,omitempty"`
	SeeAlso       []string `json:"seeAlso,omitempty"`
}

// Category groups terms under a heading.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Terms       []Term `json:"terms"`
}

// Variants maps a term id to extra surface forms (plurals, alternate transliterations).
type Variants map[string][]string

// Glossary is an immutable view over a set of categories.
type Glossary struct {
	categories []Category
	terms      []Term
	byID       map[string]int
}

var defaultGlossary = sync.OnceValue(func() *Glossary {
	return New(builtinCategories)
})

// Default returns the built-in glossary. It is built on first use and shared read-only.
func Default() *Glossary {
	return defaultGlossary()
}

// DefaultVariants returns a copy of the built-in variants table.
func DefaultVariants() Variants {
	return builtinVariants.Clone()
}

// New builds a glossary from categories. Input slices are copied.
func New(categories []Category) *Glossary {
	g := &Glossary{
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int),
	}
	for _, c := range categories {
		cat := c
		cat.Terms = make([]Term, 0, len(c.Terms))
		for _, t := range c.Terms {
			term := cloneTerm(t)
			if term.Category == "" {
				term.Category = c.ID
			}
			cat.Terms = append(cat.Terms, term)
			if _, seen := g.byID[term.ID]; !seen {
				g.byID[term.ID] = len(g.terms)
			}
			g.terms = append(g.terms, term)
		}
		g.categories = append(g.categories, cat)
	}
	return g
}

// Categories returns every category with its terms, in table order.
func (g *Glossary) Categories() []Category {
	out := make([]Category, 0, len(g.categories))
	for _, c := range g.categories {
		cat := c
		cat.Terms = make([]Term, 0, len(c.Terms))
		for _, t := range c.Terms {
			cat.Terms = append(cat.Terms, cloneTerm(t))
		}
		out = append(out, cat)
	}
	return out
}

// AllTerms returns every term as a flat list in table order.
func (g *Glossary) AllTerms() []Term {
	out := make([]Term, 0, len(g.terms))
	for _, t := range g.terms {
		out = append(out, cloneTerm(t))
	}
	return out
}

// TermByID looks up a term by its id.
func (g *Glossary) TermByID(id string) (Term, bool) {
	idx, ok := g.byID[strings.TrimSpace(id)]
	if !ok {
		return Term{}, false
	}
	return cloneTerm(g.terms[idx]), true
}

// Search returns terms whose name, definition or related strings contain query. Matching
// ignores case and diacritics, so "pise" finds "Pisé". An empty query returns every term.
func (g *Glossary) Search(query string) []Term {
	q := Fold(strings.TrimSpace(query))
	out := make([]Term, 0)
	for _, t := range g.terms {
		if q == "" || termMatches(t, q) {
			out = append(out, cloneTerm(t))
		}
	}
	return out
}

// Len reports the number of terms.
func (g *Glossary) Len() int {
	return len(g.terms)
}

func termMatches(t Term, q string) bool {
	if strings.Contains(Fold(t.Term), q) || strings.Contains(Fold(t.Definition), q) {
		return true
	}
	for _, r := range t.Related {
		if strings.Contains(Fold(r), q) {
			return true
		}
	}
	return false
}

// Fold lowercases s and strips combining marks.
func Fold(s string) string {
	lower := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

// Clone returns a deep copy of the table.
func (v Variants) Clone() Variants {
	out := make(Variants, len(v))
	for id, forms := range v {
		out[id] = append([]string(nil), forms...)
	}
	return out
}

// IDs returns the term ids present in the table, sorted.
func (v Variants) IDs() []string {
	ids := make([]string, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneTerm(t Term) Term {
	t.Related = append([]string(nil), t.Related...)
	t.SeeAlso = append([]string(nil), t.SeeAlso...)
	return t
}

// Package linker rewrites prose so that glossary terms point at their glossary entry.
//
// A Linker is built once from a glossary and a variants table and is safe for concurrent
// use. Each LinkHTML or LinkText call links a given term id at most once.
package linker

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
)

const (
	// GlossaryPath is the page that carries one anchor per term id.
	GlossaryPath = "/glossary"
	linkClass    = "glossary-link"
)

// Entry is what a surface form resolves to.
type Entry struct {
	ID      string
	Display string
}

// Linker holds the surface-form lookup and the compiled alternation.
type Linker struct {
	entries map[string]Entry
	keys    []string
	pattern *regexp.Regexp
}

// New builds the lookup from every glossary term and its variants. Canonical terms and
// variants are inserted in glossary order; a later insertion for an existing surface form
// replaces the earlier one. Variants for ids missing from the glossary are ignored.
// Accented forms are matched in both composed (NFC) and decomposed (NFD) text.
func New(g *glossary.Glossary, variants glossary.Variants) *Linker {
	entries := make(map[string]Entry)
	for _, term := range g.AllTerms() {
		if key := surfaceKey(term.Term); key != "" {
			entries[key] = Entry{ID: term.ID, Display: term.Term}
		}
		for _, form := range variants[term.ID] {
			if key := surfaceKey(form); key != "" {
				entries[key] = Entry{ID: term.ID, Display: form}
			}
		}
	}

	// Decomposed input carries accents as combining marks; give it its own keys.
	decomposed := make(map[string]Entry)
	for key, e := range entries {
		if nfd := norm.NFD.String(key); nfd != key {
			decomposed[nfd] = e
		}
	}
	for key, e := range decomposed {
		entries[key] = e
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	l := &Linker{entries: entries, keys: keys}
	if len(keys) > 0 {
		quoted := make([]string, len(keys))
		for i, key := range keys {
			quoted[i] = regexp.QuoteMeta(key)
		}
		l.pattern = regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	}
	return l
}

// Lookup resolves a surface form, ignoring case.
func (l *Linker) Lookup(surface string) (Entry, bool) {
	e, ok := l.entries[surfaceKey(surface)]
	return e, ok
}

// Keys returns every surface form, longest first. Accented forms appear twice, composed
// and decomposed.
func (l *Linker) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Pattern returns the source of the compiled alternation, or "" for an empty glossary.
func (l *Linker) Pattern() string {
	if l.pattern == nil {
		return ""
	}
	return l.pattern.String()
}

// Href returns the glossary anchor for a term id.
func Href(id string) string {
	return GlossaryPath + "#" + id
}

// scan walks text and calls fn for the first match of every id not yet in linked.
// Matches for ids that are already linked are skipped over without being re-scanned.
func (l *Linker) scan(text string, linked map[string]struct{}, fn func(start, end int, e Entry)) {
	if l.pattern == nil || text == "" {
		return
	}
	pos := 0
	for pos < len(text) {
		loc := l.pattern.FindStringIndex(text[pos:])
		if loc == nil {
			return
		}
		start := pos + loc[0]
		if !leftEdge(text, start) {
			pos = nextRune(text, start)
			continue
		}
		key, end, ok := l.keyAt(text, start)
		if !ok {
			pos = nextRune(text, start)
			continue
		}
		entry := l.entries[key]
		if _, done := linked[entry.ID]; !done {
			linked[entry.ID] = struct{}{}
			fn(start, end, entry)
		}
		pos = end
	}
}

// keyAt returns the longest key that matches text at start and ends on a word edge.
func (l *Linker) keyAt(text string, start int) (string, int, bool) {
	rest := text[start:]
	for _, key := range l.keys {
		n, ok := foldPrefix(rest, key)
		if ok && rightEdge(text, start+n) {
			return key, start + n, true
		}
	}
	return "", 0, false
}

// foldPrefix reports whether s starts with prefix under simple case folding and returns
// the byte length of the matching part of s.
func foldPrefix(s, prefix string) (int, bool) {
	i := 0
	for _, want := range prefix {
		if i >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[i:])
		if got != want && !equalFold(got, want) {
			return 0, false
		}
		i += size
	}
	return i, true
}

func equalFold(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func leftEdge(text string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func rightEdge(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func nextRune(text string, i int) int {
	_, size := utf8.DecodeRuneInString(text[i:])
	if size == 0 {
		return i + 1
	}
	return i + size
}

func surfaceKey(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}

package linker

import (
	"html/template"
	"strings"
)

// Fragment is a piece of linked plain text. Link fragments carry the term id.
type Fragment struct {
	Text   string `json:"text"`
	TermID string `json:"termId,omitempty"`
	Href   string `json:"href,omitempty"`
}

// IsLink reports whether the fragment points at a glossary entry.
func (f Fragment) IsLink() bool {
	return f.TermID != ""
}

// Fragments is the result of LinkText.
type Fragments []Fragment

// String joins the fragment texts, which reproduces the input of LinkText.
func (fs Fragments) String() string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(f.Text)
	}
	return b.String()
}

// HTML renders the fragments with text escaped and links as anchors.
func (fs Fragments) HTML() template.HTML {
	var b strings.Builder
	for _, f := range fs {
		if !f.IsLink() {
			b.WriteString(template.HTMLEscapeString(f.Text))
			continue
		}
		b.WriteString(`<a href="`)
		b.WriteString(template.HTMLEscapeString(f.Href))
		b.WriteString(`" class="`)
		b.WriteString(linkClass)
		b.WriteString(`">`)
		b.WriteString(template.HTMLEscapeString(f.Text))
		b.WriteString(`</a>`)
	}
	return template.HTML(b.String())
}

// LinkText splits plain text into text and link fragments, linking the first occurrence
// of each glossary term. It returns nil for empty input.
func (l *Linker) LinkText(text string) Fragments {
	if text == "" {
		return nil
	}
	var out Fragments
	last := 0
	l.scan(text, make(map[string]struct{}), func(start, end int, e Entry) {
		if start > last {
			out = append(out, Fragment{Text: text[last:start]})
		}
		out = append(out, Fragment{Text: text[start:end], TermID: e.ID, Href: Href(e.ID)})
		last = end
	})
	if last < len(text) {
		out = append(out, Fragment{Text: text[last:]})
	}
	return out
}

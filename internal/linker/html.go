package linker

import "strings"

// LinkHTML wraps the first occurrence of each glossary term found in the text of src,
// outside anchors and headings, in a link to its glossary entry. Markup is copied through
// untouched and the matched text keeps its casing. Empty input is returned as is.
func (l *Linker) LinkHTML(src string) string {
	if src == "" || l.pattern == nil {
		return src
	}

	linked := make(map[string]struct{})
	var state markupState
	var b strings.Builder
	b.Grow(len(src) + 128)

	for _, seg := range splitMarkup(src) {
		if seg.markup {
			state.observe(seg.raw)
			b.WriteString(seg.raw)
			continue
		}
		if !state.linkable() {
			b.WriteString(seg.raw)
			continue
		}
		l.writeLinked(&b, seg.raw, linked)
	}
	return b.String()
}

func (l *Linker) writeLinked(b *strings.Builder, text string, linked map[string]struct{}) {
	last := 0
	l.scan(text, linked, func(start, end int, e Entry) {
		b.WriteString(text[last:start])
		b.WriteString(`<a href="`)
		b.WriteString(Href(e.ID))
		b.WriteString(`" class="`)
		b.WriteString(linkClass)
		b.WriteString(`">`)
		b.WriteString(text[start:end])
		b.WriteString(`</a>`)
		last = end
	})
	b.WriteString(text[last:])
}

package linker

import (
	"strings"

	"golang.org/x/net/html"
)

// segment is a run of either markup (a tag, comment or doctype) or text.
type segment struct {
	raw    string
	markup bool
}

// splitMarkup cuts src into markup and text segments. Joining every raw value gives back
// src byte for byte, whatever the shape of the markup.
func splitMarkup(src string) []segment {
	z := html.NewTokenizer(strings.NewReader(src))
	var out []segment
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		if raw == "" {
			continue
		}
		consumed += len(raw)
		out = append(out, segment{raw: raw, markup: tt != html.TextToken})
	}
	// A tag cut off by the end of input is not returned as a token.
	if consumed < len(src) {
		out = append(out, segment{raw: src[consumed:], markup: true})
	}
	return out
}

type tagKind int

const (
	tagOther tagKind = iota
	tagAnchorOpen
	tagAnchorClose
	tagHeadingOpen
	tagHeadingClose
	tagRawTextOpen
	tagRawTextClose
)

// rawTextElements hold text that is not prose; the tokenizer returns it as one text token.
var rawTextElements = map[string]bool{"script": true, "style": true, "title": true, "textarea": true}

// classifyTag inspects a raw markup segment such as `<A href="x">` or `</h2 >`.
func classifyTag(raw string) tagKind {
	if !strings.HasPrefix(raw, "<") {
		return tagOther
	}
	rest := raw[1:]
	closing := strings.HasPrefix(rest, "/")
	if closing {
		rest = rest[1:]
	}
	name := strings.ToLower(tagName(rest))
	switch {
	case name == "a":
		if closing {
			return tagAnchorClose
		}
		return tagAnchorOpen
	case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
		if closing {
			return tagHeadingClose
		}
		return tagHeadingOpen
	case rawTextElements[name]:
		if closing {
			return tagRawTextClose
		}
		return tagRawTextOpen
	default:
		return tagOther
	}
}

func tagName(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '/' || c == '>' {
			return s[:i]
		}
	}
	return s
}

// markupState tracks whether the scanner sits inside an anchor, a heading or a raw text
// element such as script or style. Tags are
// not matched against each other, so stray or unclosed tags can leave a flag set until
// the next closing tag of that kind.
type markupState struct {
	inAnchor  bool
	inHeading bool
	inRawText bool
}

func (s *markupState) observe(raw string) {
	switch classifyTag(raw) {
	case tagAnchorOpen:
		s.inAnchor = true
	case tagAnchorClose:
		s.inAnchor = false
	case tagHeadingOpen:
		s.inHeading = true
	case tagHeadingClose:
		s.inHeading = false
	case tagRawTextOpen:
		s.inRawText = true
	case tagRawTextClose:
		s.inRawText = false
	}
}

func (s markupState) linkable() bool {
	return !s.inAnchor && !s.inHeading && !s.inRawText
}

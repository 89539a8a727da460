package stories

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// TermLinker inserts glossary links into HTML.
type TermLinker interface {
	LinkHTML(src string) string
}

// Renderer turns a story body into safe, glossary-linked HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	linker TermLinker
}

// NewRenderer builds a Renderer. A nil linker leaves bodies unlinked.
func NewRenderer(linker TermLinker) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: newStoryPolicy(),
		linker: linker,
	}
}

func newStoryPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "a")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(false)
	return policy
}

// Render converts markdown to HTML, sanitises it and links glossary terms. Bodies that
// already start with a tag skip markdown conversion.
func (r *Renderer) Render(body string) template.HTML {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	out := body
	if !strings.HasPrefix(body, "<") {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(body), &buf); err == nil {
			out = buf.String()
		}
	}
	out = r.policy.Sanitize(out)
	if r.linker != nil {
		out = r.linker.LinkHTML(out)
	}
	return template.HTML(out)
}

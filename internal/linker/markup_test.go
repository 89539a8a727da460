package linker

import (
	"strings"
	"testing"
)

func TestClassifyTag(t *testing.T) {
	cases := []struct {
		raw  string
		want tagKind
	}{
		{raw: "<a>", want: tagAnchorOpen},
		{raw: `<a href="/x">`, want: tagAnchorOpen},
		{raw: `<A HREF="/x">`, want: tagAnchorOpen},
		{raw: "</a>", want: tagAnchorClose},
		{raw: "</A >", want: tagAnchorClose},
		{raw: "<h1>", want: tagHeadingOpen},
		{raw: `<h6 id="t">`, want: tagHeadingOpen},
		{raw: "<H2>", want: tagHeadingOpen},
		{raw: "</h3>", want: tagHeadingClose},
		{raw: "<h7>", want: tagOther},
		{raw: "<hr>", want: tagOther},
		{raw: "<abbr>", want: tagOther},
		{raw: "<article>", want: tagOther},
		{raw: "<!-- a -->", want: tagOther},
		{raw: "text", want: tagOther},
	}
	for _, tc := range cases {
		if got := classifyTag(tc.raw); got != tc.want {
			t.Fatalf("classifyTag(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestSplitMarkupRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`<p class="x">Hello <b>world</b></p>`,
		`<!DOCTYPE html><html><!-- c --><body>riad</body></html>`,
		`a < b and c > d`,
		`<p>cut off <a href="`,
		`<br/><img src="x.png" alt="<kasbah>">tail`,
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, seg := range splitMarkup(in) {
			b.WriteString(seg.raw)
		}
		if b.String() != in {
			t.Fatalf("round trip mismatch: got %q want %q", b.String(), in)
		}
	}
}

func TestSplitMarkupMarksTags(t *testing.T) {
	segs := splitMarkup(`<p>riad</p>`)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %#v", len(segs), segs)
	}
	if !segs[0].markup || segs[1].markup || !segs[2].markup {
		t.Fatalf("unexpected markup flags: %#v", segs)
	}
	if segs[1].raw != "riad" {
		t.Fatalf("unexpected text segment %q", segs[1].raw)
	}
}

func TestMarkupStateFlags(t *testing.T) {
	var s markupState
	if !s.linkable() {
		t.Fatal("zero state must be linkable")
	}
	s.observe(`<a href="x">`)
	s.observe("<h2>")
	if s.linkable() {
		t.Fatal("inside anchor and heading")
	}
	s.observe("</a>")
	if s.linkable() {
		t.Fatal("still inside heading")
	}
	s.observe("</h2>")
	if !s.linkable() {
		t.Fatal("expected linkable after closing both")
	}
}

func TestMarkupStateRawText(t *testing.T) {
	var s markupState
	s.observe(`<SCRIPT type="text/javascript">`)
	if s.linkable() {
		t.Fatal("script body must not be linkable")
	}
	s.observe("</script>")
	if !s.linkable() {
		t.Fatal("expected linkable after </script>")
	}
	if got := classifyTag("<style>"); got != tagRawTextOpen {
		t.Fatalf("expected raw text open for <style>, got %v", got)
	}
	if got := classifyTag("</title >"); got != tagRawTextClose {
		t.Fatalf("expected raw text close for </title >, got %v", got)
	}
}

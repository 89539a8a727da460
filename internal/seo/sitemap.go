package seo

import (
	"encoding/xml"
	"io"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one sitemap entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// SitemapPages lists the static pages of every locale followed by each event page in
// every locale. A non-zero lastMod is stamped on all entries.
func SitemapPages(baseURL string, locales, eventIDs []string, lastMod time.Time) []URL {
	stamp := ""
	if !lastMod.IsZero() {
		stamp = lastMod.UTC().Format("2006-01-02")
	}
	out := make([]URL, 0, len(locales)*(4+len(eventIDs)))
	for _, l := range locales {
		root := baseURL + "/" + l
		out = append(out,
			URL{Loc: root, LastMod: stamp, ChangeFreq: "daily", Priority: 1.0},
			URL{Loc: root + "/events", LastMod: stamp, ChangeFreq: "daily", Priority: 0.9},
			URL{Loc: root + "/regions", LastMod: stamp, ChangeFreq: "weekly", Priority: 0.8},
			URL{Loc: root + "/about", LastMod: stamp, ChangeFreq: "monthly", Priority: 0.6},
		)
	}
	for _, id := range eventIDs {
		for _, l := range locales {
			out = append(out, URL{Loc: baseURL + "/" + l + "/event/" + id, LastMod: stamp, ChangeFreq: "weekly", Priority: 0.9})
		}
	}
	return out
}

// WriteSitemap encodes urls as a sitemap document.
func WriteSitemap(w io.Writer, urls []URL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlSet{XMLNS: sitemapNS, URLs: urls}); err != nil {
		return err
	}
	return enc.Flush()
}

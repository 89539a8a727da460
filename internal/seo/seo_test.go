package seo

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/stories"
)

func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(JSON(v)), &out))
	return out
}

func sample(t *testing.T, id string) events.Event {
	t.Helper()
	for _, e := range events.SampleEvents() {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("sample %s missing", id)
	return events.Event{}
}

func TestEventSchemaFreeEvent(t *testing.T) {
	m := decode(t, Event(sample(t, "gnaoua-2026"), "fr", "https://example.test/fr/event/gnaoua-2026"))

	require.Equal(t, "Event", m["@type"])
	require.Equal(t, "Festival Gnaoua Musiques du Monde", m["name"])
	require.Equal(t, "2026-06-25", m["startDate"])
	require.Equal(t, "2026-06-28", m["endDate"])

	loc := m["location"].(map[string]any)
	require.Equal(t, "Place Moulay Hassan", loc["name"])
	geo := loc["geo"].(map[string]any)
	require.InDelta(t, 31.5085, geo["latitude"], 1e-9)

	offers := m["offers"].(map[string]any)
	require.Equal(t, "Offer", offers["@type"])
	require.EqualValues(t, 0, offers["price"])
	require.Equal(t, "MAD", offers["priceCurrency"])

	require.Equal(t, "Association Yerma Gnaoua", m["organizer"].(map[string]any)["name"])
}

func TestEventSchemaPriceRange(t *testing.T) {
	m := decode(t, Event(sample(t, "mawazine-2026"), "en", ""))
	offers := m["offers"].(map[string]any)
	require.Equal(t, "AggregateOffer", offers["@type"])
	require.EqualValues(t, 0, offers["lowPrice"])
	require.EqualValues(t, 500, offers["highPrice"])
	require.NotContains(t, m, "url")
}

func TestEventSchemaWithoutCoordinates(t *testing.T) {
	e := events.Event{ID: "x", Title: events.Localized{"en": "X"}}
	m := decode(t, Event(e, "ar", ""))
	require.Equal(t, "X", m["name"], "falls back to English")
	require.NotContains(t, m["location"].(map[string]any), "geo")
	require.NotContains(t, m, "startDate")
}

func TestBreadcrumbPositions(t *testing.T) {
	m := decode(t, BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://x/en"}, {Name: "Events", Item: "https://x/en/events"}}))
	items := m["itemListElement"].([]any)
	require.Len(t, items, 2)
	require.EqualValues(t, 2, items[1].(map[string]any)["position"])
}

func TestArticleAndTermSet(t *testing.T) {
	art := decode(t, Article(stories.Story{Title: "Earth Walls", Excerpt: "Kasbahs", TextBy: "Amina", Tags: []string{"a", "b"}}, "https://x/story/earth", "Festivals Morocco"))
	require.Equal(t, "Earth Walls", art["headline"])
	require.Equal(t, "Amina", art["author"].(map[string]any)["name"])
	require.Equal(t, "a, b", art["keywords"])

	set := decode(t, DefinedTermSet("Glossary", "https://x/glossary", glossary.Default().AllTerms()))
	terms := set["hasDefinedTerm"].([]any)
	require.Len(t, terms, glossary.Default().Len())
	first := terms[0].(map[string]any)
	require.True(t, strings.HasPrefix(first["@id"].(string), "https://x/glossary#"))
}

func TestScriptEscapesClosingTags(t *testing.T) {
	out := string(Script(map[string]string{"name": "</script><b>"}))
	require.NotContains(t, out, "</script>")
}

func TestNewMeta(t *testing.T) {
	m := NewMeta("Title", strings.Repeat("word ", 60), "https://x/en", "", "ar").WithAlternates("https://x", "/events", []string{"en", "ar"})
	require.LessOrEqual(t, len([]rune(m.Description)), 161)
	require.True(t, strings.HasSuffix(m.Description, "…"))
	require.Equal(t, "summary", m.Twitter.Card)
	require.Equal(t, "ar_MA", m.OG.Locale)
	require.Equal(t, []Alternate{{Lang: "en", Href: "https://x/en/events"}, {Lang: "ar", Href: "https://x/ar/events"}}, m.Alternates)

	require.Equal(t, "short", Truncate("  short ", 10))
}

func TestSitemap(t *testing.T) {
	urls := SitemapPages("https://x", []string{"en", "fr"}, []string{"a", "b"}, time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC))
	require.Len(t, urls, 12)
	require.Equal(t, "https://x/en", urls[0].Loc)
	require.Equal(t, "https://x/fr/about", urls[7].Loc)
	require.Equal(t, "https://x/en/event/a", urls[8].Loc)
	require.Equal(t, "https://x/fr/event/a", urls[9].Loc)
	require.Equal(t, "https://x/fr/event/b", urls[11].Loc)
	require.Equal(t, "2026-03-01", urls[11].LastMod)

	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, urls))
	require.True(t, strings.HasPrefix(buf.String(), "<?xml"))

	var parsed urlSet
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, sitemapNS, parsed.XMLNS)
	require.Len(t, parsed.URLs, 12)
	require.Equal(t, "https://x/en/regions", parsed.URLs[2].Loc)
}

package seo

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/stories"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script renders v as a JSON-LD script body safe for html/template.
func Script(v any) template.JS {
	// json.Marshal escapes <, > and & so the payload cannot close the script tag.
	return template.JS(JSON(v))
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Event returns the schema.org Event payload for e in lang. url is the absolute page URL.
func Event(e events.Event, lang, url string) map[string]any {
	place := map[string]any{
		"@type": "Place",
		"name":  e.Venue,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"addressLocality": e.City,
			"addressRegion":   e.Region,
			"addressCountry":  "MA",
		},
	}
	if !e.Coordinates.IsZero() {
		place["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  e.Coordinates.Lat,
			"longitude": e.Coordinates.Lng,
		}
	}

	currency := e.Price.Currency
	if currency == "" {
		currency = events.CurrencyMAD
	}
	offers := map[string]any{
		"@type":         "Offer",
		"priceCurrency": currency,
		"availability":  "https://schema.org/InStock",
	}
	if e.Price.IsFree {
		offers["price"] = 0
	} else {
		offers["price"] = e.Price.Min
		if e.Price.Max > e.Price.Min {
			offers["@type"] = "AggregateOffer"
			offers["lowPrice"] = e.Price.Min
			offers["highPrice"] = e.Price.Max
			delete(offers, "price")
		}
	}
	if e.Website != "" {
		offers["url"] = e.Website
	}

	m := map[string]any{
		"@context":            schemaContext,
		"@type":               "Event",
		"name":                e.LocalizedTitle(lang),
		"description":         e.LocalizedDescription(lang),
		"eventStatus":         "https://schema.org/EventScheduled",
		"eventAttendanceMode": "https://schema.org/OfflineEventAttendanceMode",
		"inLanguage":          lang,
		"location":            place,
		"offers":              offers,
	}
	if !e.StartDate.IsZero() {
		m["startDate"] = e.StartDate.String()
	}
	if !e.EndDate.IsZero() {
		m["endDate"] = e.EndDate.String()
	}
	if url != "" {
		m["url"] = url
	}
	if e.Image != "" {
		m["image"] = []string{e.Image}
	}
	if e.Organizer != "" {
		organizer := map[string]any{"@type": "Organization", "name": e.Organizer}
		if e.Website != "" {
			organizer["url"] = e.Website
		}
		m["organizer"] = organizer
	}
	if len(e.Tags) > 0 {
		m["keywords"] = strings.Join(e.Tags, ", ")
	}
	return m
}

// Article returns the Article schema payload for a story.
func Article(s stories.Story, url, publisher string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Article",
		"headline": s.Title,
	}
	if url != "" {
		m["url"] = url
		m["mainEntityOfPage"] = url
	}
	if s.Excerpt != "" {
		m["description"] = s.Excerpt
	} else if s.Subtitle != "" {
		m["description"] = s.Subtitle
	}
	if s.HeroImage != "" {
		m["image"] = s.HeroImage
	}
	if s.TextBy != "" {
		m["author"] = map[string]any{"@type": "Person", "name": s.TextBy}
	}
	if s.Year != "" {
		m["datePublished"] = s.Year
	}
	if len(s.Tags) > 0 {
		m["keywords"] = strings.Join(s.Tags, ", ")
	}
	if publisher != "" {
		m["publisher"] = map[string]any{"@type": "Organization", "name": publisher}
	}
	return m
}

// DefinedTermSet describes the glossary. pageURL anchors each term.
func DefinedTermSet(name, pageURL string, terms []glossary.Term) map[string]any {
	list := make([]map[string]any, 0, len(terms))
	for _, t := range terms {
		term := map[string]any{
			"@type":            "DefinedTerm",
			"@id":              pageURL + "#" + t.ID,
			"name":             t.Term,
			"description":      t.Definition,
			"inDefinedTermSet": pageURL,
		}
		var alt []string
		for _, v := range []string{t.ArabicScript, t.Tifinagh} {
			if v != "" {
				alt = append(alt, v)
			}
		}
		if len(alt) > 0 {
			term["alternateName"] = alt
		}
		list = append(list, term)
	}
	return map[string]any{
		"@context":       schemaContext,
		"@type":          "DefinedTermSet",
		"@id":            pageURL,
		"name":           name,
		"hasDefinedTerm": list,
	}
}

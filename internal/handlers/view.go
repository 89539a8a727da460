package handlers

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/format"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/nav"
	"github.com/indigoandlavender/slow-morocco-6/internal/seo"
	"github.com/indigoandlavender/slow-morocco-6/internal/stories"
)

// PageData is the view model shared by every page through the base layout.
type PageData struct {
	Title    string
	Lang     string
	Dir      string
	SiteName string
	SEO      seo.Meta
	JSONLD   []template.JS

	Path        string
	Nav         []nav.RenderedItem
	Legal       []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Locales     []LocaleLink
	Copyright   string

	Content any
}

// LocaleLink points at the current page in another language.
type LocaleLink struct {
	Lang   string
	Href   string
	Active bool
}

// SelectOption is a select box entry.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// EventCard is the list view of an event.
type EventCard struct {
	ID       string
	Href     string
	Title    string
	City     string
	Region   string
	Category string
	Dates    string
	When     string
	Price    string
	IsFree   bool
	Image    string
}

type homeContent struct {
	Query      string
	StartDate  string
	EndDate    string
	Regions    []SelectOption
	Categories []SelectOption
	Count      string
	Events     []EventCard
	Invalid    bool
}

type eventsContent struct {
	Count  string
	Events []EventCard
}

type eventContent struct {
	Card          EventCard
	Description   template.HTML
	Venue         string
	Organizer     string
	Website       string
	DirectionsURL string
	Accessibility []string
	Tags          []string
	Geohash       string
	Similar       []EventCard
}

type regionSummary struct {
	ID    string
	Label string
	Count string
	Href  string
}

type regionsContent struct {
	Regions []regionSummary
}

type glossaryContent struct {
	Query      string
	Categories []glossary.Category
	Results    []glossary.Term
	Searching  bool
}

type storiesContent struct {
	Stories []stories.Story
}

type storyContent struct {
	Story    stories.Story
	Entities []string
	Related  []stories.Story
}

type legalContent struct {
	TitleKey string
}

func (h *PageHandlers) eventCard(e events.Event, lang string, now time.Time) EventCard {
	card := EventCard{
		ID:       e.ID,
		Href:     "/" + lang + "/event/" + url.PathEscape(e.ID),
		Title:    e.LocalizedTitle(lang),
		City:     e.City,
		Region:   h.bundle.Region(lang, e.Region),
		Category: h.bundle.Category(lang, e.Category),
		IsFree:   e.Price.IsFree,
		Image:    e.Image,
	}
	if !e.StartDate.IsZero() {
		card.Dates = format.FmtDateRange(e.StartDate.Time, e.EndDate.Time, lang)
		card.When = format.FmtRelativeDate(e.StartDate.Time, now, lang)
	}
	if e.Price.IsFree {
		card.Price = h.bundle.T(lang, "event.free")
	} else {
		card.Price = format.FmtPriceRange(e.Price.Min, e.Price.Max, e.Price.Currency)
	}
	return card
}

func (h *PageHandlers) eventCards(list []events.Event, lang string, now time.Time) []EventCard {
	out := make([]EventCard, 0, len(list))
	for _, e := range list {
		out = append(out, h.eventCard(e, lang, now))
	}
	return out
}

// similarEvents returns up to three other events of the same category, in list order.
func similarEvents(e events.Event, all []events.Event) []events.Event {
	var out []events.Event
	for _, other := range all {
		if len(out) == 3 {
			break
		}
		if other.ID != e.ID && other.Category == e.Category {
			out = append(out, other)
		}
	}
	return out
}

func directionsURL(c events.Coordinates) string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%g,%g", c.Lat, c.Lng)
}

func (h *PageHandlers) accessibilityLabels(a events.Accessibility, lang string) []string {
	var out []string
	if a.WheelchairAccess {
		out = append(out, h.bundle.T(lang, "event.wheelchair"))
	}
	if a.SignLanguage {
		out = append(out, h.bundle.T(lang, "event.signLanguage"))
	}
	if a.AudioDescription {
		out = append(out, h.bundle.T(lang, "event.audioDescription"))
	}
	return out
}

func (h *PageHandlers) regionOptions(lang, selected string) []SelectOption {
	out := make([]SelectOption, 0, len(events.Regions))
	for _, id := range events.Regions {
		out = append(out, SelectOption{Value: id, Label: h.bundle.Region(lang, id), Selected: id == selected})
	}
	return out
}

func (h *PageHandlers) categoryOptions(lang string, selected []string) []SelectOption {
	set := make(map[string]bool, len(selected))
	for _, c := range selected {
		set[c] = true
	}
	out := make([]SelectOption, 0, len(events.Categories))
	for _, id := range events.Categories {
		out = append(out, SelectOption{Value: id, Label: h.bundle.Category(lang, id), Selected: set[id]})
	}
	return out
}

// localeLinks swaps the locale segment of localized paths and uses ?hl= elsewhere.
func (h *PageHandlers) localeLinks(lang, p string, localized bool) []LocaleLink {
	out := make([]LocaleLink, 0, len(h.bundle.Ordered()))
	for _, l := range h.bundle.Ordered() {
		href := p + "?hl=" + l
		if localized {
			rest := strings.TrimPrefix(p, "/"+lang)
			href = "/" + l + rest
		}
		out = append(out, LocaleLink{Lang: l, Href: href, Active: l == lang})
	}
	return out
}

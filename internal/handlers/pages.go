package handlers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/i18n"
	"github.com/indigoandlavender/slow-morocco-6/internal/linker"
	mw "github.com/indigoandlavender/slow-morocco-6/internal/middleware"
	"github.com/indigoandlavender/slow-morocco-6/internal/nav"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/observability"
	"github.com/indigoandlavender/slow-morocco-6/internal/seo"
	"github.com/indigoandlavender/slow-morocco-6/internal/stories"
)

// StorySource is the read side of the stories service.
type StorySource interface {
	List(ctx context.Context) []stories.Story
	Get(ctx context.Context, slug string) (stories.Story, error)
	RelatedTo(ctx context.Context, story stories.Story) []stories.Story
}

// TextLinker links glossary terms in plain text.
type TextLinker interface {
	LinkText(text string) linker.Fragments
}

// Site carries branding and the absolute base URL.
type Site struct {
	Name    string
	BaseURL string
}

// PageHandlers renders the HTML pages.
type PageHandlers struct {
	site      Site
	bundle    *i18n.Bundle
	events    EventSource
	stories   StorySource
	glossary  *glossary.Glossary
	linker    TextLinker
	templates map[string]*template.Template
	now       func() time.Time
}

// PageOption configures PageHandlers.
type PageOption func(*PageHandlers)

// WithSite sets branding and the base URL used in canonical links.
func WithSite(site Site) PageOption {
	return func(h *PageHandlers) {
		if site.Name != "" {
			h.site.Name = site.Name
		}
		if site.BaseURL != "" {
			h.site.BaseURL = strings.TrimRight(site.BaseURL, "/")
		}
	}
}

// WithStories sets the stories source.
func WithStories(src StorySource) PageOption {
	return func(h *PageHandlers) { h.stories = src }
}

// WithGlossary overrides the glossary shown on /glossary.
func WithGlossary(g *glossary.Glossary) PageOption {
	return func(h *PageHandlers) {
		if g != nil {
			h.glossary = g
		}
	}
}

// WithTextLinker links glossary terms in event descriptions.
func WithTextLinker(l TextLinker) PageOption {
	return func(h *PageHandlers) { h.linker = l }
}

// WithClock overrides the clock used for relative dates.
func WithClock(now func() time.Time) PageOption {
	return func(h *PageHandlers) {
		if now != nil {
			h.now = now
		}
	}
}

// NewPageHandlers parses the embedded templates and builds the page handlers.
func NewPageHandlers(bundle *i18n.Bundle, src EventSource, opts ...PageOption) (*PageHandlers, error) {
	if bundle == nil {
		return nil, errors.New("handlers: i18n bundle is required")
	}
	if src == nil {
		return nil, errors.New("handlers: event source is required")
	}
	h := &PageHandlers{
		site:     Site{Name: "Festivals Morocco", BaseURL: "https://festivals-morocco.vercel.app"},
		bundle:   bundle,
		events:   src,
		glossary: glossary.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	templates, err := parseTemplates(templatesFS, bundle)
	if err != nil {
		return nil, err
	}
	h.templates = templates
	return h, nil
}

// Routes registers every page.
func (h *PageHandlers) Routes(r chi.Router) {
	r.Get("/robots.txt", h.robots)
	r.Get("/sitemap.xml", h.sitemap)
	r.With(mw.VaryLocale, mw.Negotiate(h.bundle)).Get("/", h.redirectHome)

	r.Group(func(r chi.Router) {
		r.Use(mw.VaryLocale, mw.Negotiate(h.bundle))
		r.Get("/glossary", h.glossaryPage)
		r.Get("/stories", h.storiesPage)
		r.Get("/story/{slug}", h.storyPage)
		for _, item := range nav.Legal {
			r.Get(item.Path, h.legalPage(item))
		}
	})

	r.Route("/{locale}", func(r chi.Router) {
		r.Use(mw.PathLocale(h.bundle, h.NotFound))
		r.Get("/", h.home)
		r.Get("/events", h.eventsPage)
		r.Get("/event/{id}", h.eventPage)
		r.Get("/regions", h.regionsPage)
		r.Get("/about", h.aboutPage)
	})
}

// NotFound renders the 404 page in the negotiated language.
func (h *PageHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Resolve(r.Header.Get("Accept-Language")))
	data := h.page(r, lang, h.bundle.T(lang, "page.notFound"), false)
	data.SEO.Canonical = ""
	h.render(w, r, http.StatusNotFound, "notfound", data)
}

func (h *PageHandlers) redirectHome(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	http.Redirect(w, r, "/"+lang, http.StatusFound)
}

// page fills the layout fields shared by every page.
func (h *PageHandlers) page(r *http.Request, lang, title string, localized bool) PageData {
	p := r.URL.Path
	if localized {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			p = "/" + lang
		}
	}
	fullTitle := h.site.Name
	if title != "" && title != h.site.Name {
		fullTitle = title + " | " + h.site.Name
	}
	meta := seo.NewMeta(fullTitle, h.bundle.T(lang, "site.tagline"), h.site.BaseURL+p, "", lang)
	if localized {
		meta = meta.WithAlternates(h.site.BaseURL, strings.TrimPrefix(p, "/"+lang), h.bundle.Ordered())
	}
	return PageData{
		Title:       fullTitle,
		Lang:        lang,
		Dir:         h.bundle.Dir(lang),
		SiteName:    h.site.Name,
		SEO:         meta,
		Path:        p,
		Nav:         nav.Build(lang, p),
		Legal:       nav.LegalLinks(lang, p),
		Breadcrumbs: nav.Breadcrumbs(lang, p),
		Locales:     h.localeLinks(lang, p, localized),
		Copyright:   h.bundle.T(lang, nav.CopyrightKey),
	}
}

func (h *PageHandlers) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r, h.bundle.Fallback())
	query := r.URL.Query()

	criteria, err := parseCriteria(query)
	invalid := err != nil
	if invalid {
		criteria.Start, criteria.End = time.Time{}, time.Time{}
	}
	list := h.events.Search(ctx, criteria)

	data := h.page(r, lang, h.bundle.T(lang, "home.title"), true)
	data.JSONLD = append(data.JSONLD, seo.Script(seo.WebSite(h.site.Name, h.site.BaseURL, h.site.BaseURL+"/"+lang+"?q=")))
	data.Content = homeContent{
		Query:      criteria.Query,
		StartDate:  query.Get("startDate"),
		EndDate:    query.Get("endDate"),
		Regions:    h.regionOptions(lang, criteria.Region),
		Categories: h.categoryOptions(lang, criteria.Categories),
		Count:      h.bundle.Tf(lang, "home.count", len(list)),
		Events:     h.eventCards(list, lang, h.now()),
		Invalid:    invalid,
	}
	h.render(w, r, http.StatusOK, "home", data)
}

func (h *PageHandlers) eventsPage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	list := h.events.List(r.Context())

	data := h.page(r, lang, h.bundle.T(lang, "events.title"), true)
	data.Content = eventsContent{
		Count:  h.bundle.Tf(lang, "home.count", len(list)),
		Events: h.eventCards(list, lang, h.now()),
	}
	h.render(w, r, http.StatusOK, "events", data)
}

func (h *PageHandlers) eventPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r, h.bundle.Fallback())
	id := chi.URLParam(r, "id")

	event, err := h.events.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, events.ErrNotFound) {
			observability.FromContext(ctx).Error("handlers: get event failed", zap.String("id", id), zap.Error(err))
		}
		h.NotFound(w, r)
		return
	}

	title := event.LocalizedTitle(lang)
	description := event.LocalizedDescription(lang)
	data := h.page(r, lang, title, true)
	data.SEO = seo.NewMeta(data.Title, description, data.SEO.Canonical, event.Image, lang).
		WithAlternates(h.site.BaseURL, "/event/"+id, h.bundle.Ordered())
	if n := len(data.Breadcrumbs); n > 0 {
		data.Breadcrumbs[n-1].Label = title
	}
	data.JSONLD = append(data.JSONLD,
		seo.Script(seo.Event(event, lang, data.SEO.Canonical)),
		seo.Script(seo.BreadcrumbList(h.breadcrumbItems(lang, data.Breadcrumbs))),
	)

	descHTML := template.HTML(template.HTMLEscapeString(description))
	if h.linker != nil {
		descHTML = h.linker.LinkText(description).HTML()
	}
	now := h.now()
	data.Content = eventContent{
		Card:          h.eventCard(event, lang, now),
		Description:   descHTML,
		Venue:         event.Venue,
		Organizer:     event.Organizer,
		Website:       event.Website,
		DirectionsURL: directionsURL(event.Coordinates),
		Accessibility: h.accessibilityLabels(event.Accessibility, lang),
		Tags:          event.Tags,
		Geohash:       event.Coordinates.Geohash(),
		Similar:       h.eventCards(similarEvents(event, h.events.List(ctx)), lang, now),
	}
	h.render(w, r, http.StatusOK, "event", data)
}

func (h *PageHandlers) regionsPage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	counts := map[string]int{}
	for _, e := range h.events.List(r.Context()) {
		counts[e.Region]++
	}
	regions := make([]regionSummary, 0, len(events.Regions))
	for _, id := range events.Regions {
		regions = append(regions, regionSummary{
			ID:    id,
			Label: h.bundle.Region(lang, id),
			Count: h.bundle.Tf(lang, "regions.count", counts[id]),
			Href:  "/" + lang + "?region=" + id,
		})
	}
	data := h.page(r, lang, h.bundle.T(lang, "regions.title"), true)
	data.Content = regionsContent{Regions: regions}
	h.render(w, r, http.StatusOK, "regions", data)
}

func (h *PageHandlers) aboutPage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	data := h.page(r, lang, h.bundle.T(lang, "about.title"), true)
	h.render(w, r, http.StatusOK, "about", data)
}

func (h *PageHandlers) glossaryPage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	content := glossaryContent{Query: q, Categories: h.glossary.Categories()}
	if q != "" {
		content.Searching = true
		content.Results = h.glossary.Search(q)
	}
	data := h.page(r, lang, h.bundle.T(lang, "glossary.title"), false)
	data.JSONLD = append(data.JSONLD, seo.Script(seo.DefinedTermSet(h.bundle.T(lang, "glossary.title"), h.site.BaseURL+"/glossary", h.glossary.AllTerms())))
	data.Content = content
	h.render(w, r, http.StatusOK, "glossary", data)
}

func (h *PageHandlers) storiesPage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r, h.bundle.Fallback())
	var list []stories.Story
	if h.stories != nil {
		list = h.stories.List(r.Context())
	}
	data := h.page(r, lang, h.bundle.T(lang, "stories.title"), false)
	data.Content = storiesContent{Stories: list}
	h.render(w, r, http.StatusOK, "stories", data)
}

func (h *PageHandlers) storyPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := mw.Lang(r, h.bundle.Fallback())
	if h.stories == nil {
		h.NotFound(w, r)
		return
	}
	story, err := h.stories.Get(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := h.page(r, lang, story.Title, false)
	data.SEO = seo.NewMeta(data.Title, firstNonEmpty(story.Excerpt, story.Subtitle, h.bundle.T(lang, "site.tagline")), data.SEO.Canonical, story.HeroImage, lang)
	if n := len(data.Breadcrumbs); n > 0 {
		data.Breadcrumbs[n-1].Label = story.Title
	}
	data.JSONLD = append(data.JSONLD,
		seo.Script(seo.Article(story, data.SEO.Canonical, h.site.Name)),
		seo.Script(seo.BreadcrumbList(h.breadcrumbItems(lang, data.Breadcrumbs))),
	)
	data.Content = storyContent{
		Story:    story,
		Entities: story.CulturalEntities(),
		Related:  h.stories.RelatedTo(ctx, story),
	}
	h.render(w, r, http.StatusOK, "story", data)
}

func (h *PageHandlers) legalPage(item nav.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := mw.Lang(r, h.bundle.Fallback())
		data := h.page(r, lang, h.bundle.T(lang, item.LabelKey), false)
		data.Content = legalContent{TitleKey: item.LabelKey}
		h.render(w, r, http.StatusOK, "legal", data)
	}
}

func (h *PageHandlers) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.site.BaseURL)
}

func (h *PageHandlers) sitemap(w http.ResponseWriter, r *http.Request) {
	list := h.events.List(r.Context())
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := seo.WriteSitemap(w, seo.SitemapPages(h.site.BaseURL, h.bundle.Ordered(), ids, h.now())); err != nil {
		observability.FromContext(r.Context()).Error("handlers: write sitemap failed", zap.Error(err))
	}
}

func (h *PageHandlers) breadcrumbItems(lang string, crumbs []nav.Crumb) []seo.BreadcrumbItem {
	out := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = h.bundle.T(lang, c.LabelKey)
		}
		out = append(out, seo.BreadcrumbItem{Name: name, Item: h.site.BaseURL + c.Href})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

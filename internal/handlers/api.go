package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/httpx"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/observability"
)

// EventSource is the read side of the events service.
type EventSource interface {
	List(ctx context.Context) []events.Event
	Get(ctx context.Context, id string) (events.Event, error)
	Search(ctx context.Context, c events.Criteria) []events.Event
}

// APIHandlers serves the JSON endpoints.
type APIHandlers struct {
	events   EventSource
	glossary *glossary.Glossary
}

// NewAPIHandlers builds the JSON handlers. A nil glossary serves the built-in one.
func NewAPIHandlers(src EventSource, g *glossary.Glossary) *APIHandlers {
	if g == nil {
		g = glossary.Default()
	}
	return &APIHandlers{events: src, glossary: g}
}

// Routes registers the API endpoints.
func (h *APIHandlers) Routes(r chi.Router) {
	r.Get("/api/events", h.listEvents)
	r.Get("/api/glossary", h.glossaryJSON)
	r.Get("/glossary.json", h.glossaryJSON)
}

type eventsResponse struct {
	Count  int            `json:"count"`
	Events []events.Event `json:"events"`
}

type eventResponse struct {
	Event events.Event `json:"event"`
}

func (h *APIHandlers) listEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if id := strings.TrimSpace(query.Get("id")); id != "" {
		event, err := h.events.Get(ctx, id)
		if errors.Is(err, events.ErrNotFound) {
			httpx.WriteError(ctx, w, httpx.NotFound("event_not_found", "Event not found").WithDetails(map[string]any{"id": id}))
			return
		}
		if err != nil {
			observability.FromContext(ctx).Error("api: get event failed", zap.String("id", id), zap.Error(err))
			httpx.WriteError(ctx, w, httpx.Internal("could not load event"))
			return
		}
		httpx.WriteJSON(w, http.StatusOK, eventResponse{Event: event})
		return
	}

	criteria, err := parseCriteria(query)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.BadRequest("invalid_date", err.Error()))
		return
	}
	list := h.events.Search(ctx, criteria)
	httpx.WriteJSON(w, http.StatusOK, eventsResponse{Count: len(list), Events: list})
}

type glossaryResponse struct {
	Categories []glossary.Category `json:"categories"`
}

type termsResponse struct {
	Count int             `json:"count"`
	Terms []glossary.Term `json:"terms"`
}

func (h *APIHandlers) glossaryJSON(w http.ResponseWriter, r *http.Request) {
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		terms := h.glossary.Search(q)
		if terms == nil {
			terms = []glossary.Term{}
		}
		httpx.WriteJSON(w, http.StatusOK, termsResponse{Count: len(terms), Terms: terms})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, glossaryResponse{Categories: h.glossary.Categories()})
}

// parseCriteria reads q, region, categories, startDate and endDate. Dates must be
// YYYY-MM-DD, RFC3339 or DD/MM/YYYY; on a bad date the other fields are still filled.
func parseCriteria(values url.Values) (events.Criteria, error) {
	c := events.Criteria{
		Query:  strings.TrimSpace(values.Get("q")),
		Region: strings.TrimSpace(values.Get("region")),
	}
	for _, raw := range values["categories"] {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				c.Categories = append(c.Categories, cat)
			}
		}
	}
	var err error
	if c.Start, err = parseBound(values, "startDate"); err != nil {
		return c, err
	}
	if c.End, err = parseBound(values, "endDate"); err != nil {
		return c, err
	}
	return c, nil
}

func parseBound(values url.Values, name string) (time.Time, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	d, ok := events.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%s %q is not a date", name, raw)
	}
	return d.Time, nil
}

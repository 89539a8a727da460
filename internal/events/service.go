package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTab      = "Festivals"
	defaultCacheTTL = 5 * time.Minute
)

// ErrNotFound is returned by Get when no event has the requested id.
var ErrNotFound = errors.New("events: not found")

// RowSource yields header-keyed spreadsheet rows for a tab.
type RowSource interface {
	Rows(ctx context.Context, tab string) ([]map[string]string, error)
}

// SnapshotStore keeps the last list fetched successfully.
type SnapshotStore interface {
	SaveEvents(ctx context.Context, events []Event) error
	LoadEvents(ctx context.Context) ([]Event, error)
}

// Origin says where a list came from.
type Origin string

const (
	OriginSource   Origin = "source"
	OriginSnapshot Origin = "snapshot"
	OriginSample   Origin = "sample"
)

// Service serves events from a RowSource with caching and fallbacks. Safe for concurrent use.
type Service struct {
	source    RowSource
	tab       string
	snapshots SnapshotStore
	logger    *zap.Logger
	ttl       time.Duration
	now       func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	cached  []Event
	origin  Origin
	expires time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRowSource sets the spreadsheet source. Without one the Service serves fallbacks only.
func WithRowSource(src RowSource) Option {
	return func(s *Service) { s.source = src }
}

// WithTab overrides the tab name.
func WithTab(tab string) Option {
	return func(s *Service) {
		if tab != "" {
			s.tab = tab
		}
	}
}

// WithSnapshotStore enables the last-known-good snapshot.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(s *Service) { s.snapshots = store }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheTTL sets how long a fetched list is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// NewService builds a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		tab:    defaultTab,
		logger: zap.NewNop(),
		ttl:    defaultCacheTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every published event. It never fails: upstream problems are logged and
// masked by the snapshot or the built-in sample.
func (s *Service) List(ctx context.Context) []Event {
	list, _ := s.ListWithOrigin(ctx)
	return list
}

// ListWithOrigin is List plus the origin of the data.
func (s *Service) ListWithOrigin(ctx context.Context) ([]Event, Origin) {
	if list, origin, ok := s.fromCache(); ok {
		return cloneEvents(list), origin
	}

	v, _, _ := s.group.Do("events", func() (interface{}, error) {
		if list, origin, ok := s.fromCache(); ok {
			return cachedList{list, origin}, nil
		}
		list, origin := s.load(ctx)
		s.store(list, origin)
		return cachedList{list, origin}, nil
	})
	res := v.(cachedList)
	return cloneEvents(res.events), res.origin
}

type cachedList struct {
	events []Event
	origin Origin
}

// Get returns the event with id.
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	for _, e := range s.List(ctx) {
		if e.ID == id {
			return e, nil
		}
	}
	return Event{}, ErrNotFound
}

// Search filters List by c.
func (s *Service) Search(ctx context.Context, c Criteria) []Event {
	return Filter(s.List(ctx), c)
}

// Invalidate drops the cached list.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.expires = time.Time{}
	s.mu.Unlock()
}

func (s *Service) load(ctx context.Context) ([]Event, Origin) {
	if s.source == nil {
		return s.fallback(ctx)
	}

	rows, err := s.source.Rows(ctx, s.tab)
	switch {
	case err != nil:
		s.logger.Error("events: source fetch failed, using fallback", zap.String("tab", s.tab), zap.Error(err))
		return s.fallback(ctx)
	case len(rows) == 0:
		s.logger.Warn("events: source returned no rows, using fallback", zap.String("tab", s.tab))
		return s.fallback(ctx)
	}

	list := ParseRows(rows)
	if len(list) == 0 {
		s.logger.Warn("events: source has no published rows, keeping snapshot", zap.String("tab", s.tab), zap.Int("rows", len(rows)))
	} else if s.snapshots != nil {
		if err := s.snapshots.SaveEvents(ctx, list); err != nil {
			s.logger.Warn("events: snapshot save failed", zap.Error(err))
		}
	}
	s.logger.Debug("events: loaded from source", zap.Int("rows", len(rows)), zap.Int("published", len(list)))
	return list, OriginSource
}

func (s *Service) fallback(ctx context.Context) ([]Event, Origin) {
	if s.snapshots != nil {
		list, err := s.snapshots.LoadEvents(ctx)
		if err != nil {
			s.logger.Warn("events: snapshot load failed", zap.Error(err))
		} else if len(list) > 0 {
			return list, OriginSnapshot
		}
	}
	return SampleEvents(), OriginSample
}

func (s *Service) fromCache() ([]Event, Origin, bool) {
	if s.ttl == 0 {
		return nil, "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || !s.now().Before(s.expires) {
		return nil, "", false
	}
	return s.cached, s.origin, true
}

func (s *Service) store(list []Event, origin Origin) {
	if s.ttl == 0 {
		return
	}
	s.mu.Lock()
	s.cached = list
	s.origin = origin
	s.expires = s.now().Add(s.ttl)
	s.mu.Unlock()
}

package stories

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultStoriesTab = "Stories"
	defaultImagesTab  = "Story_Images"
	defaultCacheTTL   = 5 * time.Minute
)

// ErrNotFound is returned by Get for unknown slugs.
var ErrNotFound = errors.New("stories: not found")

// RowSource yields header-keyed spreadsheet rows for a tab.
type RowSource interface {
	Rows(ctx context.Context, tab string) ([]map[string]string, error)
}

// Service loads stories from the sheet, falling back to the built-in set. Safe for
// concurrent use.
type Service struct {
	source     RowSource
	storiesTab string
	imagesTab  string
	renderer   *Renderer
	builtin    func() ([]Story, error)
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	cached  []Story
	expires time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRowSource sets the sheet source.
func WithRowSource(src RowSource) Option {
	return func(s *Service) { s.source = src }
}

// WithTabs overrides the Stories and Story_Images tab names.
func WithTabs(stories, images string) Option {
	return func(s *Service) {
		if stories != "" {
			s.storiesTab = stories
		}
		if images != "" {
			s.imagesTab = images
		}
	}
}

// WithRenderer sets the body renderer.
func WithRenderer(r *Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheTTL sets how long loaded stories are reused. Zero disables caching.
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
		storiesTab: defaultStoriesTab,
		imagesTab:  defaultImagesTab,
		renderer:   NewRenderer(nil),
		builtin:    BuiltinStories,
		logger:     zap.NewNop(),
		ttl:        defaultCacheTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every visible story with rendered bodies.
func (s *Service) List(ctx context.Context) []Story {
	if list, ok := s.fromCache(); ok {
		return cloneStories(list)
	}
	v, _, _ := s.group.Do("stories", func() (interface{}, error) {
		if list, ok := s.fromCache(); ok {
			return list, nil
		}
		list := s.load(ctx)
		s.store(list)
		return list, nil
	})
	return cloneStories(v.([]Story))
}

// Get returns the story with slug.
func (s *Service) Get(ctx context.Context, slug string) (Story, error) {
	for _, story := range s.List(ctx) {
		if story.Slug == slug {
			return story, nil
		}
	}
	return Story{}, ErrNotFound
}

// RelatedTo returns stories related to story.
func (s *Service) RelatedTo(ctx context.Context, story Story) []Story {
	return Related(story, s.List(ctx))
}

func (s *Service) load(ctx context.Context) []Story {
	list := s.fromSource(ctx)
	if len(list) == 0 {
		builtin, err := s.builtin()
		if err != nil {
			s.logger.Error("stories: built-in stories unavailable", zap.Error(err))
		}
		list = builtin
	}
	for i := range list {
		list[i].BodyHTML = s.renderer.Render(list[i].Body)
	}
	return list
}

func (s *Service) fromSource(ctx context.Context) []Story {
	if s.source == nil {
		return nil
	}
	rows, err := s.source.Rows(ctx, s.storiesTab)
	if err != nil {
		s.logger.Error("stories: source fetch failed, using built-in stories", zap.String("tab", s.storiesTab), zap.Error(err))
		return nil
	}

	images := map[string][]Image{}
	if imageRows, err := s.source.Rows(ctx, s.imagesTab); err != nil {
		s.logger.Warn("stories: image fetch failed", zap.String("tab", s.imagesTab), zap.Error(err))
	} else {
		images = groupImages(imageRows)
	}

	list := make([]Story, 0, len(rows))
	for _, row := range rows {
		if !isVisible(row) {
			continue
		}
		story := ParseRow(row)
		if story.Slug == "" {
			continue
		}
		if imgs := images[story.Slug]; len(imgs) > 0 {
			story.Images = imgs
		}
		list = append(list, story)
	}
	if len(list) == 0 {
		s.logger.Warn("stories: source returned no stories, using built-in stories", zap.String("tab", s.storiesTab))
	}
	return list
}

func (s *Service) fromCache() ([]Story, bool) {
	if s.ttl == 0 {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || !s.now().Before(s.expires) {
		return nil, false
	}
	return s.cached, true
}

func (s *Service) store(list []Story) {
	if s.ttl == 0 {
		return
	}
	s.mu.Lock()
	s.cached = list
	s.expires = s.now().Add(s.ttl)
	s.mu.Unlock()
}

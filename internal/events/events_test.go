package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sheetRow(overrides map[string]string) map[string]string {
	row := map[string]string{
		"id":               "tanjazz-2026",
		"status":           "published",
		"title_en":         "Tanjazz",
		"title_fr":         "",
		"description_en":   "Jazz by the strait.",
		"category":         "music",
		"region":           "tanger-tetouan-al-hoceima",
		"city":             "Tangier",
		"venue":            "Palais des Institutions Italiennes",
		"startDate":        "2026-09-17",
		"endDate":          "2026-09-20",
		"price_min":        "150",
		"price_max":        "400 MAD",
		"price_currency":   "eur",
		"price_isFree":     "FALSE",
		"tags":             "jazz; tangier, ,music",
		"lat":              "35.7767abc",
		"lng":              "-5.7998",
		"organizer":        "Tanjazz Association",
		"website":          "",
		"wheelchairAccess": "TRUE",
		"signLanguage":     "true",
		"audioDescription": "yes",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func TestParseRow(t *testing.T) {
	e := ParseRow(sheetRow(nil))

	require.Equal(t, "tanjazz-2026", e.ID)
	require.Equal(t, "Tanjazz", e.LocalizedTitle("fr"), "empty locale falls back to English")
	require.Equal(t, NewDate(2026, 9, 17), e.StartDate)
	require.Equal(t, Price{Min: 150, Max: 400, Currency: CurrencyEUR}, e.Price)
	require.Equal(t, []string{"jazz", "tangier", "music"}, e.Tags)
	require.InDelta(t, 35.7767, e.Coordinates.Lat, 1e-9)
	require.InDelta(t, -5.7998, e.Coordinates.Lng, 1e-9)
	require.Empty(t, e.Website)
	require.Equal(t, Accessibility{WheelchairAccess: true, SignLanguage: true}, e.Accessibility)
}

func TestParseRowDefaults(t *testing.T) {
	e := ParseRow(map[string]string{
		"price_min":      "n/a",
		"price_currency": "GBP",
		"startDate":      "soon",
		"endDate":        "28/06/2026",
		"lat":            "",
	})
	require.Zero(t, e.Price.Min)
	require.Equal(t, CurrencyMAD, e.Price.Currency)
	require.True(t, e.StartDate.IsZero())
	require.Equal(t, NewDate(2026, 6, 28), e.EndDate)
	require.Zero(t, e.Coordinates.Lat)
	require.Empty(t, e.Tags)
	require.NotNil(t, e.Tags)
}

func TestParseRowsKeepsPublishedOnly(t *testing.T) {
	rows := []map[string]string{
		sheetRow(map[string]string{"id": "a"}),
		sheetRow(map[string]string{"id": "b", "status": "draft"}),
		sheetRow(map[string]string{"id": "c", "status": "Published"}),
		sheetRow(map[string]string{"id": "d"}),
	}
	got := ParseRows(rows)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "d", got[1].ID)
}

func TestFilter(t *testing.T) {
	all := SampleEvents()

	got := Filter(all, Criteria{Query: "GNAOUA"})
	require.Len(t, got, 1)
	require.Equal(t, "gnaoua-2026", got[0].ID)

	got = Filter(all, Criteria{Region: "marrakech-safi", Categories: []string{"music"}})
	require.Len(t, got, 1)
	require.Equal(t, "gnaoua-2026", got[0].ID)

	got = Filter(all, Criteria{Query: "arabic"})
	require.Len(t, got, 1, "tags are searched")
	require.Equal(t, "mawazine-2026", got[0].ID)

	got = Filter(all, Criteria{Query: "rabat", Region: "marrakech-safi"})
	require.NotNil(t, got)
	require.Empty(t, got)

	got = Filter(all, Criteria{Categories: []string{"film", "art"}})
	require.Empty(t, got)

	got = Filter(all, Criteria{})
	require.Len(t, got, 2)
	require.Equal(t, "gnaoua-2026", got[0].ID, "input order is kept")
}

func TestFilterDateBounds(t *testing.T) {
	all := SampleEvents()
	undated := Event{ID: "undated", Tags: []string{}}
	all = append(all, undated)

	got := Filter(all, Criteria{Start: time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)})
	require.Len(t, got, 1)
	require.Equal(t, "gnaoua-2026", got[0].ID)

	got = Filter(all, Criteria{End: time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)})
	require.Len(t, got, 2, "end bound is inclusive and undated events are excluded")

	got = Filter(all, Criteria{Start: time.Date(2026, 6, 25, 0, 0, 0, 0, time.UTC)})
	require.Len(t, got, 1, "start bound is inclusive")

	got = Filter(all, Criteria{Query: ""})
	require.Len(t, got, 3)
}

func TestDateJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Date `json:"a"`
		B Date `json:"b"`
	}{A: NewDate(2026, 6, 25)})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"2026-06-25","b":""}`, string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-06-20T10:00:00Z"`), &d))
	require.Equal(t, 20, d.Day())
}

func TestCoordinatesGeohash(t *testing.T) {
	essaouira := Coordinates{Lat: 31.5085, Lng: -9.7595}
	hash := essaouira.Geohash()
	require.NotEmpty(t, hash)
	require.Equal(t, hash[:4], essaouira.Cluster(4))
	require.Equal(t, hash, essaouira.Cluster(0))
	require.Empty(t, Coordinates{}.Geohash())

	nearby := Coordinates{Lat: 31.5090, Lng: -9.7600}
	require.Equal(t, essaouira.Cluster(4), nearby.Cluster(4))
}

type fakeSource struct {
	mu    sync.Mutex
	rows  []map[string]string
	err   error
	calls int32
	delay time.Duration
}

func (f *fakeSource) Rows(ctx context.Context, tab string) ([]map[string]string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, f.err
}

type memorySnapshots struct {
	saved   []Event
	loadErr error
}

func (m *memorySnapshots) SaveEvents(_ context.Context, events []Event) error {
	m.saved = cloneEvents(events)
	return nil
}

func (m *memorySnapshots) LoadEvents(context.Context) ([]Event, error) {
	return cloneEvents(m.saved), m.loadErr
}

func TestServiceFallsBackToSampleOnError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(
		WithRowSource(&fakeSource{err: errors.New("403 forbidden")}),
		WithLogger(zap.New(core)),
	)

	list, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSample, origin)
	require.Len(t, list, 2)
	require.Equal(t, "gnaoua-2026", list[0].ID)
	require.Equal(t, "mawazine-2026", list[1].ID)
	require.Equal(t, 1, logs.FilterMessage("events: source fetch failed, using fallback").Len())
}

func TestServiceFallsBackToSampleOnZeroRows(t *testing.T) {
	svc := NewService(WithRowSource(&fakeSource{rows: []map[string]string{}}))
	_, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSample, origin)

	svc = NewService()
	list, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSample, origin)
	require.Len(t, list, 2)
}

func TestServicePrefersSnapshotOverSample(t *testing.T) {
	src := &fakeSource{rows: []map[string]string{sheetRow(nil), sheetRow(map[string]string{"id": "hidden", "status": "draft"})}}
	snaps := &memorySnapshots{}
	svc := NewService(WithRowSource(src), WithSnapshotStore(snaps), WithCacheTTL(0))

	list, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSource, origin)
	require.Len(t, list, 1)
	require.Len(t, snaps.saved, 1)

	src.mu.Lock()
	src.err = errors.New("unavailable")
	src.mu.Unlock()

	list, origin = svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSnapshot, origin)
	require.Len(t, list, 1)
	require.Equal(t, "tanjazz-2026", list[0].ID)

	snaps.loadErr = errors.New("disk gone")
	_, origin = svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSample, origin)
}

func TestServiceKeepsSnapshotWhenNothingPublished(t *testing.T) {
	src := &fakeSource{rows: []map[string]string{sheetRow(nil)}}
	snaps := &memorySnapshots{}
	svc := NewService(WithRowSource(src), WithSnapshotStore(snaps), WithCacheTTL(0))

	_, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSource, origin)
	require.Len(t, snaps.saved, 1)

	src.mu.Lock()
	src.rows = []map[string]string{sheetRow(map[string]string{"status": "draft"})}
	src.mu.Unlock()

	list, origin := svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSource, origin)
	require.Empty(t, list)
	require.Len(t, snaps.saved, 1, "draft-only sheet must not replace the snapshot")

	src.mu.Lock()
	src.err = errors.New("unavailable")
	src.mu.Unlock()

	list, origin = svc.ListWithOrigin(context.Background())
	require.Equal(t, OriginSnapshot, origin)
	require.Len(t, list, 1)
	require.Equal(t, "tanjazz-2026", list[0].ID)
}

func TestServiceCachesAndDeduplicates(t *testing.T) {
	src := &fakeSource{rows: []map[string]string{sheetRow(nil)}, delay: 20 * time.Millisecond}
	svc := NewService(WithRowSource(src), WithCacheTTL(time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := len(svc.List(context.Background())); n != 1 {
				t.Errorf("expected 1 event, got %d", n)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, atomic.LoadInt32(&src.calls))

	now := time.Now()
	svc.now = func() time.Time { return now.Add(2 * time.Minute) }
	svc.List(context.Background())
	require.EqualValues(t, 2, atomic.LoadInt32(&src.calls), "expired cache refetches")

	svc.Invalidate()
	svc.List(context.Background())
	require.EqualValues(t, 3, atomic.LoadInt32(&src.calls))
}

func TestServiceReturnsCopies(t *testing.T) {
	svc := NewService()
	list := svc.List(context.Background())
	list[0].Title["en"] = "changed"
	list[0].Tags[0] = "changed"

	again := svc.List(context.Background())
	require.Equal(t, "Gnaoua World Music Festival", again[0].Title["en"])
	require.Equal(t, "gnaoua", again[0].Tags[0])
	require.Equal(t, "gnaoua", SampleEvents()[0].Tags[0])
}

func TestServiceGetAndSearch(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	e, err := svc.Get(ctx, "mawazine-2026")
	require.NoError(t, err)
	require.Equal(t, "Rabat", e.City)

	_, err = svc.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	got := svc.Search(ctx, Criteria{Query: "essaouira"})
	require.Len(t, got, 1)
}

// Package events holds the festival model, the spreadsheet row transform, the search filter
// and the Service that serves events with cache and fallback data.
package events

import (
	"encoding/json"
	"strings"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// Locales supported by localized event text.
var Locales = []string{"en", "fr", "es", "ar"}

// DefaultLocale is used when a localized value is missing.
const DefaultLocale = "en"

// Category identifiers.
var Categories = []string{
	"music", "art", "film", "dance", "theatre",
	"heritage", "food", "literature", "craft", "spiritual",
}

// Regions lists the twelve administrative regions of Morocco.
var Regions = []string{
	"marrakech-safi",
	"casablanca-settat",
	"fes-meknes",
	"tanger-tetouan-al-hoceima",
	"rabat-sale-kenitra",
	"souss-massa",
	"draa-tafilalet",
	"beni-mellal-khenifra",
	"oriental",
	"guelmim-oued-noun",
	"laayoune-sakia-el-hamra",
	"dakhla-oued-ed-dahab",
}

// Currency codes.
const (
	CurrencyMAD = "MAD"
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// Event is a festival or cultural event.
type Event struct {
	ID            string        `json:"id"`
	Title         Localized     `json:"title"`
	Description   Localized     `json:"description"`
	Category      string        `json:"category"`
	Region        string        `json:"region"`
	City          string        `json:"city"`
	Venue         string        `json:"venue"`
	StartDate     Date          `json:"startDate"`
	EndDate       Date          `json:"endDate"`
	Price         Price         `json:"price"`
	Image         string        `json:"image"`
	Tags          []string      `json:"tags"`
	Coordinates   Coordinates   `json:"coordinates"`
	Organizer     string        `json:"organizer"`
	Website       string        `json:"website,omitempty"`
	Accessibility Accessibility `json:"accessibility"`
}

// Price describes admission.
type Price struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
	IsFree   bool   `json:"isFree"`
}

// Coordinates locate the venue.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Accessibility flags.
type Accessibility struct {
	WheelchairAccess bool `json:"wheelchairAccess"`
	SignLanguage     bool `json:"signLanguage"`
	AudioDescription bool `json:"audioDescription"`
}

// Localized maps a locale to text.
type Localized map[string]string

// Get returns the text for lang, falling back to English.
func (l Localized) Get(lang string) string {
	if v := strings.TrimSpace(l[lang]); v != "" {
		return l[lang]
	}
	return l[DefaultLocale]
}

// IsZero reports whether the coordinates were never set.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Geohash encodes the coordinates for map clustering. Unset coordinates yield "".
func (c Coordinates) Geohash() string {
	if c.IsZero() {
		return ""
	}
	return geohash.Encode(c.Lat, c.Lng)
}

// Cluster returns the geohash truncated to precision characters; nearby venues share it.
func (c Coordinates) Cluster(precision int) string {
	hash := c.Geohash()
	if precision <= 0 || precision >= len(hash) {
		return hash
	}
	return hash[:precision]
}

// LocalizedTitle returns the title for lang.
func (e Event) LocalizedTitle(lang string) string { return e.Title.Get(lang) }

// LocalizedDescription returns the description for lang.
func (e Event) LocalizedDescription(lang string) string { return e.Description.Get(lang) }

func (e Event) clone() Event {
	out := e
	out.Title = cloneLocalized(e.Title)
	out.Description = cloneLocalized(e.Description)
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	return out
}

func cloneLocalized(src Localized) Localized {
	if src == nil {
		return nil
	}
	out := make(Localized, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneEvents(src []Event) []Event {
	out := make([]Event, len(src))
	for i, e := range src {
		out[i] = e.clone()
	}
	return out
}

// Date is a calendar day. The zero value means the source date did not parse.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

var dateLayouts = []string{dateLayout, time.RFC3339, "02/01/2006"}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD, RFC3339 and DD/MM/YYYY. Failures return the zero Date.
func ParseDate(value string) (Date, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{t}, true
		}
	}
	return Date{}, false
}

// String renders YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes the day as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any layout ParseDate does; empty strings give the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, _ := ParseDate(raw)
	*d = parsed
	return nil
}

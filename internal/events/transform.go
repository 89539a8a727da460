package events

import (
	"regexp"
	"strconv"
	"strings"
)

// StatusPublished marks rows that may be shown.
const StatusPublished = "published"

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParseRow converts one spreadsheet row into an Event. It never fails: unparseable numbers
// become 0, unknown currencies become MAD and unparseable dates stay zero.
func ParseRow(row map[string]string) Event {
	start, _ := ParseDate(row["startDate"])
	end, _ := ParseDate(row["endDate"])

	return Event{
		ID: strings.TrimSpace(row["id"]),
		Title: Localized{
			"en": row["title_en"],
			"fr": row["title_fr"],
			"es": row["title_es"],
			"ar": row["title_ar"],
		},
		Description: Localized{
			"en": row["description_en"],
			"fr": row["description_fr"],
			"es": row["description_es"],
			"ar": row["description_ar"],
		},
		Category:  strings.TrimSpace(row["category"]),
		Region:    strings.TrimSpace(row["region"]),
		City:      row["city"],
		Venue:     row["venue"],
		StartDate: start,
		EndDate:   end,
		Price: Price{
			Min:      parseInt(row["price_min"]),
			Max:      parseInt(row["price_max"]),
			Currency: parseCurrency(row["price_currency"]),
			IsFree:   parseBool(row["price_isFree"]),
		},
		Image: row["image"],
		Tags:  splitList(row["tags"]),
		Coordinates: Coordinates{
			Lat: parseFloat(row["lat"]),
			Lng: parseFloat(row["lng"]),
		},
		Organizer: row["organizer"],
		Website:   strings.TrimSpace(row["website"]),
		Accessibility: Accessibility{
			WheelchairAccess: parseBool(row["wheelchairAccess"]),
			SignLanguage:     parseBool(row["signLanguage"]),
			AudioDescription: parseBool(row["audioDescription"]),
		},
	}
}

// ParseRows keeps published rows and transforms them in order.
func ParseRows(rows []map[string]string) []Event {
	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		if row["status"] != StatusPublished {
			continue
		}
		out = append(out, ParseRow(row))
	}
	return out
}

func parseBool(v string) bool {
	return v == "TRUE" || v == "true"
}

func parseInt(v string) int {
	m := leadingInt.FindString(strings.TrimSpace(v))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(v string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(v))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseCurrency(v string) string {
	switch c := strings.ToUpper(strings.TrimSpace(v)); c {
	case CurrencyEUR, CurrencyUSD, CurrencyMAD:
		return c
	default:
		return CurrencyMAD
	}
}

// splitList splits on commas and semicolons, trims items and drops empty ones.
func splitList(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package format renders dates and prices for event pages.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var months = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"fr": {"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

var weekdays = map[string][7]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"fr": {"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	"es": {"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	"ar": {"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
}

// weekStart is the first day of the calendar week per locale.
var weekStart = map[string]time.Weekday{
	"en": time.Sunday,
	"fr": time.Monday,
	"es": time.Monday,
	"ar": time.Saturday,
}

var relative = map[string][2]string{
	"en": {"Today", "Tomorrow"},
	"fr": {"Aujourd'hui", "Demain"},
	"es": {"Hoy", "Manana"},
	"ar": {"اليوم", "غدا"},
}

var currencySymbols = map[string]string{
	"MAD": "DH",
	"EUR": "€",
	"USD": "$",
}

var numbers = message.NewPrinter(language.English)

func normLang(lang string) string {
	lang = strings.ToLower(lang)
	if _, ok := months[lang]; ok {
		return lang
	}
	return "en"
}

func dayMonth(t time.Time, lang string) string {
	return t.Format("02") + " " + months[lang][t.Month()-1]
}

// FmtDate formats t as "dd MMM yyyy".
// Example: FmtDate(2026-06-25, "fr") => "25 juin 2026"
func FmtDate(t time.Time, lang string) string {
	lang = normLang(lang)
	return dayMonth(t, lang) + " " + t.Format("2006")
}

// FmtDateRange formats a start/end pair, collapsing equal days to one date.
func FmtDateRange(start, end time.Time, lang string) string {
	lang = normLang(lang)
	if end.IsZero() || sameDay(start, end) {
		return FmtDate(start, lang)
	}
	return dayMonth(start, lang) + " - " + FmtDate(end, lang)
}

// FmtRelativeDate returns Today or Tomorrow, the weekday for later days of the
// current week and the plain date otherwise.
func FmtRelativeDate(t, now time.Time, lang string) string {
	lang = normLang(lang)
	day := truncateDay(t)
	today := truncateDay(now.In(t.Location()))
	switch {
	case day.Equal(today):
		return relative[lang][0]
	case day.Equal(today.AddDate(0, 0, 1)):
		return relative[lang][1]
	}
	if startOfWeek(day, lang).Equal(startOfWeek(today, lang)) {
		return weekdays[lang][t.Weekday()]
	}
	return FmtDate(t, lang)
}

// FmtPrice formats an amount with digit grouping and the currency symbol.
// Example: FmtPrice(1500, "MAD") => "1,500 DH"
func FmtPrice(amount int, currency string) string {
	return numbers.Sprintf("%d", amount) + " " + symbol(currency)
}

// FmtPriceRange formats min and max, collapsing equal bounds.
func FmtPriceRange(min, max int, currency string) string {
	if min == max {
		return FmtPrice(min, currency)
	}
	return numbers.Sprintf("%d - %d", min, max) + " " + symbol(currency)
}

func symbol(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "MAD"
	}
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return currency
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(day time.Time, lang string) time.Time {
	back := (int(day.Weekday()) - int(weekStart[lang]) + 7) % 7
	return day.AddDate(0, 0, -back)
}

package i18n

import (
	"testing"
	"testing/fstest"
)

func mustDefault(t *testing.T) *Bundle {
	t.Helper()
	b, err := Default("en", Locales)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := mustDefault(t)
	if got := b.Resolve("en;q=0.8, fr;q=0.9"); got != "fr" {
		t.Fatalf("expected fr, got %s", got)
	}
	if got := b.Resolve("ar-MA,ar;q=0.9"); got != "ar" {
		t.Fatalf("expected ar, got %s", got)
	}
	if got := b.Resolve("es-419"); got != "es" {
		t.Fatalf("expected es, got %s", got)
	}
}

func TestResolveFallsBack(t *testing.T) {
	b := mustDefault(t)
	for _, header := range []string{"", "de-DE", "ja;q=1", "%%%"} {
		if got := b.Resolve(header); got != "en" {
			t.Fatalf("Resolve(%q) = %s, want en", header, got)
		}
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	b := mustDefault(t)
	if got := b.T("fr", "legal.privacy"); got != "Politique de confidentialite" {
		t.Fatalf("fr privacy = %q", got)
	}
	if got := b.T("fr", "legal.copyright"); got != "2026 Festivals Morocco. All rights reserved." {
		t.Fatalf("fr copyright should fall back to en, got %q", got)
	}
	if got := b.T("xx", "event.free"); got != "Free" {
		t.Fatalf("unknown locale = %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestCatalogsCoverDefault(t *testing.T) {
	b := mustDefault(t)
	for key := range b.dict["en"] {
		if key == "legal.copyright" {
			continue
		}
		for _, l := range []string{"fr", "es", "ar"} {
			if _, ok := b.dict[l][key]; !ok {
				t.Errorf("%s missing %s", l, key)
			}
		}
	}
}

func TestLabelsAndDirection(t *testing.T) {
	b := mustDefault(t)
	if got := b.Region("es", "dakhla-oued-ed-dahab"); got != "Dajla-Rio de Oro" {
		t.Fatalf("region = %q", got)
	}
	if got := b.Category("ar", "music"); got != "موسيقى" {
		t.Fatalf("category = %q", got)
	}
	if got := b.Category("en", "unknown"); got != "unknown" {
		t.Fatalf("unknown category = %q", got)
	}
	if b.Dir("ar") != "rtl" || b.Dir("fr") != "ltr" {
		t.Fatal("unexpected direction")
	}
}

func TestTfGroupsNumbers(t *testing.T) {
	b := mustDefault(t)
	if got := b.Tf("en", "home.count", 1200); got != "1,200 events" {
		t.Fatalf("Tf = %q", got)
	}
}

func TestLoadRequiresFallbackCatalog(t *testing.T) {
	fsys := fstest.MapFS{"l/fr.json": {Data: []byte(`{"a":"b"}`)}}
	if _, err := Load(fsys, "l", "en", []string{"en", "fr"}); err == nil {
		t.Fatal("expected error without fallback catalog")
	}
	fsys["l/en.json"] = &fstest.MapFile{Data: []byte(`{"a":"c"}`)}
	b, err := Load(fsys, "l", "en", []string{"fr", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Ordered(); len(got) != 3 || got[0] != "en" {
		t.Fatalf("ordered = %v", got)
	}
	if got := b.T("es", "a"); got != "c" {
		t.Fatalf("missing es catalog should fall back, got %q", got)
	}
}

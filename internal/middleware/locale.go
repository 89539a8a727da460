// Package middleware carries the site's locale handling.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/indigoandlavender/slow-morocco-6/internal/i18n"
)

type ctxKey string

const ctxKeyLocale ctxKey = "locale"

// CookieName stores the visitor's explicit language choice.
const CookieName = "hl"

// WithLocale stores lang in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, lang)
}

// Lang returns the request language, or fallback when none was resolved.
func Lang(r *http.Request, fallback string) string {
	if v, ok := r.Context().Value(ctxKeyLocale).(string); ok && v != "" {
		return v
	}
	return fallback
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}

// PathLocale serves routes mounted under /{locale}. Unsupported locales answer 404.
func PathLocale(bundle *i18n.Bundle, notFound http.HandlerFunc) func(http.Handler) http.Handler {
	if notFound == nil {
		notFound = http.NotFound
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := chi.URLParam(r, "locale")
			if !bundle.IsSupported(lang) {
				notFound(w, r)
				return
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}

// Negotiate resolves the language for routes without a locale segment: the hl query
// parameter, then the hl cookie, then Accept-Language.
func Negotiate(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(r.URL.Query().Get(CookieName)); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{Name: CookieName, Value: q, Path: "/", SameSite: http.SameSiteLaxMode})
			} else if c, err := r.Cookie(CookieName); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}

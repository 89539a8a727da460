// Package httpx writes the JSON bodies served under /api and the JSON failures of
// API-looking paths. Pages render their own HTML errors.
package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	codeLimit    = 64
	messageLimit = 400
)

// Problem is a failed API call: a stable code clients switch on, a message for people,
// the HTTP status and optional extra fields flattened into the body.
type Problem struct {
	Code      string
	Message   string
	Status    int
	RequestID string
	Fields    map[string]any
}

func (p Problem) Error() string {
	return p.Code + ": " + p.Message
}

// NewError builds a Problem. A zero status means 500.
func NewError(code, message string, status int) Problem {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Problem{
		Code:    oneLine(code, codeLimit),
		Message: oneLine(message, messageLimit),
		Status:  status,
	}
}

// NotFound is a 404 Problem.
func NotFound(code, message string) Problem {
	return NewError(code, message, http.StatusNotFound)
}

// BadRequest is a 400 Problem.
func BadRequest(code, message string) Problem {
	return NewError(code, message, http.StatusBadRequest)
}

// Unavailable is a 503 Problem.
func Unavailable(code, message string) Problem {
	return NewError(code, message, http.StatusServiceUnavailable)
}

// Internal is a 500 Problem with the "internal" code.
func Internal(message string) Problem {
	return NewError("internal", message, http.StatusInternalServerError)
}

// WithDetails returns p carrying a copy of details. Keys that clash with the envelope
// (error, message, status, request_id) are dropped when written.
func (p Problem) WithDetails(details map[string]any) Problem {
	if len(details) == 0 {
		return p
	}
	fields := make(map[string]any, len(details))
	for k, v := range details {
		fields[k] = v
	}
	p.Fields = fields
	return p
}

// body is the wire shape {error, message, status, request_id, ...fields}.
func (p Problem) body(ctx context.Context) map[string]any {
	out := make(map[string]any, len(p.Fields)+4)
	for k, v := range p.Fields {
		out[k] = v
	}
	out["error"] = p.Code
	out["message"] = p.Message
	out["status"] = p.Status

	delete(out, "request_id")
	id := p.RequestID
	if id == "" {
		id = oneLine(middleware.GetReqID(ctx), codeLimit)
	}
	if id != "" {
		out["request_id"] = id
	}
	return out
}

// WriteError writes p as the JSON error envelope. Error bodies are never cached.
func WriteError(ctx context.Context, w http.ResponseWriter, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, p.Status, p.body(ctx))
}

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// oneLine collapses whitespace runs (newlines included) and cuts to limit bytes on a
// rune boundary.
func oneLine(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}

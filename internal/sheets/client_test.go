package sheets

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), "sheet-123",
		WithClientOptions(option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication()),
	)
	require.NoError(t, err)
	return client
}

func TestRowsMapsHeaderToCells(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Festivals!A1:ZZ",
			"majorDimension": "ROWS",
			"values": [
				["id", "title_en", "status", "price_min"],
				["gnaoua-2026", "Gnaoua World Music Festival", "published", "0"],
				["draft-1", "Draft"]
			]
		}`))
	})

	rows, err := client.Rows(context.Background(), "Festivals")
	require.NoError(t, err)
	require.Contains(t, gotPath, "sheet-123")
	require.Contains(t, gotPath, "Festivals!A1:ZZ")
	require.Len(t, rows, 2)
	require.Equal(t, "Gnaoua World Music Festival", rows[0]["title_en"])
	require.Equal(t, "published", rows[0]["status"])

	value, ok := rows[1]["status"]
	require.True(t, ok, "short rows keep every header key")
	require.Equal(t, "", value)
}

func TestRowsEmptyTab(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range": "Stories!A1:ZZ"}`))
	})

	rows, err := client.Rows(context.Background(), "Stories")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestRowsWrapsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	_, err := client.Rows(context.Background(), "Festivals")
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), `sheets: read "Festivals"`), err.Error())
}

func TestRowsFromValuesStringifiesCells(t *testing.T) {
	rows := RowsFromValues([][]interface{}{
		{" lat ", "", "wheelchairAccess"},
		{31.5085, "ignored", true},
	})
	require.Equal(t, []map[string]string{{"lat": "31.5085", "wheelchairAccess": "true"}}, rows)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), "sheet-123")
	require.True(t, errors.Is(err, ErrNoCredentials))

	_, err = New(context.Background(), "", WithCredentials("e30="))
	require.Error(t, err)
}

func TestDecodeCredentials(t *testing.T) {
	raw := `{"type":"service_account"}`

	decoded, err := DecodeCredentials(base64.StdEncoding.EncodeToString([]byte(raw)))
	require.NoError(t, err)
	require.JSONEq(t, raw, string(decoded))

	decoded, err = DecodeCredentials("  " + raw + "\n")
	require.NoError(t, err)
	require.JSONEq(t, raw, string(decoded))

	_, err = DecodeCredentials("not base64 !!")
	require.Error(t, err)

	_, err = DecodeCredentials(base64.StdEncoding.EncodeToString([]byte("plain text")))
	require.Error(t, err)
}

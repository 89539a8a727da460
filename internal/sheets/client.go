// Package sheets reads tabular content from Google Sheets. The first row of a tab is the
// header; every following row becomes a map keyed by header cell.
package sheets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	defaultTimeout = 10 * time.Second
	columnRange    = "A1:ZZ"
)

// ErrNoCredentials is returned by New when neither credentials nor client options were given.
var ErrNoCredentials = errors.New("sheets: no service account credentials configured")

// Client fetches rows from a single spreadsheet.
type Client struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
	timeout       time.Duration
	logger        *zap.Logger
}

type clientConfig struct {
	credentials string
	clientOpts  []option.ClientOption
	timeout     time.Duration
	logger      *zap.Logger
}

// Option customises the Client.
type Option func(*clientConfig)

// WithCredentials supplies the service account JSON, base64 encoded or raw.
func WithCredentials(encoded string) Option {
	return func(c *clientConfig) { c.credentials = strings.TrimSpace(encoded) }
}

// WithClientOptions forwards options to the Sheets API client.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *clientConfig) { c.clientOpts = append(c.clientOpts, opts...) }
}

// WithTimeout bounds each Rows call.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a read-only Sheets client for spreadsheetID.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Client, error) {
	cfg := clientConfig{timeout: defaultTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}

	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsReadonlyScope)}
	switch {
	case cfg.credentials != "":
		creds, err := DecodeCredentials(cfg.credentials)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, option.WithCredentialsJSON(creds))
	case len(cfg.clientOpts) == 0:
		return nil, ErrNoCredentials
	}
	clientOpts = append(clientOpts, cfg.clientOpts...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		timeout:       cfg.timeout,
		logger:        cfg.logger,
	}, nil
}

// Rows returns every data row of tab keyed by the header row. Cells missing from short rows
// map to "". An empty tab yields no rows and no error.
func (c *Client) Rows(ctx context.Context, tab string) ([]map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.values.Get(c.spreadsheetID, tab+"!"+columnRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %q: %w", tab, err)
	}
	rows := RowsFromValues(resp.Values)
	c.logger.Debug("sheets: tab fetched",
		zap.String("tab", tab),
		zap.Int("rows", len(rows)),
		zap.Duration("latency", time.Since(start)),
	)
	return rows, nil
}

// RowsFromValues converts a raw value grid into header-keyed rows.
func RowsFromValues(values [][]interface{}) []map[string]string {
	if len(values) == 0 {
		return []map[string]string{}
	}
	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = strings.TrimSpace(cellString(cell))
	}

	rows := make([]map[string]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(raw) {
				row[header] = cellString(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// DecodeCredentials accepts the service account JSON either base64 encoded or verbatim.
func DecodeCredentials(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if strings.HasPrefix(trimmed, "{") {
		if !json.Valid([]byte(trimmed)) {
			return nil, errors.New("sheets: credentials are not valid JSON")
		}
		return []byte(trimmed), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("sheets: decode credentials: %w", err)
	}
	if !json.Valid(decoded) {
		return nil, errors.New("sheets: decoded credentials are not valid JSON")
	}
	return decoded, nil
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

package sheet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// handleTTL bounds how long a Sheets client handle is reused before being
// re-established.
const handleTTL = time.Hour

// readRange covers the table's seven columns on the first sheet.
const readRange = "A:G"

// GoogleSheet is a RowSource backed by the Google Sheets API. The service
// handle is cached process-wide and transparently re-dialed after expiry or
// after a failed call; a call that cannot obtain a handle fails for that
// interaction only.
type GoogleSheet struct {
	credsJSON     []byte
	spreadsheetID string

	mu       sync.Mutex
	svc      *sheets.Service
	dialedAt time.Time
}

func NewGoogleSheet(credsJSON []byte, spreadsheetID string) *GoogleSheet {
	return &GoogleSheet{credsJSON: credsJSON, spreadsheetID: spreadsheetID}
}

func (g *GoogleSheet) service(ctx context.Context) (*sheets.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.svc != nil && time.Since(g.dialedAt) < handleTTL {
		return g.svc, nil
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(g.credsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		g.svc = nil
		return nil, fmt.Errorf("connect sheets: %w", err)
	}
	g.svc = svc
	g.dialedAt = time.Now()
	return svc, nil
}

// drop discards the cached handle so the next call dials again.
func (g *GoogleSheet) drop() {
	g.mu.Lock()
	g.svc = nil
	g.mu.Unlock()
}

func (g *GoogleSheet) Append(ctx context.Context, row []string) error {
	svc, err := g.service(ctx)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	_, err = svc.Spreadsheets.Values.Append(g.spreadsheetID, readRange, &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		g.drop()
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

func (g *GoogleSheet) Rows(ctx context.Context) ([][]string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		g.drop()
		return nil, fmt.Errorf("read rows: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

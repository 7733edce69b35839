// Package sheet is the persistence gateway: tickets are rows of a remote
// spreadsheet-style table, append-only, read back whole. Backends implement
// RowSource; the gateway owns serialization, header handling, and the
// per-operator history view.
package sheet

import (
	"context"
	"strings"
	"time"

	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/model"
)

// Header is the fixed 7-column schema of the table, in column order.
var Header = []string{"Usuario", "FechaInicio", "FechaCierre", "Origen", "Referencia", "Motivo", "Detalles"}

// DefaultHistoryLimit caps the per-operator history view.
const DefaultHistoryLimit = 15

// RowSource is the minimal remote-table surface: append one row, read every
// row. Both calls block until the backend answers or fails.
type RowSource interface {
	Append(ctx context.Context, row []string) error
	Rows(ctx context.Context) ([][]string, error)
}

type Gateway struct {
	src          RowSource
	historyLimit int
}

func NewGateway(src RowSource, historyLimit int) *Gateway {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Gateway{src: src, historyLimit: historyLimit}
}

// Append serializes the record in column order and appends it as one row.
// Failures surface as PersistenceError; the caller must not retry on its own.
func (g *Gateway) Append(ctx context.Context, rec model.Record) error {
	if err := g.src.Append(ctx, serialize(rec)); err != nil {
		return &errs.PersistenceError{Op: "append", Err: err}
	}
	return nil
}

// EnsureHeader appends the header row to an empty table. The header is the
// only schema this system has.
func (g *Gateway) EnsureHeader(ctx context.Context) error {
	rows, err := g.src.Rows(ctx)
	if err != nil {
		return &errs.PersistenceError{Op: "read", Err: err}
	}
	if len(rows) > 0 {
		return nil
	}
	if err := g.src.Append(ctx, Header); err != nil {
		return &errs.PersistenceError{Op: "append header", Err: err}
	}
	return nil
}

// ListAll reads the full table in stored order. The first row is the header
// and is stripped; a table without a header row is empty.
func (g *Gateway) ListAll(ctx context.Context) ([]model.Record, error) {
	rows, err := g.src.Rows(ctx)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "read", Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	recs := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, parse(row))
	}
	return recs, nil
}

// ListForUser returns operator's rows, newest first, capped at the configured
// limit. The operator column is located by name against the header row,
// falling back to the first column.
func (g *Gateway) ListForUser(ctx context.Context, operator string) ([]model.Record, error) {
	rows, err := g.src.Rows(ctx)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "read", Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	col := operatorColumn(rows[0])
	var mine [][]string
	for _, row := range rows[1:] {
		if cell(row, col) == operator {
			mine = append(mine, row)
		}
	}
	if len(mine) > g.historyLimit {
		mine = mine[len(mine)-g.historyLimit:]
	}
	recs := make([]model.Record, 0, len(mine))
	for i := len(mine) - 1; i >= 0; i-- {
		recs = append(recs, parse(mine[i]))
	}
	return recs, nil
}

// operatorColumn finds the operator column by case-insensitive substring
// match on "usuario" or "operador"; column 0 when nothing matches.
func operatorColumn(header []string) int {
	for i, name := range header {
		n := strings.ToLower(name)
		if strings.Contains(n, "usuario") || strings.Contains(n, "operador") {
			return i
		}
	}
	return 0
}

func serialize(rec model.Record) []string {
	return []string{
		rec.Operator,
		rec.OpenedAt.Format(model.TimeLayout),
		rec.ClosedAt.Format(model.TimeLayout),
		rec.Origin,
		rec.Reference,
		rec.Reason,
		rec.Details,
	}
}

// parse maps a row back positionally. Short rows (trailing empty cells some
// backends drop) read as empty fields; unparseable timestamps read as zero.
func parse(row []string) model.Record {
	opened, _ := time.Parse(model.TimeLayout, cell(row, 1))
	closed, _ := time.Parse(model.TimeLayout, cell(row, 2))
	return model.Record{
		Operator:  cell(row, 0),
		OpenedAt:  opened,
		ClosedAt:  closed,
		Origin:    cell(row, 3),
		Reference: cell(row, 4),
		Reason:    cell(row, 5),
		Details:   cell(row, 6),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

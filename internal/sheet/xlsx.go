package sheet

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Sheet1"

// Workbook is a RowSource backed by a local xlsx file, for development and
// offline deployments. The file is opened per call; a missing file is an
// empty table until the first append creates it.
type Workbook struct {
	mu   sync.Mutex
	path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) Append(_ context.Context, row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, created, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(workbookSheet)
	if err != nil {
		return fmt.Errorf("workbook rows: %w", err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("workbook cell: %w", err)
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	if err := f.SetSheetRow(workbookSheet, cell, &values); err != nil {
		return fmt.Errorf("workbook set row: %w", err)
	}
	if created {
		return f.SaveAs(w.path)
	}
	return f.Save()
}

func (w *Workbook) Rows(_ context.Context) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("workbook open: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(workbookSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook rows: %w", err)
	}
	return rows, nil
}

func (w *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return excelize.NewFile(), true, nil
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, fmt.Errorf("workbook open: %w", err)
	}
	return f, false, nil
}

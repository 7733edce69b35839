package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/opsdesk/ticketera/internal/application"
	"github.com/opsdesk/ticketera/internal/config"
	"github.com/opsdesk/ticketera/internal/model"
	"github.com/opsdesk/ticketera/internal/sheet"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the full ticket history to a local xlsx workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "ticketera-export.xlsx", "output workbook path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	src, err := application.NewRowSource(cfg)
	if err != nil {
		return err
	}
	gateway := sheet.NewGateway(src, cfg.HistoryLimit)
	recs, err := gateway.ListAll(cmd.Context())
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := writeRow(f, 1, sheet.Header); err != nil {
		return err
	}
	for i, rec := range recs {
		row := []string{
			rec.Operator,
			rec.OpenedAt.Format(model.TimeLayout),
			rec.ClosedAt.Format(model.TimeLayout),
			rec.Origin,
			rec.Reference,
			rec.Reason,
			rec.Details,
		}
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(exportOut); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	log.Printf("export: wrote %d records to %s", len(recs), exportOut)
	return nil
}

func writeRow(f *excelize.File, rowNum int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return f.SetSheetRow("Sheet1", cell, &values)
}

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/opsdesk/ticketera/internal/application"
	"github.com/opsdesk/ticketera/internal/config"
	"github.com/opsdesk/ticketera/internal/sheet"
)

var initSheetCmd = &cobra.Command{
	Use:   "init-sheet",
	Short: "Write the 7-column header row to an empty table",
	RunE:  runInitSheet,
}

func runInitSheet(cmd *cobra.Command, args []string) error {
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
	if err := gateway.EnsureHeader(cmd.Context()); err != nil {
		return err
	}
	log.Println("init-sheet: ok")
	return nil
}

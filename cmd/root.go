package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ticketera",
	Short: "Incident ticket logging API over a shared spreadsheet",
	RunE:  runAPI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(initSheetCmd)
	rootCmd.AddCommand(exportCmd)
}

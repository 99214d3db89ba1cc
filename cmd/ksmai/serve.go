package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kickstartmyai/kickstartmyai/internal/api"
	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

var serveReportFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest validation report over HTTP",
	Long: `Serve starts a small API exposing a health endpoint and the most
recent run report, for CI dashboards that poll validation status.

Examples:
  # Serve a previously exported report
  ksmai validate --report-file report.json
  ksmai serve --report-file report.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := api.NewServer()

		if serveReportFile != "" {
			data, err := os.ReadFile(serveReportFile)
			if err != nil {
				return fmt.Errorf("failed to read report file: %w", err)
			}
			var report types.RunReport
			if err := json.Unmarshal(data, &report); err != nil {
				return fmt.Errorf("failed to parse report file %s: %w", serveReportFile, err)
			}
			server.SetReport(&report)
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("Starting KickStartMyAI API server on %s...\n", addr)
		return server.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveReportFile, "report-file", "",
		"serve the run report from this JSON file")
}

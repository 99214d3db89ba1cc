package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// buildTables builds the console rendering of a run report: a summary
// table, a findings table per failing configuration, and the one-line
// PASS/FAIL verdicts CI logs grep for.
func buildTables(report *types.RunReport) (string, error) {
	// Create summary table
	summaryTable := table.NewWriter()
	summaryTable.SetOutputMirror(nil)
	summaryTable.SetStyle(table.StyleLight)
	summaryTable.Style().Options.SeparateColumns = true

	summaryTable.SetTitle("VALIDATION RUN %s", report.RunID)

	summaryTable.AppendHeader(table.Row{
		"CONFIGURATION",
		"STATUS",
		"FINDINGS",
		"DURATION",
	})

	for _, r := range report.Results {
		summaryTable.AppendRow(table.Row{
			r.Name,
			strings.ToUpper(string(r.Status)),
			len(r.Findings),
			r.Duration.Round(10 * time.Millisecond),
		})
	}

	summaryTable.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d passed, %d failed, %d not run", report.Passed, report.Failed, report.NotRun),
		"",
		"",
	})

	var sb strings.Builder
	sb.WriteString(summaryTable.Render())
	sb.WriteString("\n")

	// One findings table per failing configuration; the full ordered
	// list, not a count, so the report is actionable without a re-run
	for _, r := range report.Results {
		if len(r.Findings) == 0 {
			continue
		}

		findingsTable := table.NewWriter()
		findingsTable.SetOutputMirror(nil)
		findingsTable.SetStyle(table.StyleLight)
		findingsTable.Style().Options.SeparateColumns = true
		findingsTable.SetTitle("FINDINGS: %s", r.Name)

		findingsTable.AppendHeader(table.Row{
			"KIND",
			"PATH",
			"LINE",
			"MESSAGE",
		})

		for _, f := range r.Findings {
			line := ""
			if f.Line > 0 {
				line = fmt.Sprintf("%d", f.Line)
			}
			findingsTable.AppendRow(table.Row{
				string(f.Kind),
				f.Path,
				line,
				f.Message,
			})
		}

		sb.WriteString("\n")
		sb.WriteString(findingsTable.Render())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, r := range report.Results {
		sb.WriteString(Line(r))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Line renders the one-line console verdict for a configuration
func Line(r types.ConfigReport) string {
	switch r.Status {
	case types.ConfigPass:
		return fmt.Sprintf("PASS %s", r.Name)
	case types.ConfigNotRun:
		return fmt.Sprintf("NOT RUN %s", r.Name)
	default:
		return fmt.Sprintf("FAIL %s: %d findings", r.Name, len(r.Findings))
	}
}

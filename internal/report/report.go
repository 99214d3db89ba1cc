// Package report folds per-configuration results into a run report and
// formats it for console output and CI artifacts.
package report

import (
	"sort"
	"time"

	"github.com/kickstartmyai/kickstartmyai/internal/types"
)

// Entry is one configuration's raw outcome before aggregation
type Entry struct {
	Config   types.Configuration
	Result   types.GenerationResult
	Findings []types.Finding
	// NotRun marks configurations the run was cancelled before reaching
	NotRun bool
}

// Aggregate folds entries into a RunReport. Entries arrive in completion
// order; the report is sorted by configuration name so output is
// deterministic regardless of scheduling.
func Aggregate(runID string, entries []Entry) *types.RunReport {
	report := &types.RunReport{
		RunID:     runID,
		Timestamp: time.Now().Unix(),
		Results:   make([]types.ConfigReport, 0, len(entries)),
	}

	for _, e := range entries {
		cr := types.ConfigReport{
			Name:     e.Config.Name,
			Duration: e.Result.Duration,
		}

		switch {
		case e.NotRun:
			cr.Status = types.ConfigNotRun
		case e.Result.Status == types.RenderFailed:
			// Surface the renderer failure as a finding so the report
			// shows why no structural or syntax checks ran
			cr.Status = types.ConfigFail
			cr.Findings = append([]types.Finding{{
				Kind:    types.FindingGenerationFailed,
				Message: e.Result.Error,
			}}, e.Findings...)
		case len(e.Findings) > 0:
			cr.Status = types.ConfigFail
			cr.Findings = e.Findings
		default:
			cr.Status = types.ConfigPass
		}

		report.Results = append(report.Results, cr)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Name < report.Results[j].Name
	})

	for _, r := range report.Results {
		switch r.Status {
		case types.ConfigPass:
			report.Passed++
		case types.ConfigFail:
			report.Failed++
		case types.ConfigNotRun:
			report.NotRun++
		}
	}
	return report
}

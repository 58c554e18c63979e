package batch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tvconvert/internal/tableview"
)

// Summary renders the end-of-run report: the verdict line, each failure with
// its diagnostics, the targets needing manual attention, and a results table.
func Summary(report Report) string {
	var b strings.Builder
	total := len(report.Results)
	failed := report.Failed()

	switch {
	case report.DryRun:
		fmt.Fprintf(&b, "DRY RUN: %d targets planned, nothing converted\n", total)
	case failed == 0:
		fmt.Fprintf(&b, "SUCCESS: all %d targets converted\n", total)
	default:
		fmt.Fprintf(&b, "FAILED: %d of %d targets failed\n", failed, total)
	}

	for _, res := range report.Failures() {
		fmt.Fprintf(&b, "\n%s\n  %s\n", res.Target.InputPath, res.Target.IdentifyingName())
		diagnostics := strings.TrimSpace(res.Diagnostics)
		if diagnostics == "" && res.Err != nil {
			diagnostics = res.Err.Error()
		}
		for _, line := range strings.Split(diagnostics, "\n") {
			if line = strings.TrimRight(line, " \t\r"); line != "" {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}

	if len(report.FollowUps) > 0 {
		b.WriteString("\nNEEDS MANUAL ATTENTION\n")
		for _, t := range report.FollowUps {
			fmt.Fprintf(&b, "  - %s (%s)\n", t.IdentifyingName(), t.InputPath)
		}
	}

	if total > 0 {
		b.WriteString("\n")
		b.WriteString(ResultsTable(report.Results))
		b.WriteString("\n")
	}
	return b.String()
}

// ResultsTable renders one row per result.
func ResultsTable(results []Result) string {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			strconv.Itoa(res.Position),
			res.Target.IdentifyingName(),
			status(res),
			res.OutputPath,
			formatElapsed(res.Duration),
		})
	}
	return tableview.Render(
		[]string{"#", "Target", "Status", "Output", "Elapsed"},
		rows,
		[]tableview.Alignment{tableview.AlignRight, tableview.AlignLeft, tableview.AlignLeft, tableview.AlignLeft, tableview.AlignRight},
	)
}

func status(res Result) string {
	switch {
	case !res.Succeeded:
		return "failed"
	case res.FollowUp:
		return "needs subtitle"
	default:
		return "converted"
	}
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}

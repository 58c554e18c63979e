package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tvconvert/internal/history"
	"tvconvert/internal/tableview"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded conversion results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled (set history.enabled = true)")
			}
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			runID = strings.TrimSpace(runID)
			if runID == "" {
				entries, err := store.RecentResults(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No recorded results")
					return nil
				}
				fmt.Fprintln(out, renderHistoryTable(entries, true))
				return nil
			}

			run, err := store.GetRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", runID)
			}
			entries, err := store.RunResults(cmd.Context(), runID)
			if err != nil {
				return err
			}
			writeRunHeader(out, run)
			if len(entries) > 0 {
				fmt.Fprintln(out, renderHistoryTable(entries, false))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show every result of one run")
	return cmd
}

func writeRunHeader(out io.Writer, run *history.Run) {
	fmt.Fprintf(out, "Run:      %s\n", run.ID)
	fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	if run.FinishedAt.IsZero() {
		fmt.Fprintln(out, "Finished: -")
	} else {
		fmt.Fprintf(out, "Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
	}
	if run.ConfigPath != "" {
		fmt.Fprintf(out, "Config:   %s\n", run.ConfigPath)
	}
	fmt.Fprintf(out, "Dry run:  %s\n", yesNo(run.DryRun))
	fmt.Fprintf(out, "Targets:  %d (%d failed)\n", run.TargetCount, run.FailedCount)
}

func renderHistoryTable(entries []history.Entry, withRun bool) string {
	headers := []string{"#", "Target", "Status", "Output", "Elapsed"}
	aligns := []tableview.Alignment{tableview.AlignRight, tableview.AlignLeft, tableview.AlignLeft, tableview.AlignLeft, tableview.AlignRight}
	if withRun {
		headers = append([]string{"Started"}, headers...)
		aligns = append([]tableview.Alignment{tableview.AlignLeft}, aligns...)
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		row := []string{
			strconv.Itoa(entry.Position),
			entry.Label,
			entry.Status(),
			entry.OutputPath,
			formatElapsed(entry.Duration),
		}
		if withRun {
			row = append([]string{entry.RunStarted.Local().Format(time.DateTime)}, row...)
		}
		rows = append(rows, row)
	}
	return tableview.Render(headers, rows, aligns)
}

func formatElapsed(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

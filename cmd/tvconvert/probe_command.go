package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tvconvert/internal/config"
	"tvconvert/internal/inventory"
	"tvconvert/internal/selection"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Print the stream inventory of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			inv, err := inventory.Read(cmd.Context(), inventory.FFprobe{Binary: cfg.Paths.FFprobeBinary}, path)
			if err != nil {
				return err
			}
			writeInventory(cmd.OutOrStdout(), path, inv)
			return nil
		},
	}
}

func writeInventory(out io.Writer, path string, inv inventory.Inventory) {
	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "Duration: %s\n", formatDuration(inv.DurationSeconds))

	sections := []struct {
		title   string
		streams []inventory.StreamDescriptor
	}{
		{"Video", inv.Video()},
		{"Audio", inv.Audio()},
		{"Subtitles", inv.Subtitles()},
	}
	colorize := shouldColorize(out)
	for _, section := range sections {
		fmt.Fprintln(out)
		for _, line := range renderSectionHeader(section.title, colorize) {
			fmt.Fprintln(out, line)
		}
		if len(section.streams) == 0 {
			fmt.Fprintln(out, "none")
			continue
		}
		fmt.Fprintln(out, selection.CandidateTable(section.streams))
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	return (time.Duration(seconds * float64(time.Second))).Round(time.Second).String()
}

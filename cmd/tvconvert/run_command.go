package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvconvert/internal/batch"
	"tvconvert/internal/history"
	"tvconvert/internal/logging"
	"tvconvert/internal/preflight"
	"tvconvert/internal/selection"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Convert every configured target",
		Long: "Probe every configured target, ask for stream choices up front, then convert " +
			"each target with ffmpeg. Engine failures do not stop the remaining targets.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()

			if err := preflight.ValidateRun(runCtx, cfg, dryRun); err != nil {
				return err
			}
			var lock *batch.Lock
			if !dryRun {
				lock, err = batch.AcquireLock(cfg.LockPath())
				if err != nil {
					return err
				}
				defer func() { _ = lock.Release() }()
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if lock != nil {
				logger.Info("run lock acquired", logging.String("lock_path", lock.Path()))
			}

			var recorder batch.Recorder
			if cfg.History.Enabled {
				store, err := history.Open(cfg.History.Path)
				if err != nil {
					logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
						logging.String("path", cfg.History.Path),
						logging.Error(err),
						logging.String(logging.FieldImpact, "this run is not recorded"),
					)
				} else {
					defer store.Close()
					logger.Info("history ledger opened", logging.String("history_path", store.Path()))
					recorder = store
				}
			}

			out := cmd.OutOrStdout()
			report, err := batch.New(batch.Options{
				Config:      cfg,
				ConfigPath:  ctx.configPath,
				Answers:     selection.NewPromptSource(cmd.InOrStdin(), out),
				Recorder:    recorder,
				Logger:      logger,
				Out:         out,
				Diagnostics: cmd.ErrOrStderr(),
				Interactive: shouldColorize(out),
				DryRun:      dryRun,
			}).Run(runCtx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, batch.Summary(report))
			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d targets failed", failed, len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Gather selections and print ffmpeg commands without converting")
	return cmd
}

package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"tvconvert/internal/config"
	"tvconvert/internal/ffmpeg"
	"tvconvert/internal/history"
	"tvconvert/internal/inventory"
	"tvconvert/internal/language"
	"tvconvert/internal/logging"
	"tvconvert/internal/naming"
	"tvconvert/internal/plan"
	"tvconvert/internal/progress"
	"tvconvert/internal/selection"
	"tvconvert/internal/services"
)

// Engine runs one conversion.
type Engine interface {
	Run(ctx context.Context, inv ffmpeg.Invocation, hooks ffmpeg.Hooks) (ffmpeg.Result, error)
}

// Recorder persists run outcomes. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	RecordResult(ctx context.Context, entry history.Entry) error
	FinishRun(ctx context.Context, runID string, failed int, finishedAt time.Time) error
}

// Options wires a batch run.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Prober     inventory.Prober
	Answers    selection.AnswerSource
	Engine     Engine
	// Recorder is optional; nil disables the history ledger.
	Recorder Recorder
	Logger   *slog.Logger
	// Out receives candidate tables, progress, and dry-run commands.
	Out io.Writer
	// Diagnostics receives live engine stderr when set.
	Diagnostics io.Writer
	// Interactive enables the bar progress style.
	Interactive bool
	DryRun      bool
	RunID       string
}

// Batch converts every configured target: first it gathers inventories and
// selections for all targets, then it executes them in order.
type Batch struct {
	cfg        *config.Config
	configPath string
	prober     inventory.Prober
	selector   *selection.Selector
	engine     Engine
	recorder   Recorder
	logger     *slog.Logger
	out        io.Writer
	diag       io.Writer
	display    display
	sampler    *logging.ProgressSampler
	dryRun     bool
	runID      string
	now        func() time.Time
}

// prepared is a target whose inventory and selection were gathered.
type prepared struct {
	position  int
	target    naming.Target
	inventory inventory.Inventory
	selection selection.Selection
	bucket    naming.Bucket
}

// New builds a batch from options. Prober and Engine default to the
// configured ffprobe and ffmpeg binaries.
func New(opts Options) *Batch {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	prober := opts.Prober
	if prober == nil {
		prober = inventory.FFprobe{Binary: cfg.Paths.FFprobeBinary}
	}
	engine := opts.Engine
	if engine == nil {
		engine = ffmpeg.NewRunner()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Batch{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		prober:     prober,
		selector:   selection.NewSelector(opts.Answers, out, logger),
		engine:     engine,
		recorder:   opts.Recorder,
		logger:     logging.NewComponentLogger(logger, "batch"),
		out:        out,
		diag:       opts.Diagnostics,
		display:    newDisplay(out, ProgressStyle(cfg.Output.ProgressStyle), opts.Interactive),
		sampler:    logging.NewProgressSampler(cfg.Logging.ProgressBucket),
		dryRun:     opts.DryRun,
		runID:      runID,
		now:        time.Now,
	}
}

// RunID returns the identifier stamped on logs and history for this run.
func (b *Batch) RunID() string {
	return b.runID
}

// Run executes both phases. A probe or selection failure aborts the run and
// is returned. Engine failures are collected in the report and do not stop
// later targets.
func (b *Batch) Run(ctx context.Context) (Report, error) {
	ctx = services.WithRunID(ctx, b.runID)
	logger := logging.WithContext(ctx, b.logger)
	targets := b.cfg.Targets()
	report := Report{RunID: b.runID, DryRun: b.dryRun}

	logger.Info("batch started",
		logging.Int("targets", len(targets)),
		logging.Bool("dry_run", b.dryRun),
		logging.String("output_dir", b.cfg.Paths.OutputDir),
	)

	items, err := b.gather(ctx, targets)
	if err != nil {
		logging.ErrorWithContext(logger, "batch aborted", "batch_aborted",
			logging.Error(err),
			logging.String("error_kind", services.Kind(err)),
			logging.String(logging.FieldErrorHint, "fix the reported problem and rerun; no target was converted"),
		)
		return report, err
	}

	b.beginHistory(ctx, len(targets))
	for _, item := range items {
		if !item.selection.SubtitleResolved() {
			report.FollowUps = append(report.FollowUps, item.target)
		}
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			b.finishHistory(ctx, report)
			return report, err
		}
		result := b.execute(ctx, item, len(items))
		report.Results = append(report.Results, result)
		b.recordHistory(ctx, result)
		if err := ctx.Err(); err != nil {
			b.finishHistory(ctx, report)
			return report, err
		}
	}

	b.finishHistory(ctx, report)
	logger.Info("batch finished",
		logging.Int("targets", len(report.Results)),
		logging.Int("failed", report.Failed()),
		logging.Int("follow_up", len(report.FollowUps)),
	)
	return report, nil
}

func (b *Batch) gather(ctx context.Context, targets []naming.Target) ([]prepared, error) {
	layout := b.cfg.Layout()
	items := make([]prepared, 0, len(targets))
	for i, target := range targets {
		position := i + 1
		tctx := services.WithStage(services.WithTargetIndex(ctx, position), "gather")
		logger := logging.WithContext(tctx, b.logger)

		inv, err := inventory.Read(tctx, b.prober, target.InputPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("stream inventory read",
			logging.String("input_path", target.InputPath),
			logging.Int("streams", len(inv.Streams)),
			logging.Float64("duration_seconds", inv.DurationSeconds),
		)

		fmt.Fprintf(b.out, "\n[%d / %d] %s\n", position, len(targets), target.IdentifyingName())
		sel, err := b.selector.Select(tctx, target, inv)
		if err != nil {
			return nil, err
		}

		bucket := layout.BucketFor(sel.SubtitleResolved())
		if !sel.SubtitleResolved() {
			logging.WarnWithContext(logger, "no primary subtitle selected", "subtitle_missing",
				logging.String("target", target.IdentifyingName()),
				logging.String(logging.FieldErrorHint, "supply an external subtitle and rerun this target"),
				logging.String(logging.FieldImpact, "output has no default subtitle track"),
			)
		}
		logger.Info("streams selected",
			logging.String("target", target.IdentifyingName()),
			logging.Int("video", sel.VideoIndex),
			logging.Int("audio", sel.AudioIndex),
			logging.Bool("subtitle_resolved", sel.SubtitleResolved()),
			logging.String("bucket", string(bucket)),
		)
		items = append(items, prepared{
			position:  position,
			target:    target,
			inventory: inv,
			selection: sel,
			bucket:    bucket,
		})
	}
	return items, nil
}

func (b *Batch) buildPlan(item prepared) plan.Plan {
	layout := b.cfg.Layout()
	output := layout.OutputPath(item.target, item.bucket)
	sidecar := ""
	if b.cfg.Output.ExtractSubtitle && item.selection.SubtitleIndex != nil {
		if stream, ok := item.inventory.Stream(*item.selection.SubtitleIndex); ok {
			sidecar = naming.SidecarPath(output, sidecarLanguage(stream.Language))
		}
	}
	return plan.Build(plan.Request{
		Target:      item.target,
		Inventory:   item.inventory,
		Selection:   item.selection,
		OutputPath:  output,
		Bucket:      item.bucket,
		SidecarPath: sidecar,
		Profile:     plan.ProfileFromConfig(b.cfg.Audio),
		LadderLimit: b.cfg.Plan.LadderLimit,
	})
}

func (b *Batch) execute(ctx context.Context, item prepared, total int) Result {
	tctx := services.WithStage(services.WithTargetIndex(ctx, item.position), "execute")
	logger := logging.WithContext(tctx, b.logger)
	label := item.target.IdentifyingName()

	p := b.buildPlan(item)
	args := ffmpeg.RenderArgs(p)
	result := Result{
		Position:    item.position,
		Target:      item.target,
		OutputPath:  p.MediaPath(),
		SidecarPath: p.SidecarPath(),
		FollowUp:    !item.selection.SubtitleResolved(),
		Command:     ffmpeg.CommandLine(b.cfg.Paths.FFmpegBinary, args),
	}

	if b.dryRun {
		fmt.Fprintln(b.out, result.Command)
		result.Succeeded = true
		return result
	}

	for _, out := range p.Outputs {
		if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
			result.Err = services.Wrap(services.ErrEngine, "execute", "mkdir", "Failed to create output folder", err)
			result.Diagnostics = err.Error()
			b.logFailure(logger, result)
			return result
		}
	}

	logger.Info("conversion started",
		logging.String("target", label),
		logging.String("output_path", p.MediaPath()),
		logging.Int("audio_tracks", p.AudioTrackCount()),
		logging.Int("subtitle_tracks", p.SubtitleTrackCount()),
	)
	logger.Debug("ffmpeg command", logging.String("command", result.Command))

	b.sampler.Reset()
	b.display.Start(item.position, total, label)
	started := b.now()
	res, err := b.engine.Run(tctx, ffmpeg.Invocation{
		Binary:   b.cfg.Paths.FFmpegBinary,
		Args:     args,
		Duration: p.Duration,
	}, ffmpeg.Hooks{
		OnProgress: func(u progress.Update) {
			b.display.Update(u)
			if b.sampler.ShouldLog(u.Percent, label) {
				logger.Info("conversion progress",
					logging.Float64(logging.FieldProgressPercent, u.Percent),
					logging.String("speed", u.Speed),
				)
			}
		},
		Diagnostics: b.diag,
	})
	b.display.Finish()
	result.Duration = b.now().Sub(started)
	result.Diagnostics = res.Diagnostics

	if err != nil {
		result.Err = err
		b.logFailure(logger, result)
		return result
	}
	result.Succeeded = true
	if diagnostics := strings.TrimSpace(result.Diagnostics); diagnostics != "" {
		logging.WarnWithContext(logger, "ffmpeg reported diagnostics", "engine_diagnostics",
			logging.String("target", label),
			logging.String("diagnostics", diagnostics),
			logging.String(logging.FieldErrorHint, "inspect the output for the reported problems"),
			logging.String(logging.FieldImpact, "conversion succeeded but ffmpeg emitted warnings"),
		)
	}
	logger.Info("conversion finished",
		logging.String("target", label),
		logging.String("output_path", result.OutputPath),
		logging.Bool("succeeded", true),
		logging.Duration("elapsed", result.Duration),
	)
	return result
}

func (b *Batch) logFailure(logger *slog.Logger, result Result) {
	logging.ErrorWithContext(logger, "conversion failed", "conversion_failed",
		logging.String("target", result.Target.IdentifyingName()),
		logging.String("input_path", result.Target.InputPath),
		logging.Error(result.Err),
		logging.String("error_kind", services.Kind(result.Err)),
		logging.String(logging.FieldErrorHint, "see the diagnostics in the run summary"),
	)
}

// sidecarLanguage prefers the two-letter code and falls back to the raw tag.
func sidecarLanguage(tag string) string {
	if tag == "" {
		return ""
	}
	if iso2 := language.ToISO2(tag); iso2 != "" {
		return iso2
	}
	return tag
}

func (b *Batch) beginHistory(ctx context.Context, targets int) {
	if b.recorder == nil {
		return
	}
	err := b.recorder.BeginRun(ctx, history.Run{
		ID:          b.runID,
		StartedAt:   b.now(),
		ConfigPath:  b.configPath,
		DryRun:      b.dryRun,
		TargetCount: targets,
	})
	if err != nil {
		b.historyWarning(ctx, "begin", err)
		b.recorder = nil
	}
}

func (b *Batch) recordHistory(ctx context.Context, result Result) {
	if b.recorder == nil {
		return
	}
	entry := history.Entry{
		RunID:       b.runID,
		Position:    result.Position,
		Label:       result.Target.IdentifyingName(),
		InputPath:   result.Target.InputPath,
		OutputPath:  result.OutputPath,
		Succeeded:   result.Succeeded,
		FollowUp:    result.FollowUp,
		ErrorKind:   services.Kind(result.Err),
		Diagnostics: result.Diagnostics,
		Duration:    result.Duration,
	}
	if err := b.recorder.RecordResult(context.WithoutCancel(ctx), entry); err != nil {
		b.historyWarning(ctx, "record", err)
	}
}

func (b *Batch) finishHistory(ctx context.Context, report Report) {
	if b.recorder == nil {
		return
	}
	if err := b.recorder.FinishRun(context.WithoutCancel(ctx), b.runID, report.Failed(), b.now()); err != nil {
		b.historyWarning(ctx, "finish", err)
	}
}

func (b *Batch) historyWarning(ctx context.Context, op string, err error) {
	logging.WarnWithContext(logging.WithContext(ctx, b.logger), "history update failed", "history_write_failed",
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldImpact, "run continues without a complete history record"),
	)
}

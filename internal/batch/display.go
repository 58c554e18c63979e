package batch

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"tvconvert/internal/progress"
)

// ProgressStyle selects how live progress is shown to the operator.
type ProgressStyle string

const (
	StyleLines ProgressStyle = "lines"
	StyleBar   ProgressStyle = "bar"
)

const barScale = 10000

// display renders per-target progress for the operator.
type display interface {
	Start(position, total int, label string)
	Update(u progress.Update)
	Finish()
}

func newDisplay(w io.Writer, style ProgressStyle, interactive bool) display {
	if w == nil {
		w = io.Discard
	}
	if style == StyleBar && interactive {
		return &barDisplay{w: w}
	}
	return &lineDisplay{w: w}
}

// lineDisplay prints one line per emitted update.
type lineDisplay struct {
	w      io.Writer
	prefix string
}

func (d *lineDisplay) Start(position, total int, label string) {
	d.prefix = fmt.Sprintf("[%d / %d] %s", position, total, label)
}

func (d *lineDisplay) Update(u progress.Update) {
	speed := u.Speed
	if speed == "" {
		speed = "N/A"
	}
	fmt.Fprintf(d.w, "%s [%s%% at %s]\n", d.prefix, u.Text, speed)
}

func (d *lineDisplay) Finish() {}

// barDisplay redraws a progress bar in place.
type barDisplay struct {
	w      io.Writer
	prefix string
	bar    *progressbar.ProgressBar
}

func (d *barDisplay) Start(position, total int, label string) {
	d.prefix = fmt.Sprintf("[%d / %d] %s", position, total, label)
	d.bar = progressbar.NewOptions(barScale,
		progressbar.OptionSetWriter(d.w),
		progressbar.OptionSetDescription(d.prefix),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (d *barDisplay) Update(u progress.Update) {
	if d.bar == nil {
		return
	}
	if u.Speed != "" {
		d.bar.Describe(fmt.Sprintf("%s at %s", d.prefix, u.Speed))
	}
	_ = d.bar.Set(int(u.Percent * barScale / 100))
}

func (d *barDisplay) Finish() {
	if d.bar == nil {
		return
	}
	_ = d.bar.Close()
	fmt.Fprintln(d.w)
	d.bar = nil
}

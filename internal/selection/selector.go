package selection

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"tvconvert/internal/config"
	"tvconvert/internal/inventory"
	"tvconvert/internal/language"
	"tvconvert/internal/logging"
	"tvconvert/internal/naming"
	"tvconvert/internal/services"
	"tvconvert/internal/tableview"
)

// Selection records the streams chosen for one target.
type Selection struct {
	VideoIndex    int
	AudioIndex    int
	SubtitleIndex *int
	// ExternalSubtitle is only set when SubtitleIndex is nil.
	ExternalSubtitle string
}

// HasPrimarySubtitle reports whether an in-container primary subtitle was chosen.
func (s Selection) HasPrimarySubtitle() bool {
	return s.SubtitleIndex != nil
}

// SubtitleResolved reports whether either an in-container or an external
// primary subtitle was chosen.
func (s Selection) SubtitleResolved() bool {
	return s.SubtitleIndex != nil || s.ExternalSubtitle != ""
}

// Selector resolves stream selections for a target by asking an AnswerSource.
type Selector struct {
	answers AnswerSource
	out     io.Writer
	logger  *slog.Logger
	// fileExists is swapped in tests.
	fileExists func(string) bool
}

// NewSelector builds a selector. Candidate tables are written to out.
func NewSelector(answers AnswerSource, out io.Writer, logger *slog.Logger) *Selector {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Selector{
		answers:    answers,
		out:        out,
		logger:     logging.NewComponentLogger(logger, "selection"),
		fileExists: isRegularFile,
	}
}

// Select resolves video, audio, and subtitle choices for target. Invalid
// answers are re-asked; EOF, a read failure, or an inventory with no video or
// audio stream returns an error marked services.ErrSelection.
func (s *Selector) Select(ctx context.Context, target naming.Target, inv inventory.Inventory) (Selection, error) {
	logger := logging.WithContext(ctx, s.logger)
	label := target.IdentifyingName()

	video := inv.Video()
	if len(video) == 0 {
		return Selection{}, services.Wrap(services.ErrSelection, "selection", "video", "No video stream in "+target.InputPath, nil)
	}
	audio := inv.Audio()
	if len(audio) == 0 {
		return Selection{}, services.Wrap(services.ErrSelection, "selection", "audio", "No audio stream in "+target.InputPath, nil)
	}

	var sel Selection
	if len(video) == 1 {
		sel.VideoIndex = video[0].Index
		logger.Debug("video stream auto-selected", logging.Int("stream_index", sel.VideoIndex))
	} else {
		index, err := s.choose(ctx, logger, "video", fmt.Sprintf("Video stream for %s: ", label), video)
		if err != nil {
			return Selection{}, err
		}
		sel.VideoIndex = index
	}

	index, err := s.choose(ctx, logger, "audio", fmt.Sprintf("Primary audio stream for %s: ", label), audio)
	if err != nil {
		return Selection{}, err
	}
	sel.AudioIndex = index

	subtitles := inv.Subtitles()
	if len(subtitles) > 0 {
		s.render(subtitles)
		for {
			answer, err := s.ask(ctx, "subtitle", fmt.Sprintf("Primary subtitle stream for %s (empty for none): ", label))
			if err != nil {
				return Selection{}, err
			}
			if !IsValidSubtitleSelection(answer, subtitles) {
				logger.Debug("selection retry", logging.String("field", "subtitle"), logging.String("answer", answer))
				continue
			}
			if answer != "" {
				idx, _ := parseIndex(answer)
				sel.SubtitleIndex = &idx
				return sel, nil
			}
			break
		}
	}

	external, err := s.askExternal(ctx, logger, label)
	if err != nil {
		return Selection{}, err
	}
	sel.ExternalSubtitle = external
	return sel, nil
}

func (s *Selector) choose(ctx context.Context, logger *slog.Logger, field, prompt string, candidates []inventory.StreamDescriptor) (int, error) {
	s.render(candidates)
	for {
		answer, err := s.ask(ctx, field, prompt)
		if err != nil {
			return 0, err
		}
		if IsValidSelection(answer, candidates) {
			index, _ := parseIndex(answer)
			return index, nil
		}
		logger.Debug("selection retry", logging.String("field", field), logging.String("answer", answer))
	}
}

func (s *Selector) askExternal(ctx context.Context, logger *slog.Logger, label string) (string, error) {
	prompt := fmt.Sprintf("External subtitle file for %s (empty to pass all subtitles through): ", label)
	for {
		answer, err := s.ask(ctx, "external_subtitle", prompt)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", nil
		}
		path, err := config.ExpandPath(answer)
		if err == nil && s.fileExists(path) {
			return path, nil
		}
		logger.Debug("selection retry", logging.String("field", "external_subtitle"), logging.String("answer", answer))
	}
}

func (s *Selector) ask(ctx context.Context, field, prompt string) (string, error) {
	answer, err := s.answers.Answer(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", services.Wrap(services.ErrSelection, "selection", field, "Selection aborted", err)
	}
	return strings.TrimSpace(answer), nil
}

func (s *Selector) render(candidates []inventory.StreamDescriptor) {
	fmt.Fprintln(s.out, CandidateTable(candidates))
}

// CandidateTable renders streams as an operator-facing table.
func CandidateTable(candidates []inventory.StreamDescriptor) string {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		channels := ""
		if c.Channels > 0 {
			channels = strconv.Itoa(c.Channels)
		}
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			language.DisplayName(c.Language),
			c.CodecName,
			channels,
			dispositionFlags(c),
			c.Title,
		})
	}
	return tableview.Render(
		[]string{"Index", "Language", "Codec", "Channels", "Flags", "Title"},
		rows,
		[]tableview.Alignment{tableview.AlignRight, tableview.AlignLeft, tableview.AlignLeft, tableview.AlignRight, tableview.AlignLeft, tableview.AlignLeft},
	)
}

func dispositionFlags(c inventory.StreamDescriptor) string {
	var flags []string
	if c.Default {
		flags = append(flags, "default")
	}
	if c.Forced {
		flags = append(flags, "forced")
	}
	return strings.Join(flags, ",")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

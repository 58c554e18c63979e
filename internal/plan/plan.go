package plan

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"tvconvert/internal/config"
	"tvconvert/internal/inventory"
	"tvconvert/internal/language"
	"tvconvert/internal/naming"
	"tvconvert/internal/selection"
)

// DefaultLadderLimit caps passthrough audio and subtitle ladders when a
// request does not set one.
const DefaultLadderLimit = 100

// textSubtitleCodecs can be converted to a .srt sidecar.
var textSubtitleCodecs = []string{"subrip", "srt", "ass", "ssa", "webvtt", "mov_text", "text"}

// Profile is the transcoding profile of the normalized primary audio track.
type Profile struct {
	Codec         string
	SampleRate    int
	Bitrate       string
	Channels      int
	LoudnessRange float64
	Title         string
}

// DefaultProfile returns the stereo AAC loudness-normalized profile.
func DefaultProfile() Profile {
	return ProfileFromConfig(config.Default().Audio)
}

// ProfileFromConfig converts the audio config section.
func ProfileFromConfig(audio config.Audio) Profile {
	return Profile{
		Codec:         audio.Codec,
		SampleRate:    audio.SampleRate,
		Bitrate:       audio.Bitrate,
		Channels:      audio.Channels,
		LoudnessRange: audio.LoudnessRange,
		Title:         audio.Title,
	}
}

// Output is one file produced by the engine together with the directives
// that populate it.
type Output struct {
	Path       string
	Directives []Directive
}

// Plan is the complete conversion recipe for one target. It is built right
// before execution and never mutated.
type Plan struct {
	Target   naming.Target
	Bucket   naming.Bucket
	Inputs   []string
	Outputs  []Output
	Duration float64
}

// Request carries everything Build needs.
type Request struct {
	Target      naming.Target
	Inventory   inventory.Inventory
	Selection   selection.Selection
	OutputPath  string
	Bucket      naming.Bucket
	SidecarPath string
	Profile     Profile
	LadderLimit int
}

// Build derives the plan for a request. It never fails: the selection has
// already been validated against the inventory, and anything the engine
// rejects surfaces as an engine failure at execution time.
func Build(req Request) Plan {
	limit := req.LadderLimit
	if limit <= 0 {
		limit = DefaultLadderLimit
	}
	sel := req.Selection
	inv := req.Inventory

	p := Plan{
		Target:   req.Target,
		Bucket:   req.Bucket,
		Inputs:   []string{req.Target.InputPath},
		Duration: inv.DurationSeconds,
	}

	directives := []Directive{CopyVideo{Input: 0, Stream: sel.VideoIndex}}

	primaryAudio, _ := inv.Stream(sel.AudioIndex)
	directives = append(directives, NormalizedAudio{
		Stream:        sel.AudioIndex,
		Slot:          0,
		Codec:         req.Profile.Codec,
		SampleRate:    req.Profile.SampleRate,
		Bitrate:       req.Profile.Bitrate,
		Channels:      req.Profile.Channels,
		LoudnessRange: req.Profile.LoudnessRange,
		Title:         req.Profile.Title,
		Language:      knownISO3(primaryAudio.Language),
	})

	for i, stream := range capped(inv.Audio(), limit) {
		directives = append(directives, PassthroughAudio{
			Stream:   stream.Index,
			Slot:     i + 1,
			Title:    passthroughTitle(stream),
			Language: knownISO3(stream.Language),
		})
	}

	subtitles := inv.Subtitles()
	switch {
	case sel.SubtitleIndex != nil:
		directives = append(directives, PrimarySubtitle{Stream: *sel.SubtitleIndex, Slot: 0})
		others := slices.DeleteFunc(slices.Clone(subtitles), func(s inventory.StreamDescriptor) bool {
			return s.Index == *sel.SubtitleIndex
		})
		directives = appendSubtitleLadder(directives, capped(others, limit), 1, true)
	case sel.ExternalSubtitle != "":
		p.Inputs = append(p.Inputs, sel.ExternalSubtitle)
		directives = append(directives, ExternalSubtitle{
			Input:    1,
			Slot:     0,
			Language: knownISO3(language.FromFileName(filepath.Base(sel.ExternalSubtitle))),
		})
	default:
		directives = appendSubtitleLadder(directives, capped(subtitles, limit), 0, false)
	}

	p.Outputs = append(p.Outputs, Output{Path: req.OutputPath, Directives: directives})

	if req.SidecarPath != "" && sel.SubtitleIndex != nil {
		if primary, ok := inv.Stream(*sel.SubtitleIndex); ok && IsTextSubtitle(primary.CodecName) {
			p.Outputs = append(p.Outputs, Output{
				Path:       req.SidecarPath,
				Directives: []Directive{ExtractSubtitle{Stream: primary.Index}},
			})
		}
	}
	return p
}

// IsTextSubtitle reports whether a subtitle codec can be written as SubRip.
func IsTextSubtitle(codec string) bool {
	return slices.Contains(textSubtitleCodecs, strings.ToLower(strings.TrimSpace(codec)))
}

// MediaPath returns the primary output path.
func (p Plan) MediaPath() string {
	if len(p.Outputs) == 0 {
		return ""
	}
	return p.Outputs[0].Path
}

// SidecarPath returns the extracted subtitle path, or empty when none is planned.
func (p Plan) SidecarPath() string {
	if len(p.Outputs) < 2 {
		return ""
	}
	return p.Outputs[1].Path
}

// AudioTrackCount returns the number of audio tracks in the media output.
func (p Plan) AudioTrackCount() int {
	return p.count(KindNormalizedAudio, KindPassthroughAudio)
}

// SubtitleTrackCount returns the number of subtitle tracks in the media output.
func (p Plan) SubtitleTrackCount() int {
	return p.count(KindPrimarySubtitle, KindPassthroughSubtitle, KindExternalSubtitle)
}

func (p Plan) count(kinds ...DirectiveKind) int {
	if len(p.Outputs) == 0 {
		return 0
	}
	n := 0
	for _, d := range p.Outputs[0].Directives {
		if slices.Contains(kinds, d.Kind()) {
			n++
		}
	}
	return n
}

func appendSubtitleLadder(directives []Directive, streams []inventory.StreamDescriptor, firstSlot int, clearDefault bool) []Directive {
	for i, stream := range streams {
		directives = append(directives, PassthroughSubtitle{
			Stream:       stream.Index,
			Slot:         firstSlot + i,
			ClearDefault: clearDefault,
		})
	}
	return directives
}

func capped(streams []inventory.StreamDescriptor, limit int) []inventory.StreamDescriptor {
	if len(streams) > limit {
		return streams[:limit]
	}
	return streams
}

func passthroughTitle(stream inventory.StreamDescriptor) string {
	if stream.Title != "" {
		return stream.Title
	}
	codec := strings.ToUpper(stream.CodecName)
	if codec == "" {
		return ""
	}
	if stream.Channels > 0 {
		return fmt.Sprintf("%s %dch", codec, stream.Channels)
	}
	return codec
}

func knownISO3(code string) string {
	if code == "" {
		return ""
	}
	iso3 := language.ToISO3(code)
	if iso3 == language.Undetermined {
		return ""
	}
	return iso3
}

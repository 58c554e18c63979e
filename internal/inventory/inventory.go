package inventory

import (
	"context"
	"strings"

	"tvconvert/internal/media/ffprobe"
	"tvconvert/internal/services"
)

// Kind classifies a stream for selection and planning.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindOther    Kind = "other"
)

// StreamDescriptor is the typed view of one probed stream. Index is the
// container index reported by the prober and is not necessarily contiguous.
type StreamDescriptor struct {
	Index     int
	Kind      Kind
	CodecName string
	Language  string
	Title     string
	Channels  int
	Default   bool
	Forced    bool
}

// Inventory lists the streams of a source file in probe order.
type Inventory struct {
	Streams         []StreamDescriptor
	DurationSeconds float64
}

// Prober inspects a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

// FFprobe is the Prober backed by an ffprobe binary.
type FFprobe struct {
	Binary string
}

// Probe runs ffprobe against path.
func (p FFprobe) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.Binary, path)
}

// Read probes path and converts the report into an Inventory. Probe failures
// are marked services.ErrProbe.
func Read(ctx context.Context, prober Prober, path string) (Inventory, error) {
	result, err := prober.Probe(ctx, path)
	if err != nil {
		return Inventory{}, services.Wrap(services.ErrProbe, "inventory", "probe", "Failed to read stream inventory of "+path, err)
	}
	return FromResult(result), nil
}

// FromResult converts a decoded probe report.
func FromResult(result ffprobe.Result) Inventory {
	inv := Inventory{
		Streams:         make([]StreamDescriptor, 0, len(result.Streams)),
		DurationSeconds: result.DurationSeconds(),
	}
	for _, stream := range result.Streams {
		desc := StreamDescriptor{
			Index:     stream.Index,
			Kind:      kindOf(stream.CodecType),
			CodecName: strings.TrimSpace(stream.CodecName),
			Language:  strings.TrimSpace(stream.Tags.Language),
			Title:     strings.TrimSpace(stream.Tags.Title),
			Default:   stream.Disposition.Default != 0,
			Forced:    stream.Disposition.Forced != 0,
		}
		if desc.Kind == KindAudio && stream.Channels > 0 {
			desc.Channels = stream.Channels
		}
		inv.Streams = append(inv.Streams, desc)
	}
	return inv
}

func kindOf(codecType string) Kind {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case ffprobe.CodecTypeVideo:
		return KindVideo
	case ffprobe.CodecTypeAudio:
		return KindAudio
	case ffprobe.CodecTypeSubtitle:
		return KindSubtitle
	default:
		return KindOther
	}
}

// Video returns the video streams in probe order.
func (inv Inventory) Video() []StreamDescriptor { return inv.ofKind(KindVideo) }

// Audio returns the audio streams in probe order.
func (inv Inventory) Audio() []StreamDescriptor { return inv.ofKind(KindAudio) }

// Subtitles returns the subtitle streams in probe order.
func (inv Inventory) Subtitles() []StreamDescriptor { return inv.ofKind(KindSubtitle) }

// Stream looks up a stream by container index.
func (inv Inventory) Stream(index int) (StreamDescriptor, bool) {
	for _, s := range inv.Streams {
		if s.Index == index {
			return s, true
		}
	}
	return StreamDescriptor{}, false
}

func (inv Inventory) ofKind(kind Kind) []StreamDescriptor {
	var out []StreamDescriptor
	for _, s := range inv.Streams {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

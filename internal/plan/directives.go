package plan

// DirectiveKind tags a Directive variant.
type DirectiveKind string

const (
	KindCopyVideo           DirectiveKind = "copy_video"
	KindNormalizedAudio     DirectiveKind = "normalized_audio"
	KindPassthroughAudio    DirectiveKind = "passthrough_audio"
	KindPrimarySubtitle     DirectiveKind = "primary_subtitle"
	KindPassthroughSubtitle DirectiveKind = "passthrough_subtitle"
	KindExternalSubtitle    DirectiveKind = "external_subtitle"
	KindExtractSubtitle     DirectiveKind = "extract_subtitle"
)

// Directive is one typed instruction for an output. The set of variants is
// closed; renderers switch on the concrete type.
type Directive interface {
	Kind() DirectiveKind
}

// CopyVideo copies a video stream into output video slot 0.
type CopyVideo struct {
	Input  int
	Stream int
}

// NormalizedAudio transcodes the primary audio stream into output audio slot 0
// with loudness normalization. Language is the ISO 639-2 code or empty.
type NormalizedAudio struct {
	Stream        int
	Slot          int
	Codec         string
	SampleRate    int
	Bitrate       string
	Channels      int
	LoudnessRange float64
	Title         string
	Language      string
}

// PassthroughAudio copies an audio stream unchanged into a non-default slot.
type PassthroughAudio struct {
	Stream   int
	Slot     int
	Title    string
	Language string
}

// PrimarySubtitle copies the chosen subtitle into slot 0 as the default track.
type PrimarySubtitle struct {
	Stream int
	Slot   int
}

// PassthroughSubtitle copies a subtitle stream. ClearDefault is set when a
// primary occupies slot 0; otherwise the source disposition is left alone.
type PassthroughSubtitle struct {
	Stream       int
	Slot         int
	ClearDefault bool
}

// ExternalSubtitle maps the first subtitle stream of an extra input file into
// slot 0 as the default track.
type ExternalSubtitle struct {
	Input    int
	Slot     int
	Language string
}

// ExtractSubtitle writes a subtitle stream to its own sidecar output.
type ExtractSubtitle struct {
	Stream int
}

func (CopyVideo) Kind() DirectiveKind           { return KindCopyVideo }
func (NormalizedAudio) Kind() DirectiveKind     { return KindNormalizedAudio }
func (PassthroughAudio) Kind() DirectiveKind    { return KindPassthroughAudio }
func (PrimarySubtitle) Kind() DirectiveKind     { return KindPrimarySubtitle }
func (PassthroughSubtitle) Kind() DirectiveKind { return KindPassthroughSubtitle }
func (ExternalSubtitle) Kind() DirectiveKind    { return KindExternalSubtitle }
func (ExtractSubtitle) Kind() DirectiveKind     { return KindExtractSubtitle }

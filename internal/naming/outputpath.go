package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"tvconvert/internal/textutil"
)

// Bucket is the routing folder a finished target lands in.
type Bucket string

const (
	BucketNone                   Bucket = ""
	BucketReady                  Bucket = "ready"
	BucketExternalSubtitleNeeded Bucket = "external_subtitle_needed"
)

// Layout holds the output tree settings shared by every target in a run.
type Layout struct {
	Root            string
	Extension       string
	RouteBySubtitle bool
	MovieFolders    bool
}

// BucketFor returns the routing bucket for a target depending on whether a
// primary subtitle (in-container or external) was resolved.
func (l Layout) BucketFor(subtitleResolved bool) Bucket {
	if !l.RouteBySubtitle {
		return BucketNone
	}
	if subtitleResolved {
		return BucketReady
	}
	return BucketExternalSubtitleNeeded
}

// Buckets lists every bucket the layout can route to.
func (l Layout) Buckets() []Bucket {
	if !l.RouteBySubtitle {
		return []Bucket{BucketNone}
	}
	return []Bucket{BucketReady, BucketExternalSubtitleNeeded}
}

// OutputPath builds the media container path for a target in a bucket. Every
// segment derived from metadata is sanitized on its own.
//
//	movie:   <root>/<bucket>/<Title (Year)>.<ext>
//	         <root>/<bucket>/<Title (Year)>/<Title (Year)>.<ext> with MovieFolders
//	episode: <root>/<bucket>/<Show>/Season XX/<Show - SXXEYY - Title>.<ext>
//	file:    <root>/<bucket>/<stem>.<ext>
func (l Layout) OutputPath(t Target, bucket Bucket) string {
	segments := []string{l.Root}
	if bucket != BucketNone {
		segments = append(segments, string(bucket))
	}
	name := textutil.SanitizePathSegment(t.IdentifyingName())
	switch t.Kind {
	case KindEpisode:
		segments = append(segments,
			textutil.SanitizePathSegment(t.Show),
			fmt.Sprintf("Season %02d", t.Season),
		)
	case KindMovie:
		if l.MovieFolders {
			segments = append(segments, name)
		}
	}
	segments = append(segments, name+"."+l.extension())
	return filepath.Join(segments...)
}

// Candidates returns every path the target may resolve to across buckets.
func (l Layout) Candidates(t Target) []string {
	buckets := l.Buckets()
	paths := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		paths = append(paths, l.OutputPath(t, bucket))
	}
	return paths
}

func (l Layout) extension() string {
	ext := strings.TrimPrefix(strings.TrimSpace(l.Extension), ".")
	if ext == "" {
		return "mkv"
	}
	return ext
}

// SidecarPath derives a subtitle sidecar path next to a media output:
// <dir>/<base>.<lang>.srt, or <dir>/<base>.srt when language is empty.
func SidecarPath(mediaPath, language string) string {
	dir := filepath.Dir(mediaPath)
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	name := base
	if lang := textutil.SanitizeToken(language); lang != "" {
		name += "." + lang
	}
	return filepath.Join(dir, name+".srt")
}

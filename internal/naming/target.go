package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind distinguishes the metadata a target was declared with.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindEpisode Kind = "episode"
	KindFile    Kind = "file"
)

// Target describes one unit of work: the source file plus the descriptive
// metadata its output name is derived from.
type Target struct {
	Kind         Kind
	Title        string
	Year         int
	Show         string
	Season       int
	Episode      int
	EpisodeTitle string
	InputPath    string
}

// Movie builds a movie target.
func Movie(title string, year int, inputPath string) Target {
	return Target{Kind: KindMovie, Title: title, Year: year, InputPath: inputPath}
}

// Episode builds a TV episode target.
func Episode(show string, season, episode int, episodeTitle, inputPath string) Target {
	return Target{Kind: KindEpisode, Show: show, Season: season, Episode: episode, EpisodeTitle: episodeTitle, InputPath: inputPath}
}

// File builds a target named after its input file.
func File(inputPath string) Target {
	return Target{Kind: KindFile, InputPath: inputPath}
}

// EpisodeCode renders the SxxEyy code. Padding is a minimum width, so
// season 1 episode 100 renders as S01E100.
func EpisodeCode(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// IdentifyingName is the human label for the target and the unsanitized base
// name of its outputs.
func (t Target) IdentifyingName() string {
	switch t.Kind {
	case KindMovie:
		return fmt.Sprintf("%s (%d)", strings.TrimSpace(t.Title), t.Year)
	case KindEpisode:
		name := fmt.Sprintf("%s - %s", strings.TrimSpace(t.Show), EpisodeCode(t.Season, t.Episode))
		if title := strings.TrimSpace(t.EpisodeTitle); title != "" {
			name += " - " + title
		}
		return name
	default:
		base := filepath.Base(t.InputPath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return t.IdentifyingName()
}

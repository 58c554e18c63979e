package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"tvconvert/internal/naming"
	"tvconvert/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains external binaries and directory configuration.
type Paths struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	OutputDir     string `toml:"output_dir"`
	LogDir        string `toml:"log_dir"`
}

// Movie declares a movie conversion target.
type Movie struct {
	Title     string `toml:"title"`
	Year      int    `toml:"year"`
	InputFile string `toml:"input_file"`
}

// Episode declares a TV episode conversion target.
type Episode struct {
	Show         string `toml:"show"`
	Season       int    `toml:"season"`
	Episode      int    `toml:"episode"`
	EpisodeTitle string `toml:"episode_title"`
	InputFile    string `toml:"input_file"`
}

// Output contains configuration for the output tree and operator display.
type Output struct {
	Container       string `toml:"container"`
	RouteBySubtitle bool   `toml:"route_by_subtitle"`
	MovieFolders    bool   `toml:"movie_folders"`
	ExtractSubtitle bool   `toml:"extract_subtitle"`
	Overwrite       bool   `toml:"overwrite"`
	ProgressStyle   string `toml:"progress_style"`
}

// Audio contains the transcoding profile for the primary normalized track.
type Audio struct {
	Codec         string  `toml:"codec"`
	SampleRate    int     `toml:"sample_rate"`
	Bitrate       string  `toml:"bitrate"`
	Channels      int     `toml:"channels"`
	LoudnessRange float64 `toml:"loudness_range"`
	Title         string  `toml:"title"`
}

// Plan contains limits applied while synthesizing the track layout.
type Plan struct {
	// LadderLimit caps the passthrough audio and subtitle ladders.
	LadderLimit int `toml:"ladder_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format         string  `toml:"format"`
	Level          string  `toml:"level"`
	Stderr         bool    `toml:"stderr"`
	ProgressBucket float64 `toml:"progress_bucket"`
}

// History contains configuration for the run ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for tvconvert.
//
// Configuration sections:
//   - Paths: ffmpeg/ffprobe binaries plus the output and log directories
//   - Inputs, Movies, Episodes: the conversion targets, in that order
//   - Output: container, bucket routing, sidecar extraction, progress display
//   - Audio: the normalized primary audio profile
//   - Plan: passthrough ladder limits
//   - Logging: log format and level
//   - History: the SQLite run ledger
type Config struct {
	Inputs   []string  `toml:"inputs"`
	Paths    Paths     `toml:"paths"`
	Movies   []Movie   `toml:"movies"`
	Episodes []Episode `toml:"episodes"`
	Output   Output    `toml:"output"`
	Audio    Audio     `toml:"audio"`
	Plan     Plan      `toml:"plan"`
	Logging  Logging   `toml:"logging"`
	History  History   `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("%w: open config: %w", services.ErrConfiguration, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("%w: parse config %s: %w", services.ErrConfiguration, resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("%w: config file %s does not exist", services.ErrConfiguration, expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, log, and history directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Targets returns every configured conversion target: bare inputs first, then
// movies, then episodes, each in declaration order.
func (c *Config) Targets() []naming.Target {
	targets := make([]naming.Target, 0, len(c.Inputs)+len(c.Movies)+len(c.Episodes))
	for _, input := range c.Inputs {
		targets = append(targets, naming.File(input))
	}
	for _, m := range c.Movies {
		targets = append(targets, naming.Movie(m.Title, m.Year, m.InputFile))
	}
	for _, e := range c.Episodes {
		targets = append(targets, naming.Episode(e.Show, e.Season, e.Episode, e.EpisodeTitle, e.InputFile))
	}
	return targets
}

// Layout returns the output tree settings derived from the output section.
func (c *Config) Layout() naming.Layout {
	return naming.Layout{
		Root:            c.Paths.OutputDir,
		Extension:       c.Output.Container,
		RouteBySubtitle: c.Output.RouteBySubtitle,
		MovieFolders:    c.Output.MovieFolders,
	}
}

// LockPath returns the advisory lock file guarding the output root.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, lockFileName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// expandBinary resolves binaries given as paths and leaves bare command names
// for PATH lookup.
func expandBinary(value string) (string, error) {
	if !strings.ContainsAny(value, `/\`) && !strings.HasPrefix(value, "~") {
		return value, nil
	}
	return expandPath(value)
}

// SampleConfig returns the embedded example configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

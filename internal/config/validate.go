package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tvconvert/internal/services"
)

var allowedContainers = []string{"mkv", "mka", "mp4", "mov", "webm"}

// currentYear is replaced in tests to pin the movie year window.
var currentYear = func() int { return time.Now().Year() }

// Validate ensures the configuration is usable. Failures are marked with
// services.ErrConfiguration.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validatePaths,
		c.validateTargets,
		c.validateOutput,
		c.validateAudio,
		c.validatePlan,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.FFmpegBinary == "" {
		return errors.New("paths.ffmpeg_binary must be set")
	}
	if c.Paths.FFprobeBinary == "" {
		return errors.New("paths.ffprobe_binary must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTargets() error {
	for i, input := range c.Inputs {
		if input == "" {
			return fmt.Errorf("inputs[%d] must be set", i)
		}
	}
	maxYear := currentYear() + 1
	for i, m := range c.Movies {
		if m.Title == "" {
			return fmt.Errorf("movies[%d].title must be set", i)
		}
		if m.Year < minMovieYear || m.Year > maxYear {
			return fmt.Errorf("movies[%d].year must be between %d and %d", i, minMovieYear, maxYear)
		}
		if m.InputFile == "" {
			return fmt.Errorf("movies[%d].input_file must be set", i)
		}
	}
	for i, e := range c.Episodes {
		if e.Show == "" {
			return fmt.Errorf("episodes[%d].show must be set", i)
		}
		if e.Season < 0 {
			return fmt.Errorf("episodes[%d].season must be >= 0", i)
		}
		if e.Episode < 0 {
			return fmt.Errorf("episodes[%d].episode must be >= 0", i)
		}
		if e.InputFile == "" {
			return fmt.Errorf("episodes[%d].input_file must be set", i)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !slices.Contains(allowedContainers, c.Output.Container) {
		return fmt.Errorf("output.container must be one of %s (got %q)", strings.Join(allowedContainers, ", "), c.Output.Container)
	}
	switch c.Output.ProgressStyle {
	case "lines", "bar":
	default:
		return fmt.Errorf("output.progress_style must be lines or bar (got %q)", c.Output.ProgressStyle)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	if c.Audio.LoudnessRange < 1 || c.Audio.LoudnessRange > 50 {
		return errors.New("audio.loudness_range must be between 1 and 50")
	}
	return nil
}

func (c *Config) validatePlan() error {
	if c.Plan.LadderLimit < 1 || c.Plan.LadderLimit > maxLadderLimit {
		return fmt.Errorf("plan.ladder_limit must be between 1 and %d", maxLadderLimit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if c.Logging.ProgressBucket > 100 {
		return errors.New("logging.progress_bucket must be at most 100")
	}
	return nil
}

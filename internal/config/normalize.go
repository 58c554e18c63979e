package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTargets(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeAudio()
	c.normalizeLogging()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.FFmpegBinary = binaryOrEnv(c.Paths.FFmpegBinary, defaultFFmpegBinary, "TVCONVERT_FFMPEG")
	if c.Paths.FFmpegBinary, err = expandBinary(c.Paths.FFmpegBinary); err != nil {
		return fmt.Errorf("paths.ffmpeg_binary: %w", err)
	}
	c.Paths.FFprobeBinary = binaryOrEnv(c.Paths.FFprobeBinary, defaultFFprobeBinary, "TVCONVERT_FFPROBE")
	if c.Paths.FFprobeBinary, err = expandBinary(c.Paths.FFprobeBinary); err != nil {
		return fmt.Errorf("paths.ffprobe_binary: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// binaryOrEnv lets the environment override an unset or default binary. An
// explicit path in the config file wins.
func binaryOrEnv(value, fallback, envKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == fallback {
		if env, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(env) != "" {
			return strings.TrimSpace(env)
		}
	}
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizeTargets() error {
	var err error
	for i := range c.Inputs {
		if c.Inputs[i], err = expandPath(strings.TrimSpace(c.Inputs[i])); err != nil {
			return fmt.Errorf("inputs[%d]: %w", i, err)
		}
	}
	for i := range c.Movies {
		m := &c.Movies[i]
		m.Title = strings.TrimSpace(m.Title)
		if m.InputFile, err = expandPath(strings.TrimSpace(m.InputFile)); err != nil {
			return fmt.Errorf("movies[%d].input_file: %w", i, err)
		}
	}
	for i := range c.Episodes {
		e := &c.Episodes[i]
		e.Show = strings.TrimSpace(e.Show)
		e.EpisodeTitle = strings.TrimSpace(e.EpisodeTitle)
		if e.InputFile, err = expandPath(strings.TrimSpace(e.InputFile)); err != nil {
			return fmt.Errorf("episodes[%d].input_file: %w", i, err)
		}
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Container = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Output.Container), "."))
	if c.Output.Container == "" {
		c.Output.Container = defaultContainer
	}
	c.Output.ProgressStyle = strings.ToLower(strings.TrimSpace(c.Output.ProgressStyle))
	if c.Output.ProgressStyle == "" {
		c.Output.ProgressStyle = defaultProgressStyle
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Codec = strings.TrimSpace(c.Audio.Codec)
	if c.Audio.Codec == "" {
		c.Audio.Codec = defaultAudioCodec
	}
	c.Audio.Bitrate = strings.TrimSpace(c.Audio.Bitrate)
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = defaultAudioBitrate
	}
	c.Audio.Title = strings.TrimSpace(c.Audio.Title)
	if c.Audio.Title == "" {
		c.Audio.Title = defaultAudioTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.ProgressBucket <= 0 {
		c.Logging.ProgressBucket = defaultProgressBucket
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.Paths.LogDir, historyFileName)
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

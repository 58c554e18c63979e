package config

const (
	defaultConfigPath      = "~/.config/tvconvert/config.toml"
	projectConfigName      = "tvconvert.toml"
	lockFileName           = ".tvconvert.lock"
	historyFileName        = "history.db"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultOutputDir       = "converted"
	defaultLogDir          = "~/.local/share/tvconvert/logs"
	defaultContainer       = "mkv"
	defaultProgressStyle   = "lines"
	defaultAudioCodec      = "aac"
	defaultAudioSampleRate = 48000
	defaultAudioBitrate    = "256k"
	defaultAudioChannels   = 2
	defaultLoudnessRange   = 10
	defaultAudioTitle      = "AAC 2.0 (normalized)"
	defaultLadderLimit     = 100
	maxLadderLimit         = 1000
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultProgressBucket  = 5
	minMovieYear           = 1888
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			OutputDir:     defaultOutputDir,
			LogDir:        defaultLogDir,
		},
		Output: Output{
			Container:       defaultContainer,
			RouteBySubtitle: true,
			ExtractSubtitle: true,
			ProgressStyle:   defaultProgressStyle,
		},
		Audio: Audio{
			Codec:         defaultAudioCodec,
			SampleRate:    defaultAudioSampleRate,
			Bitrate:       defaultAudioBitrate,
			Channels:      defaultAudioChannels,
			LoudnessRange: defaultLoudnessRange,
			Title:         defaultAudioTitle,
		},
		Plan: Plan{
			LadderLimit: defaultLadderLimit,
		},
		Logging: Logging{
			Format:         defaultLogFormat,
			Level:          defaultLogLevel,
			ProgressBucket: defaultProgressBucket,
		},
		History: History{
			Enabled: true,
		},
	}
}

// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: index, codec, channel count, and language/title tags
//   - Format: container-level metadata (duration, stream count)
//
// Inspect executes ffprobe and returns the parsed Result; Parse decodes a
// payload that was captured elsewhere.
package ffprobe

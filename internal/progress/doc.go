// Package progress parses the engine's machine-readable status stream
// (ffmpeg -progress) and turns it into debounced percentage updates.
package progress

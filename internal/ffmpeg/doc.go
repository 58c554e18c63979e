// Package ffmpeg renders conversion plans into ffmpeg argument lists and runs
// the engine.
//
// RenderArgs is the only place that knows ffmpeg flag syntax. Runner starts
// the process, feeds its -progress stream through internal/progress on one
// goroutine, and tees stderr into a diagnostics buffer on another.
package ffmpeg

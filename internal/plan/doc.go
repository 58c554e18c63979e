// Package plan derives the typed conversion recipe for a target.
//
// Build turns an inventory plus the operator's selection into a Plan: video
// copied as is, the chosen audio transcoded into a normalized default track,
// every audio stream carried along as a compacted passthrough ladder, and the
// subtitle layout implied by the subtitle choice. Plans contain no engine
// syntax; internal/ffmpeg renders them into an argument list.
package plan

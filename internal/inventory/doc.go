// Package inventory turns a probe report into typed stream descriptors.
//
// Descriptors keep the probe order and the container-assigned stream index,
// which is what every later stage (selection, planning, argument rendering)
// refers to. Streams that are neither video, audio, nor subtitle are kept with
// KindOther so indices stay meaningful, but never take part in selection.
package inventory

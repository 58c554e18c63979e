// Package testsupport holds helpers shared by package tests: temp-dir backed
// configs, POSIX shell stand-ins for ffmpeg and ffprobe, and scripted
// operator answers.
package testsupport

// Package naming derives identifying names and output paths for conversion
// targets.
//
// Names follow "{Title} ({Year})" for movies and
// "{Show} - SXXEYY - {Episode Title}" for episodes. Output paths are built
// segment by segment through textutil so titles containing separators never
// create extra directories, and the same metadata always yields the same path.
package naming

// Package textutil provides text helpers for building filesystem-safe names.
//
// SanitizePathSegment is applied to one path component at a time; callers join
// the cleaned segments themselves so separators in titles never create
// directories.
package textutil

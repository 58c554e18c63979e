// Package language provides language code normalization and display names.
//
// Container tags carry ISO 639-1, ISO 639-2/T, ISO 639-2/B, or plain English
// words; every conversion used for track metadata, sidecar subtitle names, and
// selection tables goes through here. Lookups are backed by
// golang.org/x/text/language with a small alias table for bibliographic codes.
package language

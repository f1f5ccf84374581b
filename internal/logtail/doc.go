// Package logtail reads the end of Stargazer's log file for the log overlay.
//
// # Reading
//
// Read keeps a ring buffer of maxLines while scanning the file once, so
// memory is O(maxLines) regardless of file size. Lines come back oldest
// first. A missing file is not an error; it just means nothing was logged
// yet.
//
// # Parsing
//
// The logging package writes slog's text format:
//
//	time="2025-10-08 21:01:05" level=INFO msg="cycle complete" service=stargazer cycle=1a2b3c4d
//
// ParseLine splits that into an Entry (time, level, message, remaining
// attributes). Quoted values are unquoted with strconv. Anything that does
// not look like key=value pairs, such as a panic trace, is kept verbatim as
// the message. Entry.Format renders the compact form the overlay shows; the
// UI adds colour by level.
package logtail

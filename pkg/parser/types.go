// Package parser provides log file reading for access logs.
package parser

import "time"

// ParsedLine represents a single log line with extracted metadata.
type ParsedLine struct {
	// Raw is the original line content.
	Raw string

	// Timestamp is the request time parsed from the line.
	// It is the zero time when the line carries no recognizable timestamp.
	Timestamp time.Time

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// HasTimestamp reports whether a timestamp was parsed from the line.
func (l *ParsedLine) HasTimestamp() bool {
	return !l.Timestamp.IsZero()
}

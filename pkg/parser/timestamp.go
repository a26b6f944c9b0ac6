package parser

import (
	"fmt"
	"regexp"
	"time"
)

// Apache common/combined log timestamp, e.g. [06/Aug/2007:00:13:48 -0700].
const (
	ApacheTimestampPattern = `\[(\d{2}/[A-Za-z]{3}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})\]`
	ApacheTimestampLayout  = "02/Jan/2006:15:04:05 -0700"
)

// TimestampExtractor extracts and parses timestamps from log lines.
type TimestampExtractor struct {
	pattern *regexp.Regexp
	layout  string
}

// NewTimestampExtractor creates a new timestamp extractor.
func NewTimestampExtractor(pattern *regexp.Regexp, layout string) *TimestampExtractor {
	return &TimestampExtractor{
		pattern: pattern,
		layout:  layout,
	}
}

// NewApacheTimestampExtractor returns an extractor for Apache access log timestamps.
func NewApacheTimestampExtractor() *TimestampExtractor {
	return NewTimestampExtractor(regexp.MustCompile(ApacheTimestampPattern), ApacheTimestampLayout)
}

// Extract attempts to extract and parse a timestamp from a log line.
// Returns zero time and error if the pattern doesn't match or parsing fails.
func (e *TimestampExtractor) Extract(line string) (time.Time, error) {
	matches := e.pattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return time.Time{}, fmt.Errorf("timestamp pattern did not match")
	}

	tsStr := matches[1]

	ts, err := time.Parse(e.layout, tsStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", tsStr, err)
	}

	return ts, nil
}

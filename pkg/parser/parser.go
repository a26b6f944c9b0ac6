package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single log line; longer lines fail the scan.
const maxLineSize = 1024 * 1024

// FileSource implements LogSource for reading from log files.
// Every line is returned, whether or not it carries a timestamp.
type FileSource struct {
	files     []string
	extractor *TimestampExtractor

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a LogSource that reads from the given files in order.
// A nil extractor disables timestamp parsing.
func NewFileSource(files []string, extractor *TimestampExtractor) *FileSource {
	return &FileSource{
		files:     files,
		extractor: extractor,
		fileIndex: -1,
	}
}

// Next returns the next log line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*ParsedLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			line := &ParsedLine{
				Raw:     s.currentScanner.Text(),
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}

			if s.extractor != nil {
				if ts, err := s.extractor.Extract(line.Raw); err == nil {
					line.Timestamp = ts
				}
			}

			return line, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, &ReadError{Path: s.currentSource, Err: err}
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}

// ReadError reports a log file that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading log file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

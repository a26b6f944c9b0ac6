package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/logpuzzle/pkg/parser"
)

const sampleLog = `10.254.254.28 - - [06/Aug/2007:00:13:48 -0700] "GET /edu/languages/google-python-class/images/puzzle/p-bbvd-bajc.jpg HTTP/1.0" 302 528 "-" "Mozilla/5.0"
10.254.254.58 - - [06/Aug/2007:00:14:08 -0700] "GET /foo/bar.html HTTP/1.0" 200 1000 "-" "Mozilla/5.0"
10.254.254.28 - - [06/Aug/2007:00:14:20 -0700] "GET /edu/languages/google-python-class/images/puzzle/p-bbvd-baaa.jpg HTTP/1.0" 302 528 "-" "Mozilla/5.0"
10.126.10.11 - - [06/Aug/2007:00:15:03 -0700] "GET /edu/languages/google-python-class/images/puzzle/p-bbvd-bajc.jpg HTTP/1.0" 302 528 "-" "Mozilla/5.0"
10.126.10.11 - - [06/Aug/2007:00:15:09 -0700] "GET /images/logo.jpg HTTP/1.0" 200 4000 "-" "Mozilla/5.0"
10.126.10.11 - - [06/Aug/2007:00:15:20 -0700] "GET /edu/languages/google-python-class/images/puzzle/p-bbvd-bahb.jpg?x HTTP/1.0" 302 528 "-" "Mozilla/5.0"
`

func TestExtract_Example(t *testing.T) {
	got := New().Extract(`1.2.3.4 - - [06/Aug/2007:00:13:48 -0700] "GET /puzzle/p-aaab.jpg HTTP/1.0" 302 528`)
	want := []string{"http://code.google.com/puzzle/p-aaab.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_NoMatches(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no GET", "POST /puzzle/p-aaaa.jpg HTTP/1.0"},
		{"no marker", "GET /images/p-aaaa.jpg HTTP/1.0"},
		{"wrong extension", "GET /puzzle/p-aaaa.png HTTP/1.0"},
		{"extension not at end", "GET /puzzle/p-aaaa.jpg.html HTTP/1.0"},
		{"no space after GET", "GET/puzzle/p-aaaa.jpg HTTP/1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Extract(tt.text)
			if got == nil {
				t.Fatal("Extract() returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("Extract() = %v, want empty", got)
			}
		})
	}
}

func TestExtract_Deduplicates(t *testing.T) {
	line := "GET /puzzle/p-aaaa.jpg HTTP/1.0\n"
	got := New().Extract(strings.Repeat(line, 5))
	if len(got) != 1 {
		t.Errorf("Extract() returned %d URLs, want 1: %v", len(got), got)
	}
}

func TestExtract_SortsByKey(t *testing.T) {
	text := `GET /puzzle/z-aaab.jpg HTTP/1.0
GET /puzzle/a-aaaa.jpg HTTP/1.0
GET /puzzle/m-aaac.jpg HTTP/1.0
`
	got := New().Extract(text)
	want := []string{
		"http://code.google.com/puzzle/a-aaaa.jpg",
		"http://code.google.com/puzzle/z-aaab.jpg",
		"http://code.google.com/puzzle/m-aaac.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_KeyIgnoresLeadingPath(t *testing.T) {
	// Sort key is the trailing word, not the whole URL.
	text := "GET /puzzle/p-bbbb-aaaa.jpg x\nGET /puzzle/p-aaaa-bbbb.jpg x\n"
	got := New().Extract(text)
	if len(got) != 2 || !strings.HasSuffix(got[0], "bbbb-aaaa.jpg") {
		t.Errorf("Extract() = %v, want bbbb-aaaa first", got)
	}
}

func TestExtract_EqualKeysDeterministic(t *testing.T) {
	text := "GET /puzzle/b-aaaa.jpg x\nGET /puzzle/a-aaaa.jpg x\n"
	first := New().Extract(text)
	for i := 0; i < 10; i++ {
		if got := New().Extract(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract() = %v, want %v", got, first)
		}
	}
}

func TestExtract_Options(t *testing.T) {
	e := New(
		WithHost("https://example.com/"),
		WithPathMarker("/tiles/"),
		WithExtension(".png"),
		WithKeyLength(2),
	)
	got := e.Extract("GET /tiles/x-ab.png x\nGET /tiles/x-aa.png x\nGET /puzzle/x-aaaa.jpg x\n")
	want := []string{
		"http://example.com/tiles/x-aa.png",
		"http://example.com/tiles/x-ab.png",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestSortKey(t *testing.T) {
	e := New()
	tests := []struct {
		url  string
		want string
	}{
		{"http://code.google.com/puzzle/p-aaab.jpg", "aaab"},
		{"http://code.google.com/puzzle/p-bbvd-bajc.jpg", "bajc"},
		{"ab.jpg", "ab"},
	}
	for _, tt := range tests {
		if got := e.SortKey(tt.url); got != tt.want {
			t.Errorf("SortKey(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCollect_Stats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animal_code.google.com")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}

	src := parser.NewFileSource([]string{path}, parser.NewApacheTimestampExtractor())
	defer src.Close()

	result, err := New().Collect(context.Background(), src)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if result.LinesScanned != 6 {
		t.Errorf("LinesScanned = %d, want 6", result.LinesScanned)
	}
	if result.Matches != 3 {
		t.Errorf("Matches = %d, want 3", result.Matches)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("len(Hits) = %d, want 2", len(result.Hits))
	}

	first := result.Hits[0]
	if first.Key != "baaa" {
		t.Errorf("first key = %q, want baaa", first.Key)
	}
	second := result.Hits[1]
	if second.Key != "bajc" || second.Requests != 2 {
		t.Errorf("second hit = %+v, want key bajc with 2 requests", second)
	}
	if second.LineNum != 1 || second.Source != path {
		t.Errorf("second hit first seen at %s:%d, want %s:1", second.Source, second.LineNum, path)
	}
	want := time.Date(2007, 8, 6, 7, 13, 48, 0, time.UTC)
	if !second.FirstSeen.Equal(want) {
		t.Errorf("FirstSeen = %v, want %v", second.FirstSeen, want)
	}
}

func TestReadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := New().ReadURLs(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadURLs() error = %v", err)
	}
	want := []string{
		"http://code.google.com/edu/languages/google-python-class/images/puzzle/p-bbvd-baaa.jpg",
		"http://code.google.com/edu/languages/google-python-class/images/puzzle/p-bbvd-bajc.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadURLs() = %v, want %v", got, want)
	}
}

func TestReadURLs_MatchesExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := New().ReadURLs(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadURLs() error = %v", err)
	}
	if fromText := New().Extract(sampleLog); !reflect.DeepEqual(fromFile, fromText) {
		t.Errorf("ReadURLs() = %v, Extract() = %v", fromFile, fromText)
	}
}

func TestReadURLs_MissingFile(t *testing.T) {
	_, err := New().ReadURLs(context.Background(), "/nonexistent/access.log")

	var accessErr *FileAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("ReadURLs() error = %v, want *FileAccessError", err)
	}
	if accessErr.Path != "/nonexistent/access.log" {
		t.Errorf("Path = %q", accessErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestReadURLs_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := New().ReadURLs(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadURLs() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadURLs() = %v, want empty", got)
	}
}

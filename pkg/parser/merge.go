package parser

import (
	"container/heap"
	"context"
	"io"
)

// MergedSource combines multiple LogSources into a single stream
// ordered by timestamp (oldest first). Lines with equal timestamps,
// including lines without one, keep the order of their sources.
type MergedSource struct {
	sources     []LogSource
	heap        *lineHeap
	initialized bool
}

// NewMergedSource creates a LogSource that merges multiple sources by timestamp.
func NewMergedSource(sources ...LogSource) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &lineHeap{},
	}
}

// Next returns the next log line in timestamp order across all sources.
// Returns io.EOF when all sources are exhausted.
func (m *MergedSource) Next(ctx context.Context) (*ParsedLine, error) {
	if !m.initialized {
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
		m.initialized = true
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)
	line := item.line

	// Refill from the same source
	if nextLine, err := m.sources[item.sourceIdx].Next(ctx); err == nil {
		heap.Push(m.heap, &heapItem{
			line:      nextLine,
			sourceIdx: item.sourceIdx,
		})
	} else if err != io.EOF {
		return nil, err
	}

	return line, nil
}

// initHeap reads the first line from each source to initialize the heap.
func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		line, err := src.Next(ctx)
		if err == io.EOF {
			continue
		}
		if err != nil {
			return err
		}

		heap.Push(m.heap, &heapItem{
			line:      line,
			sourceIdx: i,
		})
	}

	return nil
}

// Close releases all source resources.
func (m *MergedSource) Close() error {
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type heapItem struct {
	line      *ParsedLine
	sourceIdx int
}

type lineHeap []*heapItem

func (h lineHeap) Len() int { return len(h) }

func (h lineHeap) Less(i, j int) bool {
	if !h[i].line.Timestamp.Equal(h[j].line.Timestamp) {
		return h[i].line.Timestamp.Before(h[j].line.Timestamp)
	}
	return h[i].sourceIdx < h[j].sourceIdx
}

func (h lineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *lineHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *lineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// OpenSources builds a LogSource over files: a plain FileSource for a single
// file, a MergedSource otherwise.
func OpenSources(files []string, extractor *TimestampExtractor) LogSource {
	if len(files) == 1 {
		return NewFileSource(files, extractor)
	}
	sources := make([]LogSource, len(files))
	for i, file := range files {
		sources[i] = NewFileSource([]string{file}, extractor)
	}
	return NewMergedSource(sources...)
}

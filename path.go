package objpatch

import (
	"iter"
	"strings"
)

const pathSeparator = '/'

// EndOfSequence is the segment which addresses the end of a sequence.
const EndOfSequence = "-"

// Path is a parsed slash-delimited path. Empty segments are dropped.
type Path struct {
	raw string
}

func ParsePath(path string) Path {
	return Path{raw: path}
}

func (p Path) String() string {
	return p.raw
}

// Len returns the number of non-empty segments.
func (p Path) Len() int {
	n := 0
	it := p.Segments()
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// Segments returns a lazy iterator over the path.
func (p Path) Segments() *SegmentIterator {
	return &SegmentIterator{path: p.raw}
}

// All yields every segment in order.
func (p Path) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		it := p.Segments()
		for {
			seg, ok := it.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

type Segment struct {
	Value string
	Final bool
}

func (s Segment) String() string {
	return s.Value
}

// SegmentIterator scans a path string on demand.
type SegmentIterator struct {
	path string
	pos  int
}

func (it *SegmentIterator) Next() (Segment, bool) {
	start, end, ok := nextSegment(it.path, it.pos)
	if !ok {
		it.pos = len(it.path)
		return Segment{}, false
	}
	it.pos = end
	_, _, more := nextSegment(it.path, end)
	return Segment{Value: it.path[start:end], Final: !more}, true
}

// Reset rewinds the iterator to the first segment.
func (it *SegmentIterator) Reset() {
	it.pos = 0
}

// nextSegment finds the bounds of the first non-empty segment at or after pos.
func nextSegment(path string, pos int) (int, int, bool) {
	for pos < len(path) && path[pos] == pathSeparator {
		pos++
	}
	if pos >= len(path) {
		return 0, 0, false
	}
	end := strings.IndexByte(path[pos:], pathSeparator)
	if end < 0 {
		return pos, len(path), true
	}
	return pos, pos + end, true
}

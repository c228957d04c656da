package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides efficient incremental path construction.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // pre-calculated length for String() allocation
}

// Push adds a field-name segment to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
	if len(p.segments) > 1 {
		p.length++ // dot separator
	}
	p.length += len(segment)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	seg := "[" + strconv.Itoa(i) + "]"
	p.segments = append(p.segments, seg)
	p.length += len(seg)
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last)
	if len(p.segments) > 0 && !isIndex(last) {
		p.length--
	}
}

// Depth returns the number of segments currently on the path.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the full path.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	p.writeTo(&b)
	return b.String()
}

// Child returns the path of a named child of the current node without
// modifying the builder. Used for fields that are absent from the record.
func (p *PathBuilder) Child(name string) string {
	if len(p.segments) == 0 {
		return name
	}
	var b strings.Builder
	b.Grow(p.length + 1 + len(name))
	p.writeTo(&b)
	b.WriteByte('.')
	b.WriteString(name)
	return b.String()
}

func (p *PathBuilder) writeTo(b *strings.Builder) {
	b.WriteString(p.segments[0])
	for _, seg := range p.segments[1:] {
		if !isIndex(seg) {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
}

func isIndex(seg string) bool {
	return len(seg) > 0 && seg[0] == '['
}

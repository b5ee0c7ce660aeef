package models

import (
	"strconv"
	"strings"
)

// SegmentKind discriminates the three segment variants a Path is built from.
type SegmentKind int

const (
	// KeySegment is a mapping key (post-rewrite).
	KeySegment SegmentKind = iota
	// IndexSegment marks "this came from position Index of a sequence".
	// Indices keep their ordinal until the collapse stage folds them all
	// to position 0.
	IndexSegment
	// LabelSegment is the terminal type label of a path.
	LabelSegment
)

// Segment is one element of a Path: a mapping key, a sequence position, or
// the terminal type label.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
	Label string

	// Raw numeric value behind a numeric label, kept so the describer
	// stage can qualify labels that were extracted without one.
	Num    float64
	HasNum bool
}

// KeySeg returns a mapping-key segment.
func KeySeg(key string) Segment {
	return Segment{Kind: KeySegment, Key: key}
}

// IndexSeg returns a sequence-position segment.
func IndexSeg(i int) Segment {
	return Segment{Kind: IndexSegment, Index: i}
}

// LabelSeg returns a terminal type-label segment.
func LabelSeg(label string) Segment {
	return Segment{Kind: LabelSegment, Label: label}
}

// NumberSeg returns a terminal label segment carrying the numeric value it
// was derived from.
func NumberSeg(label string, value float64) Segment {
	return Segment{Kind: LabelSegment, Label: label, Num: value, HasNum: true}
}

// Equal reports structural equality. The raw numeric carrier is ignored:
// two labels compare by string, two indices by ordinal.
func (s Segment) Equal(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KeySegment:
		return s.Key == o.Key
	case IndexSegment:
		return s.Index == o.Index
	default:
		return s.Label == o.Label
	}
}

// Less imposes a total order across segments: first by kind, then keys and
// labels lexicographically, indices by ordinal.
func (s Segment) Less(o Segment) bool {
	if s.Kind != o.Kind {
		return s.Kind < o.Kind
	}
	switch s.Kind {
	case KeySegment:
		return s.Key < o.Key
	case IndexSegment:
		return s.Index < o.Index
	default:
		return s.Label < o.Label
	}
}

// String renders the segment for diagnostics.
func (s Segment) String() string {
	switch s.Kind {
	case KeySegment:
		return strconv.Quote(s.Key)
	case IndexSegment:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Label
	}
}

// appendCanonical writes an injective encoding of the segment, used as a
// map key when deduplicating paths.
func (s Segment) appendCanonical(b *strings.Builder) {
	switch s.Kind {
	case KeySegment:
		b.WriteString("k")
		b.WriteString(strconv.Quote(s.Key))
	case IndexSegment:
		b.WriteString("i")
		b.WriteString(strconv.Itoa(s.Index))
	default:
		b.WriteString("t")
		b.WriteString(strconv.Quote(s.Label))
	}
}

// Path is an ordered sequence of key or index segments terminated by exactly
// one type label.
type Path []Segment

// Equal reports element-wise structural equality.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !p[i].Equal(q[i]) {
			return false
		}
	}
	return true
}

// Less compares paths lexicographically by segment sequence; a strict
// prefix sorts before its extensions.
func (p Path) Less(q Path) bool {
	for i := range p {
		if i >= len(q) {
			return false
		}
		if p[i].Equal(q[i]) {
			continue
		}
		return p[i].Less(q[i])
	}
	return len(p) < len(q)
}

// Key returns an injective string encoding of the path, suitable for use as
// a dedup map key. Structurally equal paths produce identical keys.
func (p Path) Key() string {
	var b strings.Builder
	for _, s := range p {
		s.appendCanonical(&b)
	}
	return b.String()
}

// String renders the path for diagnostics, e.g. "users"/[0]/"id"/int.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// Child returns a new path with seg appended. The receiver is copied, so
// sibling recursions never alias each other's backing arrays.
func (p Path) Child(seg Segment) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = seg
	return next
}

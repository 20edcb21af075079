package gridpartition

import "strings"

// Box is an ordered collection of IndexIntervals representing a rectilinear
// region of an N-dimensional index space.
type Box struct {
	intervals []IndexInterval
}

// NewBox builds a Box from the given per-dimension intervals.
func NewBox(intervals ...IndexInterval) Box {
	cp := make([]IndexInterval, len(intervals))
	copy(cp, intervals)
	return Box{intervals: cp}
}

// BoxFromOriginShape builds a Box from parallel origin/shape slices.
func BoxFromOriginShape(origin, shape []Index) (Box, error) {
	if len(origin) != len(shape) {
		return Box{}, InvalidArgumentErrorf("origin/shape rank mismatch: %d != %d", len(origin), len(shape))
	}
	intervals := make([]IndexInterval, len(origin))
	for i := range origin {
		iv, err := NewIndexInterval(origin[i], shape[i])
		if err != nil {
			return Box{}, err
		}
		intervals[i] = iv
	}
	return Box{intervals: intervals}, nil
}

// Rank returns the number of dimensions in the box.
func (b Box) Rank() int { return len(b.intervals) }

// Interval returns the interval spanned by dimension d.
func (b Box) Interval(d int) IndexInterval { return b.intervals[d] }

// Intervals returns the box's per-dimension intervals; the returned slice
// must not be mutated by callers.
func (b Box) Intervals() []IndexInterval { return b.intervals }

// Origin returns the per-dimension origins.
func (b Box) Origin() []Index {
	out := make([]Index, len(b.intervals))
	for i, iv := range b.intervals {
		out[i] = iv.Origin()
	}
	return out
}

// Shape returns the per-dimension sizes.
func (b Box) Shape() []Index {
	out := make([]Index, len(b.intervals))
	for i, iv := range b.intervals {
		out[i] = iv.Size()
	}
	return out
}

// Empty reports whether any dimension of the box is empty.
func (b Box) Empty() bool {
	for _, iv := range b.intervals {
		if iv.Empty() {
			return true
		}
	}
	return false
}

// ContainsPoint reports whether pt lies within the box.
func (b Box) ContainsPoint(pt []Index) bool {
	if len(pt) != len(b.intervals) {
		return false
	}
	for i, iv := range b.intervals {
		if !iv.Contains(pt[i]) {
			return false
		}
	}
	return true
}

// Intersect returns the dimension-wise intersection of two boxes of equal
// rank.
func (b Box) Intersect(other Box) (Box, error) {
	if b.Rank() != other.Rank() {
		return Box{}, InvalidArgumentErrorf("box rank mismatch: %d != %d", b.Rank(), other.Rank())
	}
	out := make([]IndexInterval, b.Rank())
	for i := range out {
		out[i] = b.intervals[i].Intersect(other.intervals[i])
	}
	return Box{intervals: out}, nil
}

// WithInterval returns a copy of b with dimension d replaced by iv.
func (b Box) WithInterval(d int, iv IndexInterval) Box {
	out := make([]IndexInterval, len(b.intervals))
	copy(out, b.intervals)
	out[d] = iv
	return Box{intervals: out}
}

func (b Box) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, iv := range b.intervals {
		if i > 0 {
			sb.WriteString(" x ")
		}
		sb.WriteString(iv.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

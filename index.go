package gridpartition

import "fmt"

// Index is a signed coordinate wide enough to address any element of an
// index space. All arithmetic performed on Index values by this package is
// checked: overflow is reported as an error rather than silently wrapping.
type Index = int64

// negInfIndex and posInfIndex bound the representable index range at
// -(2^62) and 2^62, well inside the true int64 range, leaving headroom for
// offset/stride arithmetic to detect overflow before it wraps.
const (
	negInfIndex Index = -(1 << 62)
	posInfIndex Index = 1 << 62
)

// AddChecked returns a+b, or an error if the result would overflow the
// representable index range.
func AddChecked(a, b Index) (Index, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) || sum < negInfIndex || sum > posInfIndex {
		return 0, OutOfRangeErrorf("integer overflow adding %d + %d", a, b)
	}
	return sum, nil
}

// MulChecked returns a*b, or an error if the result would overflow the
// representable index range.
func MulChecked(a, b Index) (Index, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a || p < negInfIndex || p > posInfIndex {
		return 0, OutOfRangeErrorf("integer overflow multiplying %d * %d", a, b)
	}
	return p, nil
}

// AffineChecked computes offset + stride*value with overflow checking, the
// core arithmetic of every OutputIndexMap evaluation.
func AffineChecked(offset, stride, value Index) (Index, error) {
	p, err := MulChecked(stride, value)
	if err != nil {
		return 0, err
	}
	return AddChecked(offset, p)
}

// IndexInterval is the half-open range [origin, origin+size). Empty
// intervals (size == 0) are permitted and compare equal regardless of
// origin.
type IndexInterval struct {
	origin Index
	size   Index
}

// NewIndexInterval builds an interval, rejecting a negative size.
func NewIndexInterval(origin, size Index) (IndexInterval, error) {
	if size < 0 {
		return IndexInterval{}, InvalidArgumentErrorf("negative interval size %d", size)
	}
	return IndexInterval{origin: origin, size: size}, nil
}

// IndexIntervalClosed builds the interval [inclusiveMin, inclusiveMax].
func IndexIntervalClosed(inclusiveMin, inclusiveMax Index) (IndexInterval, error) {
	if inclusiveMax < inclusiveMin-1 {
		return IndexInterval{}, InvalidArgumentErrorf("invalid closed interval [%d, %d]", inclusiveMin, inclusiveMax)
	}
	return IndexInterval{origin: inclusiveMin, size: inclusiveMax - inclusiveMin + 1}, nil
}

// EmptyInterval returns the canonical empty interval.
func EmptyInterval() IndexInterval { return IndexInterval{} }

func (iv IndexInterval) Origin() Index { return iv.origin }
func (iv IndexInterval) Size() Index   { return iv.size }
func (iv IndexInterval) Empty() bool   { return iv.size == 0 }

// ExclusiveMax returns origin+size.
func (iv IndexInterval) ExclusiveMax() Index { return iv.origin + iv.size }

// InclusiveMax returns origin+size-1; only meaningful for non-empty
// intervals.
func (iv IndexInterval) InclusiveMax() Index { return iv.origin + iv.size - 1 }

// Contains reports whether x lies within the interval.
func (iv IndexInterval) Contains(x Index) bool {
	return !iv.Empty() && x >= iv.origin && x < iv.ExclusiveMax()
}

// Equal reports interval equality, treating all empty intervals as equal.
func (iv IndexInterval) Equal(other IndexInterval) bool {
	if iv.Empty() && other.Empty() {
		return true
	}
	return iv.origin == other.origin && iv.size == other.size
}

// Intersect returns the intersection of two intervals, which is empty if
// they do not overlap.
func (iv IndexInterval) Intersect(other IndexInterval) IndexInterval {
	if iv.Empty() || other.Empty() {
		return EmptyInterval()
	}
	lo := maxIndex(iv.origin, other.origin)
	hi := minIndex(iv.ExclusiveMax(), other.ExclusiveMax())
	if hi <= lo {
		return EmptyInterval()
	}
	return IndexInterval{origin: lo, size: hi - lo}
}

func (iv IndexInterval) String() string {
	if iv.Empty() {
		return "[)"
	}
	return fmt.Sprintf("[%d, %d)", iv.origin, iv.ExclusiveMax())
}

func maxIndex(a, b Index) Index {
	if a > b {
		return a
	}
	return b
}

func minIndex(a, b Index) Index {
	if a < b {
		return a
	}
	return b
}

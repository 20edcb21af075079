package gridpartition

import "fmt"

// IndexArray is a multidimensional array of Index values used as the
// payload of an IndexArray-typed OutputIndexMap. Data is stored row-major
// (the last dimension varies fastest), mirroring the layout convention the
// teacher library uses for its own chunked arrays.
type IndexArray struct {
	origin []Index
	shape  []Index
	data   []Index
}

// NewIndexArray builds an IndexArray. len(data) must equal the product of
// shape; origin defaults to all zero if nil.
func NewIndexArray(origin, shape []Index, data []Index) (*IndexArray, error) {
	if origin == nil {
		origin = make([]Index, len(shape))
	}
	if len(origin) != len(shape) {
		return nil, InvalidArgumentErrorf("index array origin/shape rank mismatch: %d != %d", len(origin), len(shape))
	}
	want := int64(1)
	for _, s := range shape {
		if s < 0 {
			return nil, InvalidArgumentErrorf("negative index array shape dimension %d", s)
		}
		want *= s
	}
	if want != int64(len(data)) {
		return nil, InvalidArgumentErrorf("index array data length %d does not match shape product %d", len(data), want)
	}
	o := append([]Index(nil), origin...)
	s := append([]Index(nil), shape...)
	d := append([]Index(nil), data...)
	return &IndexArray{origin: o, shape: s, data: d}, nil
}

// Rank returns the array's dimensionality.
func (a *IndexArray) Rank() int { return len(a.shape) }

// Shape returns the per-dimension extents.
func (a *IndexArray) Shape() []Index { return a.shape }

// Origin returns the per-dimension origins.
func (a *IndexArray) Origin() []Index { return a.origin }

// Interval returns the domain interval of dimension d.
func (a *IndexArray) Interval(d int) IndexInterval {
	iv, _ := NewIndexInterval(a.origin[d], a.shape[d])
	return iv
}

// Get evaluates the array at the given per-dimension coordinates, which
// must fall within [origin[d], origin[d]+shape[d]) for every dimension
// unless that dimension broadcasts (shape[d] == 1, in which case any
// coordinate maps to the sole element). It returns an InvalidArgument
// status error if coords fall outside the array's declared domain on a
// non-broadcast dimension.
func (a *IndexArray) Get(coords []Index) (Index, error) {
	if len(coords) != a.Rank() {
		return 0, InternalErrorf("index array coordinate rank mismatch: %d != %d", len(coords), a.Rank())
	}
	offset := int64(0)
	stride := int64(1)
	for d := a.Rank() - 1; d >= 0; d-- {
		c := coords[d]
		var local int64
		if a.shape[d] == 1 {
			local = 0
		} else {
			if c < a.origin[d] || c >= a.origin[d]+a.shape[d] {
				return 0, InvalidArgumentErrorf(
					"index array coordinate %d out of bounds [%d, %d) on dimension %d",
					c, a.origin[d], a.origin[d]+a.shape[d], d)
			}
			local = c - a.origin[d]
		}
		offset += local * stride
		stride *= a.shape[d]
	}
	if offset < 0 || offset >= int64(len(a.data)) {
		return 0, InternalErrorf("index array offset %d out of data bounds", offset)
	}
	return a.data[offset], nil
}

func (a *IndexArray) String() string {
	return fmt.Sprintf("IndexArray{shape=%v, origin=%v}", a.shape, a.origin)
}

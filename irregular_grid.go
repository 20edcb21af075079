package gridpartition

import "sort"

// IrregularGrid partitions each dimension using an explicit sorted,
// strictly-increasing vector of split points. For k split points, cell i
// (0 <= i < k-1) spans [p_i, p_{i+1}); cell -1 spans everything below p_0;
// cell k-1 spans everything at or above p_{k-1}. IrregularGrid values are
// immutable after construction and safe for concurrent use.
type IrregularGrid struct {
	splitPoints [][]Index
}

var (
	_ Grid        = IrregularGrid{}
	_ BoundedGrid = IrregularGrid{}
)

// NewIrregularGrid builds an IrregularGrid from per-dimension split point
// vectors, each of which must be sorted in strictly increasing order and
// non-empty.
func NewIrregularGrid(splitPoints [][]Index) (IrregularGrid, error) {
	for d, pts := range splitPoints {
		if len(pts) == 0 {
			return IrregularGrid{}, InvalidArgumentErrorf("irregular grid dimension %d has no split points", d)
		}
		for i := 1; i < len(pts); i++ {
			if pts[i] <= pts[i-1] {
				return IrregularGrid{}, InvalidArgumentErrorf("irregular grid dimension %d split points must be strictly increasing, got %v", d, pts)
			}
		}
	}
	cp := make([][]Index, len(splitPoints))
	for d, pts := range splitPoints {
		cp[d] = append([]Index(nil), pts...)
	}
	return IrregularGrid{splitPoints: cp}, nil
}

// Rank implements Grid.
func (g IrregularGrid) Rank() int { return len(g.splitPoints) }

// OutputToCell implements Grid.
func (g IrregularGrid) OutputToCell(dim int, output Index) Index {
	pts := g.splitPoints[dim]
	// sort.Search finds the first index i such that pts[i] > output; the
	// containing cell is i-1 (with -1 meaning "below the first split
	// point").
	i := sort.Search(len(pts), func(i int) bool { return pts[i] > output })
	return Index(i) - 1
}

// CellToOutputInterval implements Grid.
func (g IrregularGrid) CellToOutputInterval(dim int, cell Index) IndexInterval {
	pts := g.splitPoints[dim]
	k := Index(len(pts))
	switch {
	case cell == -1:
		iv, _ := NewIndexInterval(negInfIndex, pts[0]-negInfIndex)
		return iv
	case cell == k-1:
		iv, _ := NewIndexInterval(pts[k-1], posInfIndex-pts[k-1])
		return iv
	case cell >= 0 && cell < k-1:
		iv, _ := NewIndexInterval(pts[cell], pts[cell+1]-pts[cell])
		return iv
	default:
		return EmptyInterval()
	}
}

// GridBounds implements BoundedGrid: every dimension's representable cell
// index range is [-1, k), i.e. cell indices -1 through k-1 inclusive where
// k is the number of split points on that dimension.
func (g IrregularGrid) GridBounds() Box {
	intervals := make([]IndexInterval, len(g.splitPoints))
	for d, pts := range g.splitPoints {
		iv, _ := NewIndexInterval(-1, Index(len(pts))+1)
		intervals[d] = iv
	}
	return Box{intervals: intervals}
}

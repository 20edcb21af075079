package gridpartition

// Grid partitions the entire integer line, independently per dimension,
// into disjoint cells. Implementations must be pure value types: no hidden
// caches, no process-wide registries, and must be safe for concurrent use
// once constructed.
type Grid interface {
	// Rank returns the number of grid dimensions this Grid partitions.
	Rank() int
	// OutputToCell maps an output coordinate on grid dimension dim to the
	// cell index that contains it.
	OutputToCell(dim int, output Index) Index
	// CellToOutputInterval returns the output-coordinate interval spanned
	// by the given cell on grid dimension dim. It is the left inverse of
	// OutputToCell: CellToOutputInterval(dim, OutputToCell(dim, x))
	// contains x for every representable x.
	CellToOutputInterval(dim int, cell Index) IndexInterval
}

// BoundedGrid is a Grid whose per-dimension cell-index range is finite and
// discoverable. Only IrregularGrid implements this; RegularGrid is
// unbounded and callers of GetGridCellRanges must supply explicit bounds.
type BoundedGrid interface {
	Grid
	// GridBounds returns, per grid dimension, the interval of
	// representable cell indices.
	GridBounds() Box
}

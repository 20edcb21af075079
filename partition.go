package gridpartition

// CellCallback receives one emitted cell's grid-cell-index tuple and the
// cell transform restricting the original transform's input domain to
// that cell. Returning a non-nil error cancels the enumeration; the error
// is forwarded (wrapped as a codes.Canceled Status) from Partition.
type CellCallback func(cellIndices []Index, cellTransform *IndexTransform) error

// Partition walks every grid cell intersected by transform's image on the
// named output dimensions, invoking callback once per cell in strictly
// lexicographic cell-index order. It stops and returns the callback's
// error (wrapped as Cancelled) on the first non-nil return.
func Partition(transform *IndexTransform, gridOutputDims []int, grid Grid, callback CellCallback) error {
	plan, err := PrePartition(transform, gridOutputDims, grid)
	if err != nil {
		return err
	}
	return partitionPlan(plan, callback)
}

// PartitionRegular is convenience sugar over Partition using a RegularGrid
// built from cellShape.
func PartitionRegular(transform *IndexTransform, gridOutputDims []int, cellShape []Index, callback CellCallback) error {
	grid, err := NewRegularGrid(cellShape)
	if err != nil {
		return err
	}
	return Partition(transform, gridOutputDims, grid, callback)
}

func partitionPlan(plan *PartitionPlan, callback CellCallback) error {
	if plan.empty {
		return nil
	}
	// Each connected set contributes its cell tuples in its own natural
	// order (ascending for an index-array set, input-scan order for a
	// strided set, which runs descending under a negative stride), so the
	// raw cross product is not globally sorted; sortTuples restores
	// strictly lexicographic cell-index order before emission.
	tuples := crossProductCellTuples(plan.sets, len(plan.gridDims))
	sortTuples(tuples)
	for _, ci := range tuples {
		ct, ok, err := plan.CellTransform(ci)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := callback(ci, ct); err != nil {
			return AsCancelled(err)
		}
	}
	return nil
}

// crossProductCellTuples enumerates every achievable full grid-cell-index
// tuple by taking the cartesian product of each connected set's own
// achievable sub-tuples, recombining them into a coherent full-rank
// cell-index tuple.
func crossProductCellTuples(sets []*ConnectedSet, gridRank int) [][]Index {
	lists := make([][][]Index, len(sets))
	for i, cs := range sets {
		lists[i] = cs.cellValsList()
	}
	var results [][]Index
	acc := make([]Index, gridRank)
	var rec func(i int)
	rec = func(i int) {
		if i == len(sets) {
			results = append(results, append([]Index(nil), acc...))
			return
		}
		cs := sets[i]
		for _, vals := range lists[i] {
			for j, pos := range cs.gridPositions {
				acc[pos] = vals[j]
			}
			rec(i + 1)
		}
	}
	rec(0)
	return results
}

func (cs *ConnectedSet) cellValsList() [][]Index {
	if cs.kind == kindStrided {
		out := make([][]Index, len(cs.stridedRows))
		for i, r := range cs.stridedRows {
			out[i] = r.cellVals
		}
		return out
	}
	out := make([][]Index, len(cs.arrayRows))
	for i, r := range cs.arrayRows {
		out[i] = r.cellVals
	}
	return out
}

func sortTuples(tuples [][]Index) {
	for i := 1; i < len(tuples); i++ {
		for j := i; j > 0 && lessCellVals(tuples[j], tuples[j-1]); j-- {
			tuples[j-1], tuples[j] = tuples[j], tuples[j-1]
		}
	}
}

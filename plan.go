package gridpartition

import "fmt"

// stridedRow is one precomputed enumeration entry for a strided
// ConnectedSet: a tuple of grid-cell values (aligned with the set's
// gridPositions) together with the input sub-interval that produces it.
// hasInputDim is false only for a set made up entirely of MapConstant
// members, which owns no input dimension at all.
type stridedRow struct {
	cellVals      []Index
	hasInputDim   bool
	inputInterval IndexInterval
}

// arrayRow is one precomputed row-group for an index-array ConnectedSet: a
// tuple of grid-cell values together with every input coordinate tuple
// (aligned with the set's sorted inputDims) that maps into it.
type arrayRow struct {
	cellVals []Index
	rows     [][]Index
}

func cellKey(vals []Index) string { return fmt.Sprint(vals) }

// PartitionPlan is the immutable, precomputed structure produced by
// PrePartition: an ordered list of connected sets, each carrying its
// enumerable rows, plus the list of original input dimensions untouched by
// any grid dimension. Its CellTransform method may be called any number of
// times; Partition and GetGridCellRanges each build their own plan.
type PartitionPlan struct {
	transform            *IndexTransform
	gridDims             []int
	grid                 Grid
	sets                 []*ConnectedSet
	passthroughInputDims []int
	empty                bool
}

// Empty reports whether the underlying transform has an empty input
// domain, in which case no cells will ever be emitted.
func (p *PartitionPlan) Empty() bool { return p.empty }

// PrePartition analyzes transform against the named grid output dimensions
// and grid, producing an immutable PartitionPlan. Calling PrePartition
// repeatedly with equal arguments yields equal plans.
func PrePartition(transform *IndexTransform, gridOutputDims []int, grid Grid) (*PartitionPlan, error) {
	if transform == nil {
		return nil, InvalidArgumentErrorf("nil transform")
	}
	if grid.Rank() != len(gridOutputDims) {
		return nil, InvalidArgumentErrorf("grid rank %d does not match grid output dimension count %d", grid.Rank(), len(gridOutputDims))
	}

	plan := &PartitionPlan{
		transform: transform,
		gridDims:  append([]int(nil), gridOutputDims...),
		grid:      grid,
	}

	if transform.InputDomain().Empty() {
		plan.empty = true
		return plan, nil
	}

	raw, err := buildRawConnectedSets(transform, gridOutputDims)
	if err != nil {
		return nil, err
	}
	sets, err := classifySets(transform, gridOutputDims, raw)
	if err != nil {
		return nil, err
	}

	covered := make([]bool, transform.InputRank())
	for _, cs := range sets {
		for _, d := range cs.inputDims {
			covered[d] = true
		}
		if cs.kind == kindStrided {
			rows, err := computeStridedRows(cs, transform, plan.gridDims, grid)
			if err != nil {
				return nil, err
			}
			cs.stridedRows = rows
			cs.stridedRowByKey = make(map[string]*stridedRow, len(rows))
			for i := range rows {
				cs.stridedRowByKey[cellKey(rows[i].cellVals)] = &rows[i]
			}
		} else {
			rows, err := computeIndexArrayRows(cs, transform, plan.gridDims, grid)
			if err != nil {
				return nil, err
			}
			cs.arrayRows = rows
			cs.arrayRowByKey = make(map[string]*arrayRow, len(rows))
			for i := range rows {
				cs.arrayRowByKey[cellKey(rows[i].cellVals)] = &rows[i]
			}
		}
	}
	for d := 0; d < transform.InputRank(); d++ {
		if !covered[d] {
			plan.passthroughInputDims = append(plan.passthroughInputDims, d)
		}
	}
	plan.sets = sets
	return plan, nil
}

// computeStridedRows enumerates the contiguous input-interval runs of a
// strided connected set via interval arithmetic: for a
// set with no input dimension (every member MapConstant) there is exactly
// one row; for a set with one input dimension the run boundaries are found
// by inverting each member's affine map against its current grid cell's
// output interval.
func computeStridedRows(cs *ConnectedSet, transform *IndexTransform, gridDims []int, grid Grid) ([]stridedRow, error) {
	if cs.stridedInputDim < 0 {
		vals := make([]Index, len(cs.members))
		for i, mem := range cs.members {
			v, err := mem.m.evaluate(nil)
			if err != nil {
				return nil, err
			}
			vals[i] = grid.OutputToCell(gridDims[mem.gridPos], v)
		}
		return []stridedRow{{cellVals: vals, hasInputDim: false}}, nil
	}

	interval := transform.InputInterval(cs.stridedInputDim)
	if interval.Empty() {
		return nil, nil
	}
	lo, hi := interval.Origin(), interval.ExclusiveMax()

	var rows []stridedRow
	input := make([]Index, transform.InputRank())
	for x := lo; x < hi; {
		vals := make([]Index, len(cs.members))
		runEnd := hi
		for i, mem := range cs.members {
			if mem.m.Kind != MapSingleInputDimension {
				return nil, InternalErrorf("strided set member has non-affine kind %v", mem.m.Kind)
			}
			input[cs.stridedInputDim] = x
			v, err := mem.m.evaluate(input)
			if err != nil {
				return nil, err
			}
			gridDim := gridDims[mem.gridPos]
			cellIdx := grid.OutputToCell(gridDim, v)
			vals[i] = cellIdx
			outInterval := grid.CellToOutputInterval(gridDim, cellIdx)

			var xMax Index
			if mem.m.Stride > 0 {
				xMax = floorDiv(outInterval.ExclusiveMax()-1-mem.m.Offset, mem.m.Stride)
			} else {
				xMax = floorDiv(outInterval.Origin()-mem.m.Offset, mem.m.Stride)
			}
			if thisEnd := xMax + 1; thisEnd < runEnd {
				runEnd = thisEnd
			}
		}
		if runEnd <= x {
			return nil, InternalErrorf("strided enumeration failed to advance past %d", x)
		}
		iv, err := NewIndexInterval(x, runEnd-x)
		if err != nil {
			return nil, err
		}
		rows = append(rows, stridedRow{cellVals: vals, hasInputDim: true, inputInterval: iv})
		x = runEnd
	}
	return rows, nil
}

// computeIndexArrayRows enumerates the cartesian product of an index-array
// connected set's covered input dimensions, grouping the resulting rows by
// their grid-cell-index tuple and returning the groups in lexicographic
// cell-index order.
func computeIndexArrayRows(cs *ConnectedSet, transform *IndexTransform, gridDims []int, grid Grid) ([]arrayRow, error) {
	dims := cs.inputDims
	sizes := make([]Index, len(dims))
	origins := make([]Index, len(dims))
	for i, d := range dims {
		iv := transform.InputInterval(d)
		if iv.Empty() {
			return nil, nil
		}
		sizes[i] = iv.Size()
		origins[i] = iv.Origin()
	}

	groups := make(map[string]*arrayRow)
	var order []string
	input := make([]Index, transform.InputRank())
	counters := make([]Index, len(dims))
	coords := make([]Index, len(dims))
	for {
		for i, d := range dims {
			coords[i] = origins[i] + counters[i]
			input[d] = coords[i]
		}
		vals := make([]Index, len(cs.members))
		for i, mem := range cs.members {
			v, err := mem.m.evaluate(input)
			if err != nil {
				return nil, err
			}
			vals[i] = grid.OutputToCell(gridDims[mem.gridPos], v)
		}
		key := cellKey(vals)
		g, ok := groups[key]
		if !ok {
			g = &arrayRow{cellVals: vals}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, append([]Index(nil), coords...))

		i := len(dims) - 1
		for i >= 0 {
			counters[i]++
			if counters[i] < sizes[i] {
				break
			}
			counters[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}

	rows := make([]arrayRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, *groups[k])
	}
	sortArrayRowsByCellVals(rows)
	return rows, nil
}

func sortArrayRowsByCellVals(rows []arrayRow) {
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && lessCellVals(rows[j].cellVals, rows[j-1].cellVals); j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
}

func lessCellVals(a, b []Index) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// CellTransform builds the cell transform for the given full grid
// cell-index tuple (one value per position in the grid output dimensions
// passed to PrePartition) directly from the plan, independent of
// enumeration order. It returns ok=false if no point of the original
// transform's input domain maps into that cell.
func (p *PartitionPlan) CellTransform(cellIndices []Index) (*IndexTransform, bool, error) {
	if p.empty {
		return nil, false, nil
	}
	if len(cellIndices) != len(p.gridDims) {
		return nil, false, InvalidArgumentErrorf("cell index tuple rank %d does not match grid rank %d", len(cellIndices), len(p.gridDims))
	}

	type resolvedSet struct {
		set        *ConnectedSet
		stridedRow *stridedRow
		arrayRow   *arrayRow
	}
	resolved := make([]resolvedSet, len(p.sets))
	for i, cs := range p.sets {
		sub := make([]Index, len(cs.gridPositions))
		for j, pos := range cs.gridPositions {
			sub[j] = cellIndices[pos]
		}
		key := cellKey(sub)
		if cs.kind == kindStrided {
			row, ok := cs.stridedRowByKey[key]
			if !ok {
				return nil, false, nil
			}
			resolved[i] = resolvedSet{set: cs, stridedRow: row}
		} else {
			row, ok := cs.arrayRowByKey[key]
			if !ok {
				return nil, false, nil
			}
			resolved[i] = resolvedSet{set: cs, arrayRow: row}
		}
	}

	n := p.transform.InputRank()
	outputMaps := make([]OutputIndexMap, n)
	var slotIntervals []IndexInterval

	for _, r := range resolved {
		cs := r.set
		switch {
		case cs.kind == kindIndexArray:
			slot := len(slotIntervals)
			nRows := Index(len(r.arrayRow.rows))
			iv, err := NewIndexInterval(0, nRows)
			if err != nil {
				return nil, false, err
			}
			slotIntervals = append(slotIntervals, iv)
			for colIdx, d := range cs.inputDims {
				data := make([]Index, nRows)
				for rowIdx, row := range r.arrayRow.rows {
					data[rowIdx] = row[colIdx]
				}
				arr, err := NewIndexArray(nil, []Index{nRows}, data)
				if err != nil {
					return nil, false, err
				}
				outputMaps[d] = IndexArrayMap(0, 1, arr, []int{slot})
			}
		case cs.stridedInputDim >= 0:
			slot := len(slotIntervals)
			slotIntervals = append(slotIntervals, r.stridedRow.inputInterval)
			outputMaps[cs.stridedInputDim] = SingleInputDimensionMap(0, 1, slot)
		default:
			// Constant-only set: owns no original input dimension and
			// contributes no slot.
		}
	}

	for _, d := range p.passthroughInputDims {
		slot := len(slotIntervals)
		slotIntervals = append(slotIntervals, p.transform.InputInterval(d))
		outputMaps[d] = SingleInputDimensionMap(0, 1, slot)
	}

	for d, m := range outputMaps {
		if m.Kind == MapConstant {
			// Every original input dimension must be covered by exactly one
			// of: an index-array set, a strided set, or the passthrough
			// list; a leftover MapConstant zero value here indicates an
			// analyzer bug.
			return nil, false, InternalErrorf("input dimension %d not covered by any connected set or passthrough", d)
		}
	}

	newDomain := Box{intervals: slotIntervals}
	t, err := NewIndexTransform(newDomain, outputMaps)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

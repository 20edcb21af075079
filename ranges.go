package gridpartition

// RangeCallback receives one coalesced grid-cell-index box.
type RangeCallback func(cellRange Box) error

// GetGridCellRanges enumerates the same grid cells as Partition would, but
// coalesces runs of adjacent cell indices into boxes wherever every grid
// dimension "deeper" than the one being coalesced is unconstrained across
// the whole run, i.e. its reachable cell-index range equals gridBounds
// exactly for that dimension. gridBounds must have rank equal to
// len(gridOutputDims); pass a BoundedGrid's GridBounds() when available.
func GetGridCellRanges(transform *IndexTransform, gridOutputDims []int, gridBounds Box, grid Grid, callback RangeCallback) error {
	if gridBounds.Rank() != len(gridOutputDims) {
		return InvalidArgumentErrorf("grid_bounds rank %d does not match grid output dimension count %d", gridBounds.Rank(), len(gridOutputDims))
	}
	plan, err := PrePartition(transform, gridOutputDims, grid)
	if err != nil {
		return err
	}
	if plan.empty {
		return nil
	}
	k := len(gridOutputDims)
	tuples := crossProductCellTuples(plan.sets, k)
	tuples = clipTuples(tuples, gridBounds)
	if len(tuples) == 0 {
		return nil
	}
	sortTuples(tuples)
	boxes := coalesceDim(0, tuples, k, gridBounds)
	for _, b := range boxes {
		if err := callback(b); err != nil {
			return AsCancelled(err)
		}
	}
	return nil
}

func clipTuples(tuples [][]Index, gridBounds Box) [][]Index {
	out := tuples[:0]
	for _, t := range tuples {
		if gridBounds.ContainsPoint(t) {
			out = append(out, t)
		}
	}
	return out
}

// coalesceDim recursively groups a sorted, gridBounds-clipped tuple list
// into a minimal set of boxes covering dims [dim, k). At each level it
// groups tuples by their value at dim (contiguous runs, since the input is
// lexicographically sorted), recurses to find each group's inner box
// decomposition, and merges a run of integer-adjacent dim values into a
// single spanning interval only when every group in the run collapses to
// exactly one inner box that already equals gridBounds for dims (dim, k),
// meaning those deeper dimensions are fully unconstrained across the run.
func coalesceDim(dim int, tuples [][]Index, k int, gridBounds Box) []Box {
	if dim == k {
		return []Box{{}}
	}

	var results []Box
	i := 0
	for i < len(tuples) {
		v := tuples[i][dim]
		j := i
		for j < len(tuples) && tuples[j][dim] == v {
			j++
		}
		child := coalesceDim(dim+1, tuples[i:j], k, gridBounds)
		unconstrained := isFullBounds(child, dim+1, k, gridBounds)

		runLo, runHi, nextI := v, v+1, j
		if unconstrained {
			for nextI < len(tuples) {
				v2 := tuples[nextI][dim]
				if v2 != runHi {
					break
				}
				j2 := nextI
				for j2 < len(tuples) && tuples[j2][dim] == v2 {
					j2++
				}
				child2 := coalesceDim(dim+1, tuples[nextI:j2], k, gridBounds)
				if !isFullBounds(child2, dim+1, k, gridBounds) {
					break
				}
				runHi = v2 + 1
				nextI = j2
			}
		}

		if unconstrained && runHi > runLo+1 {
			intervals := make([]IndexInterval, k-dim)
			iv, err := NewIndexInterval(runLo, runHi-runLo)
			if err != nil {
				iv = EmptyInterval()
			}
			intervals[0] = iv
			for x := dim + 1; x < k; x++ {
				intervals[x-dim] = gridBounds.Interval(x)
			}
			results = append(results, Box{intervals: intervals})
			i = nextI
		} else {
			for _, cb := range child {
				intervals := make([]IndexInterval, k-dim)
				iv, err := NewIndexInterval(v, 1)
				if err != nil {
					iv = EmptyInterval()
				}
				intervals[0] = iv
				copy(intervals[1:], cb.intervals)
				results = append(results, Box{intervals: intervals})
			}
			i = j
		}
	}
	return results
}

// isFullBounds reports whether boxes is the trivial single-box decomposition
// exactly equal to gridBounds over dims [dim, k); vacuously true when
// dim == k, since there are no deeper dimensions left to constrain.
func isFullBounds(boxes []Box, dim, k int, gridBounds Box) bool {
	if dim == k {
		return true
	}
	if len(boxes) != 1 {
		return false
	}
	b := boxes[0]
	if b.Rank() != k-dim {
		return false
	}
	for x := dim; x < k; x++ {
		if !b.Interval(x-dim).Equal(gridBounds.Interval(x)) {
			return false
		}
	}
	return true
}

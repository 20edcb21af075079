package gridpartition

import (
	"math/rand"
	"testing"
)

// randAffineTransform builds a transform whose output dimension i is, with
// roughly equal probability, a ConstantMap, a SingleInputDimensionMap
// reading input dimension i with a small random offset and a stride of +1
// or -1, or an IndexArrayMap reading input dimension i through a randomly
// filled IndexArray covering that dimension's full input extent. Mixing all
// three OutputIndexMap kinds exercises every connected-set enumeration path
// (strided rows, array rows, and the singleton set a constant map produces)
// under randomization, not just the strided case.
func randAffineTransform(rng *rand.Rand, rank int) (*IndexTransform, []Index) {
	origin := make([]Index, rank)
	shape := make([]Index, rank)
	cellShape := make([]Index, rank)
	for i := 0; i < rank; i++ {
		origin[i] = Index(rng.Intn(9) - 4)
		shape[i] = Index(rng.Intn(5) + 1)
		cellShape[i] = Index(rng.Intn(3) + 1)
	}
	domain, err := BoxFromOriginShape(origin, shape)
	if err != nil {
		panic(err)
	}
	maps := make([]OutputIndexMap, rank)
	for i := 0; i < rank; i++ {
		switch rng.Intn(3) {
		case 0:
			maps[i] = ConstantMap(Index(rng.Intn(9) - 4))
		case 1:
			stride := Index(1)
			if rng.Intn(2) == 0 {
				stride = -1
			}
			offset := Index(rng.Intn(7) - 3)
			maps[i] = SingleInputDimensionMap(offset, stride, i)
		default:
			data := make([]Index, shape[i])
			for j := range data {
				data[j] = Index(rng.Intn(11) - 5)
			}
			arr, err := NewIndexArray([]Index{origin[i]}, []Index{shape[i]}, data)
			if err != nil {
				panic(err)
			}
			stride := Index(1)
			if rng.Intn(2) == 0 {
				stride = -1
			}
			offset := Index(rng.Intn(7) - 3)
			maps[i] = IndexArrayMap(offset, stride, arr, []int{i})
		}
	}
	transform, err := NewIndexTransform(domain, maps)
	if err != nil {
		panic(err)
	}
	return transform, cellShape
}

func TestPartitionRandomAffineTransforms(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		rank := rng.Intn(3) + 1
		transform, cellShape := randAffineTransform(rng, rank)
		grid, err := NewRegularGrid(cellShape)
		if err != nil {
			t.Fatalf("trial %d: NewRegularGrid: %v", trial, err)
		}
		gridDims := make([]int, rank)
		for i := range gridDims {
			gridDims[i] = i
		}
		verifyPartition(t, transform, gridDims, grid)
	}
}

// TestGetGridCellRangesMatchesPartitionCoverage checks the Range
// equivalence invariant: the set of original input points covered by the
// coalesced ranges' cell transforms equals the set covered by the
// per-cell Partition enumeration, for the same transform and grid.
func TestGetGridCellRangesMatchesPartitionCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		rank := rng.Intn(2) + 1
		transform, cellShape := randAffineTransform(rng, rank)
		grid, err := NewRegularGrid(cellShape)
		if err != nil {
			t.Fatalf("trial %d: NewRegularGrid: %v", trial, err)
		}
		gridDims := make([]int, rank)
		for i := range gridDims {
			gridDims[i] = i
		}

		fromPartition := make(map[string]bool)
		err = Partition(transform, gridDims, grid, func(cellIndices []Index, ct *IndexTransform) error {
			for _, newInput := range enumerateBoxPoints(ct.InputDomain()) {
				origInput, err := ct.Apply(newInput)
				if err != nil {
					return err
				}
				fromPartition[cellKey(origInput)] = true
			}
			return nil
		})
		if err != nil {
			t.Fatalf("trial %d: Partition failed: %v", trial, err)
		}

		bounds := boundsFromRandomCells(rng, transform, grid, gridDims)
		fromRanges := make(map[string]bool)
		err = GetGridCellRanges(transform, gridDims, bounds, grid, func(b Box) error {
			cellPts := enumerateBoxPoints(b)
			for _, cellIdx := range cellPts {
				ct, ok, err := plan(t, transform, gridDims, grid).CellTransform(cellIdx)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				for _, newInput := range enumerateBoxPoints(ct.InputDomain()) {
					origInput, err := ct.Apply(newInput)
					if err != nil {
						return err
					}
					fromRanges[cellKey(origInput)] = true
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("trial %d: GetGridCellRanges failed: %v", trial, err)
		}

		for k := range fromPartition {
			if !fromRanges[k] {
				t.Errorf("trial %d: point key %s covered by Partition but not by GetGridCellRanges ranges", trial, k)
			}
		}
		for k := range fromRanges {
			if !fromPartition[k] {
				t.Errorf("trial %d: point key %s covered by GetGridCellRanges ranges but not by Partition", trial, k)
			}
		}
	}
}

func plan(t *testing.T, transform *IndexTransform, gridDims []int, grid Grid) *PartitionPlan {
	t.Helper()
	p, err := PrePartition(transform, gridDims, grid)
	if err != nil {
		t.Fatalf("PrePartition failed: %v", err)
	}
	return p
}

// boundsFromRandomCells picks a bounding box wide enough to contain every
// cell index Partition actually emits, so GetGridCellRanges's clipping
// never drops a real cell.
func boundsFromRandomCells(rng *rand.Rand, transform *IndexTransform, grid Grid, gridDims []int) Box {
	rank := len(gridDims)
	mins := make([]Index, rank)
	maxs := make([]Index, rank)
	for i := range mins {
		mins[i] = 1 << 30
		maxs[i] = -(1 << 30)
	}
	Partition(transform, gridDims, grid, func(cellIndices []Index, ct *IndexTransform) error {
		for i, v := range cellIndices {
			if v < mins[i] {
				mins[i] = v
			}
			if v > maxs[i] {
				maxs[i] = v
			}
		}
		return nil
	})
	origin := make([]Index, rank)
	shape := make([]Index, rank)
	for i := range origin {
		if mins[i] > maxs[i] {
			mins[i], maxs[i] = 0, 0
		}
		origin[i] = mins[i] - 1
		shape[i] = maxs[i] - mins[i] + 3
	}
	b, err := BoxFromOriginShape(origin, shape)
	if err != nil {
		panic(err)
	}
	return b
}

package gridpartition

import (
	"reflect"
	"testing"

	"google.golang.org/grpc/codes"
)

// enumerateBoxPoints walks every point of a (small) box in row-major order.
func enumerateBoxPoints(b Box) [][]Index {
	if b.Rank() == 0 {
		return [][]Index{{}}
	}
	var out [][]Index
	shape := b.Shape()
	origin := b.Origin()
	counters := make([]Index, len(shape))
	for {
		pt := make([]Index, len(shape))
		for i := range pt {
			pt[i] = origin[i] + counters[i]
		}
		out = append(out, pt)
		i := len(shape) - 1
		for i >= 0 {
			counters[i]++
			if counters[i] < shape[i] {
				break
			}
			counters[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return out
}

// verifyPartition checks all four universal invariants against every
// point of transform's input domain, using grid.OutputToCell as the
// reference oracle: Coverage, Confinement, No-duplication, and Order
// (cell-index tuples must be emitted in strictly lexicographic order).
func verifyPartition(t *testing.T, transform *IndexTransform, gridOutputDims []int, grid Grid) []Index {
	t.Helper()
	seenOrigInputs := make(map[string]bool)
	seenCells := make(map[string]bool)
	var order [][]Index
	var lastCell []Index

	err := Partition(transform, gridOutputDims, grid, func(cellIndices []Index, ct *IndexTransform) error {
		key := cellKey(cellIndices)
		if seenCells[key] {
			t.Errorf("cell index tuple %v emitted more than once", cellIndices)
		}
		seenCells[key] = true
		if lastCell != nil && !lessCellVals(lastCell, cellIndices) {
			t.Errorf("order violated: cell %v emitted after %v, want strictly lexicographic order", cellIndices, lastCell)
		}
		lastCell = append([]Index(nil), cellIndices...)
		order = append(order, append([]Index(nil), cellIndices...))

		for _, newInput := range enumerateBoxPoints(ct.InputDomain()) {
			origInput, err := ct.Apply(newInput)
			if err != nil {
				t.Fatalf("cell transform Apply failed: %v", err)
			}
			key := cellKey(origInput)
			if seenOrigInputs[key] {
				t.Errorf("original input point %v emitted by more than one cell", origInput)
			}
			seenOrigInputs[key] = true

			out, err := transform.Apply(origInput)
			if err != nil {
				t.Fatalf("original transform Apply failed at %v: %v", origInput, err)
			}
			for j, dim := range gridOutputDims {
				got := grid.OutputToCell(j, out[dim])
				if got != cellIndices[j] {
					t.Errorf("confinement violated: point %v output dim %d = %d maps to cell %d, want %d",
						origInput, dim, out[dim], got, cellIndices[j])
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Partition returned error: %v", err)
	}

	for _, pt := range enumerateBoxPoints(transform.InputDomain()) {
		if !seenOrigInputs[cellKey(pt)] {
			t.Errorf("coverage violated: input point %v was never emitted by any cell", pt)
		}
	}
	var flat []Index
	for _, c := range order {
		flat = append(flat, c...)
	}
	return flat
}

func TestPartitionConstant1D(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{2}, []Index{4})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{ConstantMap(3)})
	grid, _ := NewRegularGrid([]Index{2})
	verifyPartition(t, transform, []int{0}, grid)

	var cells [][]Index
	Partition(transform, []int{0}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		return nil
	})
	if len(cells) != 1 || cells[0][0] != 1 {
		t.Fatalf("cells = %v, want single cell [1]", cells)
	}
}

func TestPartitionIdentity1DStrided(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{-4}, []Index{5})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{SingleInputDimensionMap(0, 1, 0)})
	grid, _ := NewRegularGrid([]Index{2})
	verifyPartition(t, transform, []int{0}, grid)

	var cells [][]Index
	Partition(transform, []int{0}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		return nil
	})
	want := [][]Index{{-2}, {-1}, {0}}
	if !reflect.DeepEqual(cells, want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
}

func TestPartition2DIdentity(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{0, 0}, []Index{30, 30})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{
		SingleInputDimensionMap(0, 1, 0),
		SingleInputDimensionMap(0, 1, 1),
	})
	grid, _ := NewRegularGrid([]Index{20, 10})
	verifyPartition(t, transform, []int{0, 1}, grid)

	var cells [][]Index
	Partition(transform, []int{0, 1}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		return nil
	})
	want := [][]Index{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if !reflect.DeepEqual(cells, want) {
		t.Fatalf("cells = %v, want %v", cells, want)
	}
}

func TestPartitionIndexArray1D(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{100}, []Index{8})
	arr, _ := NewIndexArray([]Index{100}, []Index{8}, []Index{1, 2, 3, 4, 5, 6, 7, 8})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{IndexArrayMap(0, 1, arr, []int{0})})
	grid, _ := NewRegularGrid([]Index{3})
	verifyPartition(t, transform, []int{0}, grid)

	var cells [][]Index
	var inputSets [][]Index
	Partition(transform, []int{0}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		var pts []Index
		for _, newInput := range enumerateBoxPoints(ct.InputDomain()) {
			orig, _ := ct.Apply(newInput)
			pts = append(pts, orig[0])
		}
		inputSets = append(inputSets, pts)
		return nil
	})
	wantCells := [][]Index{{0}, {1}, {2}}
	if !reflect.DeepEqual(cells, wantCells) {
		t.Fatalf("cells = %v, want %v", cells, wantCells)
	}
	wantInputs := [][]Index{{100, 101}, {102, 103, 104}, {105, 106, 107}}
	if !reflect.DeepEqual(inputSets, wantInputs) {
		t.Fatalf("inputs = %v, want %v", inputSets, wantInputs)
	}
}

func TestPartitionDiagonalStrided(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{-4}, []Index{6})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{
		SingleInputDimensionMap(5, 3, 0),
		SingleInputDimensionMap(7, -2, 0),
	})
	grid, _ := NewRegularGrid([]Index{10, 8})
	verifyPartition(t, transform, []int{0, 1}, grid)

	var cells [][]Index
	var spans []IndexInterval
	Partition(transform, []int{0, 1}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		spans = append(spans, ct.InputInterval(0))
		return nil
	})
	wantCells := [][]Index{{-1, 1}, {0, 0}, {0, 1}}
	if !reflect.DeepEqual(cells, wantCells) {
		t.Fatalf("cells = %v, want %v", cells, wantCells)
	}
	wantSpans := []Index{-4, -1, 0, 2, -1, 0}
	got := []Index{
		spans[0].Origin(), spans[0].ExclusiveMax(),
		spans[1].Origin(), spans[1].ExclusiveMax(),
		spans[2].Origin(), spans[2].ExclusiveMax(),
	}
	if !reflect.DeepEqual(got, wantSpans) {
		t.Fatalf("spans = %v, want %v", got, wantSpans)
	}
}

func TestPartitionTwoIndexArrayDims(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{100}, []Index{6})
	arr0, _ := NewIndexArray([]Index{100}, []Index{6}, []Index{10, 3, 4, -5, -6, 11})
	arr1, _ := NewIndexArray([]Index{100}, []Index{6}, []Index{5, 1, 7, -3, -2, 5})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{
		IndexArrayMap(5, 3, arr0, []int{0}),
		IndexArrayMap(4, -2, arr1, []int{0}),
	})
	grid, _ := NewRegularGrid([]Index{10, 8})
	verifyPartition(t, transform, []int{0, 1}, grid)

	var cells [][]Index
	Partition(transform, []int{0, 1}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		return nil
	})
	wantCells := [][]Index{{-2, 1}, {-1, 1}, {1, -2}, {1, 0}, {3, -1}}
	if !reflect.DeepEqual(cells, wantCells) {
		t.Fatalf("cells = %v, want %v", cells, wantCells)
	}
}

func TestPartitionIndexArrayAndStrided(t *testing.T) {
	domain, err := BoxFromOriginShape([]Index{-4, 100}, []Index{6, 3})
	if err != nil {
		t.Fatal(err)
	}
	arr, _ := NewIndexArray([]Index{100}, []Index{3}, []Index{10, 3, 4})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{
		IndexArrayMap(5, 3, arr, []int{1}),
		SingleInputDimensionMap(4, -2, 0),
	})
	grid, _ := NewRegularGrid([]Index{10, 8})
	verifyPartition(t, transform, []int{0, 1}, grid)

	var cells [][]Index
	Partition(transform, []int{0, 1}, grid, func(ci []Index, ct *IndexTransform) error {
		cells = append(cells, append([]Index(nil), ci...))
		return nil
	})
	wantCells := [][]Index{{1, 0}, {1, 1}, {3, 0}, {3, 1}}
	if !reflect.DeepEqual(cells, wantCells) {
		t.Fatalf("cells = %v, want %v", cells, wantCells)
	}
}

func TestPartitionCallbackCancellation(t *testing.T) {
	domain, _ := BoxFromOriginShape([]Index{-4}, []Index{5})
	transform, _ := NewIndexTransform(domain, []OutputIndexMap{SingleInputDimensionMap(0, 1, 0)})
	grid, _ := NewRegularGrid([]Index{2})
	stop := errText("stop")
	calls := 0
	err := Partition(transform, []int{0}, grid, func(ci []Index, ct *IndexTransform) error {
		calls++
		return stop
	})
	if calls != 1 {
		t.Fatalf("expected exactly one callback invocation, got %d", calls)
	}
	if Code(err) != codes.Canceled {
		t.Fatalf("expected Canceled code, got %v", Code(err))
	}
}

type errText string

func (e errText) Error() string { return string(e) }

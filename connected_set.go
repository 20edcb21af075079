package gridpartition

// unionFind is a minimal disjoint-set structure over a fixed universe of
// integer node ids, used to group (input-dim, grid-dim) nodes into
// connected sets during pre-partition analysis.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// rawSet is the connectivity information for one connected set, before it
// has been classified as strided or index-array and had its member output
// maps recorded.
type rawSet struct {
	gridPositions []int // sorted ascending indices into the caller's G slice
	inputDims     []int // sorted ascending input dimensions covered
}

// buildRawConnectedSets groups the grid output dimensions named by
// gridOutputDims (positions into transform's output maps) into connected
// sets: a union-find over a combined node space of input dimensions
// [0, InputRank) followed by grid positions [InputRank, InputRank+len(G)),
// with an edge from a grid position to every input dimension its output
// map references.
func buildRawConnectedSets(transform *IndexTransform, gridOutputDims []int) ([]rawSet, error) {
	n := transform.InputRank()
	g := len(gridOutputDims)
	uf := newUnionFind(n + g)

	seen := make(map[int]bool, g)
	for pos, outDim := range gridOutputDims {
		if outDim < 0 || outDim >= transform.OutputRank() {
			return nil, ErrNotAGridDimension
		}
		if seen[outDim] {
			return nil, ErrDuplicateGridDimension
		}
		seen[outDim] = true

		gridNode := n + pos
		m := transform.OutputMap(outDim)
		switch m.Kind {
		case MapConstant:
			// No edges: a constant grid dimension is its own singleton set.
		case MapSingleInputDimension:
			uf.union(gridNode, m.InputDim)
		case MapIndexArray:
			for _, d := range m.ArrayInputDims {
				uf.union(gridNode, d)
			}
		default:
			return nil, InternalErrorf("unclassified output map kind %v", m.Kind)
		}
	}

	groups := make(map[int]*rawSet)
	var order []int
	addNode := func(node int, isGridPos bool, value int) {
		root := uf.find(node)
		set, ok := groups[root]
		if !ok {
			set = &rawSet{}
			groups[root] = set
			order = append(order, root)
		}
		if isGridPos {
			set.gridPositions = append(set.gridPositions, value)
		} else {
			set.inputDims = append(set.inputDims, value)
		}
	}
	for pos := range gridOutputDims {
		addNode(n+pos, true, pos)
	}
	for d := 0; d < n; d++ {
		root := uf.find(d)
		if _, ok := groups[root]; ok {
			addNode(d, false, d)
		}
	}

	sets := make([]rawSet, 0, len(order))
	for _, root := range order {
		s := groups[root]
		sortInts(s.gridPositions)
		sortInts(s.inputDims)
		sets = append(sets, *s)
	}
	return sets, nil
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

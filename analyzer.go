package gridpartition

// setKind distinguishes the two connected-set enumeration strategies.
type setKind int

const (
	kindStrided setKind = iota
	kindIndexArray
)

// member records, for one grid position within a ConnectedSet, the output
// map that produces its output value.
type member struct {
	gridPos int // index into the caller's G slice
	outDim  int // transform output dimension
	m       OutputIndexMap
}

// ConnectedSet is a maximal group of (input dims, grid dims) coupled
// through output maps, the unit of independent enumeration.
type ConnectedSet struct {
	kind          setKind
	gridPositions []int // sorted ascending
	inputDims     []int // sorted ascending; len<=1 for strided sets
	members       []member

	// strided-only: the single input dimension driving this set, or -1 if
	// every member is MapConstant (no input dependency at all).
	stridedInputDim int

	// Precomputed enumeration, populated by PrePartition. Exactly one of
	// the two pairs is populated depending on kind.
	stridedRows     []stridedRow
	stridedRowByKey map[string]*stridedRow
	arrayRows       []arrayRow
	arrayRowByKey   map[string]*arrayRow
}

// classifySets converts raw connectivity groups into fully classified
// ConnectedSets carrying their member output maps.
func classifySets(transform *IndexTransform, gridOutputDims []int, raw []rawSet) ([]*ConnectedSet, error) {
	sets := make([]*ConnectedSet, 0, len(raw))
	for _, r := range raw {
		cs := &ConnectedSet{
			gridPositions:   append([]int(nil), r.gridPositions...),
			inputDims:       append([]int(nil), r.inputDims...),
			stridedInputDim: -1,
		}
		for _, pos := range cs.gridPositions {
			outDim := gridOutputDims[pos]
			m := transform.OutputMap(outDim)
			cs.members = append(cs.members, member{gridPos: pos, outDim: outDim, m: m})
			if m.Kind == MapIndexArray {
				cs.kind = kindIndexArray
			}
		}
		if cs.kind == kindStrided {
			switch len(cs.inputDims) {
			case 0:
				// every member is MapConstant.
			case 1:
				cs.stridedInputDim = cs.inputDims[0]
			default:
				return nil, InternalErrorf(
					"strided connected set unexpectedly spans %d input dimensions", len(cs.inputDims))
			}
		}
		sets = append(sets, cs)
	}
	return sets, nil
}

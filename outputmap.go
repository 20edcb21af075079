package gridpartition

// OutputMapKind tags the variant an OutputIndexMap holds.
type OutputMapKind int

const (
	// MapConstant: output = Offset, regardless of input.
	MapConstant OutputMapKind = iota
	// MapSingleInputDimension: output = Offset + Stride*input[InputDim].
	MapSingleInputDimension
	// MapIndexArray: output = Offset + Stride*Array[project(input, ArrayInputDims)].
	MapIndexArray
)

func (k OutputMapKind) String() string {
	switch k {
	case MapConstant:
		return "Constant"
	case MapSingleInputDimension:
		return "SingleInputDimension"
	case MapIndexArray:
		return "IndexArray"
	default:
		return "Unknown"
	}
}

// OutputIndexMap is one coordinate-producing rule for a single output
// dimension of an IndexTransform. Exactly one of the three kinds applies;
// unused fields for a given Kind are ignored.
type OutputIndexMap struct {
	Kind OutputMapKind

	// Offset is the constant value for MapConstant, or the additive offset
	// for the other two kinds.
	Offset Index
	// Stride multiplies the input/array value for MapSingleInputDimension
	// and MapIndexArray. Must be nonzero for those kinds.
	Stride Index
	// InputDim names the single input dimension read by
	// MapSingleInputDimension.
	InputDim int
	// Array and ArrayInputDims describe a MapIndexArray map: Array is
	// indexed by projecting the full input point onto ArrayInputDims, in
	// the order given.
	Array          *IndexArray
	ArrayInputDims []int
}

// ConstantMap builds a MapConstant output map.
func ConstantMap(c Index) OutputIndexMap {
	return OutputIndexMap{Kind: MapConstant, Offset: c}
}

// SingleInputDimensionMap builds a MapSingleInputDimension output map.
func SingleInputDimensionMap(offset, stride Index, inputDim int) OutputIndexMap {
	return OutputIndexMap{Kind: MapSingleInputDimension, Offset: offset, Stride: stride, InputDim: inputDim}
}

// IndexArrayMap builds a MapIndexArray output map.
func IndexArrayMap(offset, stride Index, array *IndexArray, arrayInputDims []int) OutputIndexMap {
	return OutputIndexMap{
		Kind:           MapIndexArray,
		Offset:         offset,
		Stride:         stride,
		Array:          array,
		ArrayInputDims: append([]int(nil), arrayInputDims...),
	}
}

// evaluate computes this map's output value given a full input point,
// checking arithmetic overflow and array bounds.
func (m OutputIndexMap) evaluate(input []Index) (Index, error) {
	switch m.Kind {
	case MapConstant:
		return m.Offset, nil
	case MapSingleInputDimension:
		if m.InputDim < 0 || m.InputDim >= len(input) {
			return 0, InternalErrorf("output map references input dimension %d out of range [0,%d)", m.InputDim, len(input))
		}
		return AffineChecked(m.Offset, m.Stride, input[m.InputDim])
	case MapIndexArray:
		coords := make([]Index, len(m.ArrayInputDims))
		for i, d := range m.ArrayInputDims {
			if d < 0 || d >= len(input) {
				return 0, InternalErrorf("output map references input dimension %d out of range [0,%d)", d, len(input))
			}
			coords[i] = input[d]
		}
		v, err := m.Array.Get(coords)
		if err != nil {
			return 0, err
		}
		return AffineChecked(m.Offset, m.Stride, v)
	default:
		return 0, InternalErrorf("unknown output map kind %v", m.Kind)
	}
}

// IndexTransform is a structured affine/array-indexed map from an integer
// input box of rank InputRank() to an M-tuple of output indices.
type IndexTransform struct {
	inputDomain Box
	outputMaps  []OutputIndexMap
}

// NewIndexTransform builds a transform, validating that every
// MapSingleInputDimension/MapIndexArray output map only references input
// dimensions within range.
func NewIndexTransform(inputDomain Box, outputMaps []OutputIndexMap) (*IndexTransform, error) {
	n := inputDomain.Rank()
	for i, m := range outputMaps {
		switch m.Kind {
		case MapConstant:
		case MapSingleInputDimension:
			if m.InputDim < 0 || m.InputDim >= n {
				return nil, InvalidArgumentErrorf("output map %d references input dimension %d out of range [0,%d)", i, m.InputDim, n)
			}
			if m.Stride == 0 {
				return nil, InvalidArgumentErrorf("output map %d has zero stride", i)
			}
		case MapIndexArray:
			if m.Array == nil {
				return nil, InvalidArgumentErrorf("output map %d has nil index array", i)
			}
			if m.Stride == 0 {
				return nil, InvalidArgumentErrorf("output map %d has zero stride", i)
			}
			if len(m.ArrayInputDims) != m.Array.Rank() {
				return nil, InvalidArgumentErrorf("output map %d array rank %d does not match input dims %d", i, m.Array.Rank(), len(m.ArrayInputDims))
			}
			for _, d := range m.ArrayInputDims {
				if d < 0 || d >= n {
					return nil, InvalidArgumentErrorf("output map %d references input dimension %d out of range [0,%d)", i, d, n)
				}
			}
		default:
			return nil, InvalidArgumentErrorf("output map %d has unknown kind %v", i, m.Kind)
		}
	}
	maps := append([]OutputIndexMap(nil), outputMaps...)
	return &IndexTransform{inputDomain: inputDomain, outputMaps: maps}, nil
}

// InputRank returns the number of input dimensions.
func (t *IndexTransform) InputRank() int { return t.inputDomain.Rank() }

// OutputRank returns the number of output dimensions.
func (t *IndexTransform) OutputRank() int { return len(t.outputMaps) }

// InputDomain returns the transform's input box.
func (t *IndexTransform) InputDomain() Box { return t.inputDomain }

// InputInterval returns the input domain's interval on dimension d.
func (t *IndexTransform) InputInterval(d int) IndexInterval { return t.inputDomain.Interval(d) }

// OutputMap returns the output map for output dimension d.
func (t *IndexTransform) OutputMap(d int) OutputIndexMap { return t.outputMaps[d] }

// OutputMaps returns all output maps; callers must not mutate the result.
func (t *IndexTransform) OutputMaps() []OutputIndexMap { return t.outputMaps }

// Apply evaluates every output map at the given input point, which must lie
// within the input domain.
func (t *IndexTransform) Apply(input []Index) ([]Index, error) {
	if len(input) != t.InputRank() {
		return nil, InvalidArgumentErrorf("input point rank %d does not match transform input rank %d", len(input), t.InputRank())
	}
	if !t.inputDomain.ContainsPoint(input) {
		return nil, InvalidArgumentErrorf("input point %v outside input domain %v", input, t.inputDomain)
	}
	out := make([]Index, len(t.outputMaps))
	for i, m := range t.outputMaps {
		v, err := m.evaluate(input)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

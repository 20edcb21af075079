package httpapi

import (
	"encoding/json"
	"fmt"

	gp "github.com/qri-io/gridpartition"
)

// Transform is the wire representation of an IndexTransform accepted by
// both the HTTP handlers and the gridpartition CLI.
type Transform struct {
	InputOrigin []gp.Index  `json:"input_origin"`
	InputShape  []gp.Index  `json:"input_shape"`
	OutputMaps  []OutputMap `json:"output_maps"`
}

// OutputMap is the wire representation of a single OutputIndexMap, tagged
// by Kind: "constant", "single_input_dimension", or "index_array".
type OutputMap struct {
	Kind           string      `json:"kind"`
	Offset         gp.Index    `json:"offset"`
	Stride         gp.Index    `json:"stride"`
	InputDim       int         `json:"input_dim"`
	Array          *IndexArray `json:"array,omitempty"`
	ArrayInputDims []int       `json:"array_input_dims,omitempty"`
}

// IndexArray is the wire representation of an IndexArray payload.
type IndexArray struct {
	Origin []gp.Index `json:"origin"`
	Shape  []gp.Index `json:"shape"`
	Data   []gp.Index `json:"data"`
}

// Grid is the wire representation of either a RegularGrid (CellShape set)
// or an IrregularGrid (SplitPoints set).
type Grid struct {
	CellShape   []gp.Index   `json:"cell_shape,omitempty"`
	SplitPoints [][]gp.Index `json:"split_points,omitempty"`
}

// Box is the wire representation of a Box, used for grid_bounds.
type Box struct {
	Origin []gp.Index `json:"origin"`
	Shape  []gp.Index `json:"shape"`
}

// Request is the common JSON envelope accepted by /partition and /ranges,
// and by the partition/ranges CLI subcommands. GridBounds is required only
// for /ranges.
type Request struct {
	Transform      Transform `json:"transform"`
	GridOutputDims []int     `json:"grid_output_dims"`
	Grid           Grid      `json:"grid"`
	GridBounds     *Box      `json:"grid_bounds,omitempty"`
}

// DecodeRequest parses a Request from JSON.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	return &req, nil
}

// DecodeTransform builds an IndexTransform from its wire representation.
func DecodeTransform(jt Transform) (*gp.IndexTransform, error) {
	domain, err := gp.BoxFromOriginShape(jt.InputOrigin, jt.InputShape)
	if err != nil {
		return nil, fmt.Errorf("input domain: %w", err)
	}
	maps := make([]gp.OutputIndexMap, len(jt.OutputMaps))
	for i, m := range jt.OutputMaps {
		switch m.Kind {
		case "constant":
			maps[i] = gp.ConstantMap(m.Offset)
		case "single_input_dimension":
			maps[i] = gp.SingleInputDimensionMap(m.Offset, m.Stride, m.InputDim)
		case "index_array":
			if m.Array == nil {
				return nil, fmt.Errorf("output map %d: index_array kind requires an array", i)
			}
			arr, err := gp.NewIndexArray(m.Array.Origin, m.Array.Shape, m.Array.Data)
			if err != nil {
				return nil, fmt.Errorf("output map %d: %w", i, err)
			}
			maps[i] = gp.IndexArrayMap(m.Offset, m.Stride, arr, m.ArrayInputDims)
		default:
			return nil, fmt.Errorf("output map %d: unknown kind %q", i, m.Kind)
		}
	}
	return gp.NewIndexTransform(domain, maps)
}

// DecodeGrid builds a Grid from its wire representation.
func DecodeGrid(jg Grid) (gp.Grid, error) {
	switch {
	case jg.CellShape != nil:
		return gp.NewRegularGrid(jg.CellShape)
	case jg.SplitPoints != nil:
		return gp.NewIrregularGrid(jg.SplitPoints)
	default:
		return nil, fmt.Errorf("grid must set either cell_shape or split_points")
	}
}

// DecodeBox builds a Box from its wire representation.
func DecodeBox(jb *Box) (gp.Box, error) {
	if jb == nil {
		return gp.Box{}, fmt.Errorf("grid_bounds is required")
	}
	return gp.BoxFromOriginShape(jb.Origin, jb.Shape)
}

// EncodeOutputMap converts an OutputIndexMap to its wire representation.
// The IndexArray's Data payload is not round-tripped, since the API is
// meant for inspecting cell transforms, not reconstructing them.
func EncodeOutputMap(m gp.OutputIndexMap) OutputMap {
	switch m.Kind {
	case gp.MapConstant:
		return OutputMap{Kind: "constant", Offset: m.Offset}
	case gp.MapSingleInputDimension:
		return OutputMap{Kind: "single_input_dimension", Offset: m.Offset, Stride: m.Stride, InputDim: m.InputDim}
	case gp.MapIndexArray:
		return OutputMap{
			Kind:           "index_array",
			Offset:         m.Offset,
			Stride:         m.Stride,
			Array:          &IndexArray{Origin: m.Array.Origin(), Shape: m.Array.Shape()},
			ArrayInputDims: m.ArrayInputDims,
		}
	default:
		return OutputMap{Kind: fmt.Sprintf("unknown(%d)", m.Kind)}
	}
}

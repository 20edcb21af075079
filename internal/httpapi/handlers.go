package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	gp "github.com/qri-io/gridpartition"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type partitionResponseLine struct {
	CellIndices []gp.Index  `json:"cell_indices"`
	InputOrigin []gp.Index  `json:"input_origin"`
	InputShape  []gp.Index  `json:"input_shape"`
	OutputMaps  []OutputMap `json:"output_maps"`
}

type rangeResponseLine struct {
	Origin []gp.Index `json:"origin"`
	Shape  []gp.Index `json:"shape"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := DecodeRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	transform, err := DecodeTransform(req.Transform)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	grid, err := DecodeGrid(req.Grid)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)
	count := 0
	err = gp.Partition(transform, req.GridOutputDims, grid, func(cellIndices []gp.Index, ct *gp.IndexTransform) error {
		count++
		line := partitionResponseLine{
			CellIndices: cellIndices,
			InputOrigin: ct.InputDomain().Origin(),
			InputShape:  ct.InputDomain().Shape(),
		}
		for _, m := range ct.OutputMaps() {
			line.OutputMaps = append(line.OutputMaps, EncodeOutputMap(m))
		}
		return enc.Encode(line)
	})
	if err != nil {
		s.logger.Error("partition failed", zap.Error(err))
		writeError(w, statusCodeFor(err), err)
		return
	}
	s.logger.Debug("partition served", zap.Int("cells", count))
}

func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := DecodeRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	transform, err := DecodeTransform(req.Transform)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	grid, err := DecodeGrid(req.Grid)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bounds, err := DecodeBox(req.GridBounds)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	enc := json.NewEncoder(w)
	count := 0
	err = gp.GetGridCellRanges(transform, req.GridOutputDims, bounds, grid, func(b gp.Box) error {
		count++
		return enc.Encode(rangeResponseLine{Origin: b.Origin(), Shape: b.Shape()})
	})
	if err != nil {
		s.logger.Error("range coalescing failed", zap.Error(err))
		writeError(w, statusCodeFor(err), err)
		return
	}
	s.logger.Debug("ranges served", zap.Int("ranges", count))
}

func statusCodeFor(err error) int {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Canceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

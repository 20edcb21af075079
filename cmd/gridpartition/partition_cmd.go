package main

import (
	"encoding/json"
	"fmt"
	"os"

	gp "github.com/qri-io/gridpartition"
	"github.com/qri-io/gridpartition/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var partitionCmd = &cobra.Command{
	Use:   "partition -f request.json",
	Short: "Emit every grid cell intersected by a transform, one JSON object per line.",
	RunE:  runPartition,
}

func init() {
	partitionCmd.Flags().StringP("file", "f", "", "path to a JSON request file (default: stdin)")
}

type partitionResultLine struct {
	CellIndices []gp.Index          `json:"cell_indices"`
	InputOrigin []gp.Index          `json:"input_origin"`
	InputShape  []gp.Index          `json:"input_shape"`
	OutputMaps  []httpapi.OutputMap `json:"output_maps"`
}

func runPartition(cmd *cobra.Command, args []string) error {
	if err := initLogger(cmd); err != nil {
		return err
	}
	defer logger.Sync()

	data, err := readRequestInput(cmd)
	if err != nil {
		return err
	}
	req, err := httpapi.DecodeRequest(data)
	if err != nil {
		return err
	}
	transform, err := httpapi.DecodeTransform(req.Transform)
	if err != nil {
		return err
	}
	grid, err := httpapi.DecodeGrid(req.Grid)
	if err != nil {
		return err
	}

	logger.Debug("starting partition",
		zap.Int("input_rank", transform.InputRank()),
		zap.Int("grid_rank", grid.Rank()))

	enc := json.NewEncoder(os.Stdout)
	count := 0
	err = gp.Partition(transform, req.GridOutputDims, grid, func(cellIndices []gp.Index, ct *gp.IndexTransform) error {
		count++
		return enc.Encode(cellTransformToLine(cellIndices, ct))
	})
	if err != nil {
		logger.Error("partition failed", zap.Error(err))
		return err
	}
	logger.Info("partition complete", zap.Int("cells", count))
	return nil
}

func cellTransformToLine(cellIndices []gp.Index, ct *gp.IndexTransform) partitionResultLine {
	line := partitionResultLine{
		CellIndices: cellIndices,
		InputOrigin: ct.InputDomain().Origin(),
		InputShape:  ct.InputDomain().Shape(),
	}
	for _, m := range ct.OutputMaps() {
		line.OutputMaps = append(line.OutputMaps, httpapi.EncodeOutputMap(m))
	}
	return line
}

func readRequestInput(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return readAll(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return readAll(f)
}

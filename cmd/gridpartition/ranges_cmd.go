package main

import (
	"encoding/json"
	"os"

	gp "github.com/qri-io/gridpartition"
	"github.com/qri-io/gridpartition/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges -f request.json",
	Short: "Emit the coalesced grid-cell-index ranges a transform intersects.",
	RunE:  runRanges,
}

func init() {
	rangesCmd.Flags().StringP("file", "f", "", "path to a JSON request file (default: stdin)")
}

type rangeResultLine struct {
	Origin []gp.Index `json:"origin"`
	Shape  []gp.Index `json:"shape"`
}

func runRanges(cmd *cobra.Command, args []string) error {
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
	bounds, err := httpapi.DecodeBox(req.GridBounds)
	if err != nil {
		return err
	}

	logger.Debug("starting range coalescing",
		zap.Int("input_rank", transform.InputRank()),
		zap.Int("grid_rank", grid.Rank()))

	enc := json.NewEncoder(os.Stdout)
	count := 0
	err = gp.GetGridCellRanges(transform, req.GridOutputDims, bounds, grid, func(b gp.Box) error {
		count++
		return enc.Encode(rangeResultLine{Origin: b.Origin(), Shape: b.Shape()})
	})
	if err != nil {
		logger.Error("range coalescing failed", zap.Error(err))
		return err
	}
	logger.Info("range coalescing complete", zap.Int("ranges", count))
	return nil
}

package main

import (
	"net/http"

	"github.com/qri-io/gridpartition/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the partition and ranges operations over HTTP.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := initLogger(cmd); err != nil {
		return err
	}
	defer logger.Sync()

	addr, _ := cmd.Flags().GetString("addr")
	srv := httpapi.NewServer(logger)
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, srv)
}

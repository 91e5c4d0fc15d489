package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andresolmos/recurrente/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve classification and forecasts over HTTP",
		Long: `Start the HTTP API. Endpoints:

  GET /api/customers
  GET /api/customers/{id}/classification[?detail=rows]
  GET /api/customers/{id}/forecast
  GET /healthz`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	srv := server.New(viper.GetString("server.addr"), newAnalyzer(store))
	return srv.ListenAndServe(cmd.Context())
}

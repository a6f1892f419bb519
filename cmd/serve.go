package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hmans/todoql/internal/server"
)

var (
	serveMode string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

Two transports are available:
  - embedded (default): GraphQL at /graphql (POST) with CORS, GraphQL
    Playground at /graphql (GET), static files from server.static_dir at /
  - standalone: GraphQL and Playground on every path, no extra middleware

Examples:
  # Start server on default port 4000
  todoql serve

  # Standalone listener on a custom port
  todoql serve --mode standalone --port 3000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("mode") {
			cfg.Server.Mode = serveMode
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServer()
	},
}

func runServer() error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// The GraphQL engine is built here, before anything listens
	srv, err := server.New(cfg.Server, store, logger)
	if err != nil {
		return err
	}

	// Set up signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().StringVarP(&serveMode, "mode", "m", "", "Transport: standalone or embedded (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

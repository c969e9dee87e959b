package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/protonstudio/invoice-builder/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server hosting an invoice editing session.

The API provides endpoints for:
  - GET    /api/v1/invoice            - Current state and totals
  - PUT    /api/v1/invoice/header     - Update header fields
  - POST   /api/v1/invoice/items      - Add a line item
  - PUT    /api/v1/invoice/items/:id  - Update a line item
  - DELETE /api/v1/invoice/items/:id  - Remove a line item
  - GET    /api/v1/invoice/totals     - Aggregate totals
  - POST   /api/v1/invoice/validate   - Validate for export
  - GET    /api/v1/invoice/preview    - HTML preview
  - POST   /api/v1/invoice/export     - PDF download
  - POST   /api/v1/invoice/clear      - Reset the session
  - POST   /api/v1/draft/save         - Persist the draft now
  - POST   /api/v1/draft/load         - Restore the saved draft
  - GET    /health                    - Health check

Examples:
  # Start server on default port
  invoice-builder serve

  # Start on custom port in debug mode
  invoice-builder serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default from config)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serverAddr != "" {
		cfg.Server.Address = serverAddr
	}
	if serverDebug {
		cfg.Server.Debug = true
	}
	if readTimeout != 0 {
		cfg.Server.ReadTimeout = readTimeout
	}
	if writeTimeout != 0 {
		cfg.Server.WriteTimeout = writeTimeout
	}

	b, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		Debug:        cfg.Server.Debug,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, b)

	// Flush any pending autosave before shutting down.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		b.Flush()
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", cfg.Server.Address)
	return srv.Run()
}

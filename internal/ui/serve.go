package ui

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcanete/agendum/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP booking API",
		Long: `Run the HTTP booking API.

Exposes availability and appointment endpoints under /api/v1 for
customer-facing booking pages. Shuts down cleanly on SIGINT/SIGTERM.

Example:
  agendum serve --listen=:8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if listen == "" {
				listen = a.config.Server.Listen
			}

			srv := server.New(a.repo, a.config)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(listen); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server: %w", err)
			case <-sigCh:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")

	return cmd
}

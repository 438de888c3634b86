package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/yzterm/internal/adapters/bridge"
	"github.com/bnema/yzterm/internal/application"
	"github.com/bnema/yzterm/internal/ports"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the terminal bridge over WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = app.cfg.Serve.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessions := app.newSessionManager(0, 0)
			defer sessions.CloseAll()

			cfg := app.controllerConfig()
			factory := func(renderer ports.Renderer, alerter ports.Alerter, listings ports.ListingObserver) *application.Controller {
				return application.NewController(application.ControllerDeps{
					Hosts:       app.hostRepo,
					Vault:       app.vault,
					Sessions:    sessions,
					Directories: app.directories,
					Transfers:   app.transfers,
					Renderer:    renderer,
					Alerter:     alerter,
					Listings:    listings,
				}, cfg)
			}

			server := bridge.NewServer(factory, app.hostRepo, app.logger).WithSessions(sessions)

			listener, err := net.Listen("tcp", listen)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", listen, err)
			}

			httpServer := &http.Server{
				Handler:           server.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.Serve(listener)
			}()

			app.logger.Info("terminal bridge listening", "addr", listener.Addr().String())
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", listener.Addr())

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			app.logger.Info("shutting down terminal bridge")
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from serve.listen)")

	return cmd
}

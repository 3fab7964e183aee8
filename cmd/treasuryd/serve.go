package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var listenAddr string

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Override the configured ListenAddr")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the treasury HTTP service",
	Long:  "Opens the configured state backend and journal, then serves the treasury, faucet, token sale and lottery over HTTP until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		n, err := openNode(cfg)
		if err != nil {
			return err
		}
		defer n.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, n, cfg.ListenAddr)
	},
}

// serve blocks until ctx is done or the listener fails, then drains in-flight requests.
func serve(ctx context.Context, n *node, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           n.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		n.log.Infof("listening on %s (backend %s)", addr, n.cfg.StateBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	n.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

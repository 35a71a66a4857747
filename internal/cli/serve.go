package cmd

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/rohmanhakim/nl-locator/internal/config"
	"github.com/rohmanhakim/nl-locator/internal/server"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the locate API and UI over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return RunServe(ctx, cfg, cmd.ErrOrStderr())
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (default :8000)")
}

// RunServe serves until ctx is canceled. The browser session, if one was
// opened, is closed on the way out.
func RunServe(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	logger := newLogger(cfg.LogLevel(), stderr)
	rt := newRuntime(cfg, logger)
	defer rt.Close()

	param := server.DefaultServerParam()
	param.Addr = cfg.ListenAddr()
	param.OutputDir = cfg.OutputDir()

	srv := server.NewServer(rt.service, rt.store, logger, param)
	return srv.Start(ctx)
}

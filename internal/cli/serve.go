package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkrale/upmeta/internal/server"
	"github.com/mkrale/upmeta/pkg/guess"
	"github.com/mkrale/upmeta/pkg/vcs"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	net       bool
	noCache   bool
	redisAddr string
}

// newServeCmd creates the serve command, which runs the metadata HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: "127.0.0.1:8080", net: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the metadata HTTP API",
		Long: `Run the metadata HTTP API.

Exposes GET /api/v1/metadata?path=<dir> returning the merged upstream
metadata for a local project tree, plus GET /healthz.

Example:
  upmeta serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			backend, err := newCacheBackend(ctx, opts.noCache, opts.redisAddr)
			if err != nil {
				return err
			}
			defer backend.Close()

			gopts := guess.Options{Cache: backend}
			if !opts.net {
				gopts.Net = vcs.NetDenied
			}
			gopts.Logger = func(msg string, args ...any) { logger.Warnf(msg, args...) }

			return server.New(logger, gopts).ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.net, "net", opts.net, "allow network access for URL checks")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP response cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the HTTP response cache")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timegridlabs/timegrid/internal/server"
	"github.com/timegridlabs/timegrid/pkg/cache"
	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

// Cache backends for the serve command.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	grid      gridFlags
	addr      string // listen address
	backend   string // cache backend: file, redis, none
	redisAddr string
	redisDB   int
}

// newServeCmd creates the serve command for exposing the pipeline over HTTP.
// The given schedule file becomes the default for every request; clients can
// override the visible range and hour bracket per request via query
// parameters.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve [schedule]",
		Short: "Serve timetable layouts over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], &opts)
		},
	}

	opts.grid.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", backendFile, "cache backend: file (default), redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address (with --cache redis)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number (with --cache redis)")

	return cmd
}

// runServe builds the runner with the requested cache backend and blocks
// until the context is cancelled.
func runServe(cmd *cobra.Command, schedule string, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base := pipeline.Options{Schedule: schedule}
	opts.grid.apply(&base)
	if err := base.ValidateAndSetDefaults(); err != nil {
		return err
	}

	c, err := serveCache(cmd, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	printInfo("Serving %s on %s", schedule, opts.addr)
	printDetail("GET /api/layout?from=YYYY-MM-DD&till=YYYY-MM-DD")

	srv := server.New(runner, base, logger)
	if err := srv.ListenAndServe(ctx, opts.addr); err != nil {
		printError("Server stopped: %v", err)
		return err
	}
	return nil
}

// serveCache creates the cache backend selected by --cache.
func serveCache(cmd *cobra.Command, opts *serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile:
		return newCache(false)
	case backendRedis:
		return cache.NewRedisCache(cmd.Context(), cache.RedisOptions{
			Addr: opts.redisAddr,
			DB:   opts.redisDB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", opts.backend)
	}
}

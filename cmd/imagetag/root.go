package main

import (
	"context"

	"github.com/spf13/cobra"

	"image-search-api/internal/config"
	"image-search-api/internal/logging"
	"image-search-api/pkg/server"
)

func newRootCmd(cfg *config.Config, opts ...server.Option) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "imagetag",
		Short:         "Operate the image label table and search index",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				cfg.Log.Level = "debug"
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newMigrateCmd(cfg),
		newSearchCmd(cfg, opts),
		newLabelCmd(cfg, opts),
	)

	return cmd
}

// withContainer builds the dependency container for one command run
func withContainer(ctx context.Context, cfg *config.Config, opts []server.Option, fn func(*server.Container) error) error {
	opts = append([]server.Option{server.WithLogger(logging.New(cfg.Log))}, opts...)
	container, err := server.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer container.Close()
	return fn(container)
}

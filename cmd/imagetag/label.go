package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"image-search-api/internal/config"
	"image-search-api/internal/services"
	"image-search-api/pkg/server"
)

func newLabelCmd(cfg *config.Config, opts []server.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "label <bucket> <key> [<key>...]",
		Short: "Detect and store labels for existing objects",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateForUpload(); err != nil {
				return err
			}

			bucket := args[0]
			refs := make([]services.ObjectRef, 0, len(args)-1)
			for _, key := range args[1:] {
				refs = append(refs, services.ObjectRef{Bucket: bucket, Key: key})
			}

			return withContainer(cmd.Context(), cfg, opts, func(container *server.Container) error {
				summary := container.IngestService.Ingest(cmd.Context(), refs)

				out := cmd.OutOrStdout()
				for _, result := range summary.Results {
					switch {
					case result.Err != nil:
						fmt.Fprintf(out, "%-9s %s: %v\n", result.Outcome, result.Key, result.Err)
					case result.Outcome == services.OutcomeProcessed:
						fmt.Fprintf(out, "%-9s %s (%d labels)\n", result.Outcome, result.Key, result.Labels)
					default:
						fmt.Fprintf(out, "%-9s %s\n", result.Outcome, result.Key)
					}
				}
				fmt.Fprintln(out, summary.String())
				return nil
			})
		},
	}
}
